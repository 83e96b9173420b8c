/* Copyright 2025 Inkpot Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cat

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var contentOnlyFlag bool

var example = `
 * View a note with its metadata
 inkpot cat 3c07a7a0

 * Print only the content, e.g. for piping
 inkpot cat 3c07a7a0 --content-only`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new cat command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cat <noteID>",
		Short:   "See a note",
		Aliases: []string{"c", "view"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.BoolVar(&contentOnlyFlag, "content-only", false, "print the note content only")

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		noteID := args[0]

		token, err := a.RequireToken()
		if err != nil {
			return errors.Wrap(err, "checking session")
		}

		res := a.Notes.Fetch(token, noteID)
		if !res.OK {
			return errors.New(res.Error)
		}

		if contentOnlyFlag {
			output.NoteContent(res.Note)
			return nil
		}

		var notebookTitle string
		if notebook, ok := a.Notebooks.Get(res.Note.NotebookID); ok {
			notebookTitle = notebook.Title
		}

		output.NoteInfo(res.Note, notebookTitle)

		return nil
	}
}
