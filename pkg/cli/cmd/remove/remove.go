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

package remove

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/output"
	"github.com/inkpot/inkpot/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 inkpot rm 3c07a7a0`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new remove command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <noteID>",
		Short:   "Remove a note",
		Aliases: []string{"rm", "d"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		noteID := args[0]

		token, err := a.RequireToken()
		if err != nil {
			return errors.Wrap(err, "checking session")
		}

		fetched := a.Notes.Fetch(token, noteID)
		if !fetched.OK {
			return errors.New(fetched.Error)
		}

		var notebookTitle string
		if notebook, ok := a.Notebooks.Get(fetched.Note.NotebookID); ok {
			notebookTitle = notebook.Title
		}
		output.NoteInfo(fetched.Note, notebookTitle)

		ok, err := ui.Confirm("remove this note?", false)
		if err != nil {
			return errors.Wrap(err, "getting confirmation")
		}
		if !ok {
			log.Plain("aborted\n")
			return nil
		}

		if res := a.Notes.Delete(token, noteID); !res.OK {
			return errors.New(res.Error)
		}

		log.Successf("removed the note %s\n", noteID)

		return nil
	}
}
