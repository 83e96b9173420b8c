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

package ls

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * List all notebooks
 inkpot ls

 * List notes in a notebook
 inkpot ls javascript`

// NewCmd returns a new ls command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls [notebook]",
		Aliases: []string{"l", "notes"},
		Short:   "List notebooks or notes",
		Example: example,
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		token, err := a.RequireToken()
		if err != nil {
			return errors.Wrap(err, "checking session")
		}

		if len(args) == 0 {
			return printNotebooks(a, token)
		}

		return printNotes(a, token, args[0])
	}
}

func printNotebooks(a *app.App, token string) error {
	if res := a.Notebooks.Fetch(token); !res.OK {
		return errors.New(res.Error)
	}

	notebooks := a.Notebooks.All()

	log.Infof("total %d\n", len(notebooks))
	for _, n := range notebooks {
		count := len(a.Notes.GetByNotebook(n.ID))
		log.Plainf("%s %s\n", log.ColorYellow.Sprintf("• %s", n.Title), log.ColorGray.Sprintf("(%d)", count))
	}

	return nil
}

func printNotes(a *app.App, token, notebookTitle string) error {
	if res := a.Notebooks.Fetch(token); !res.OK {
		return errors.New(res.Error)
	}

	notebook, ok := a.Notebooks.FindByTitle(notebookTitle)
	if !ok {
		return errors.Errorf("notebook '%s' not found", notebookTitle)
	}

	if res := a.Notes.FetchByNotebook(token, notebook.ID); !res.OK {
		return errors.New(res.Error)
	}

	notes := a.Notes.GetByNotebook(notebook.ID)

	log.Infof("on notebook %s\n", notebook.Title)
	for _, n := range notes {
		log.Plainf("%s %s %s\n", log.ColorYellow.Sprintf("(%s)", n.ID), n.Title, log.ColorGray.Sprint(output.Elapsed(n.UpdatedAt, a.Ctx.Clock.Now())))
	}

	return nil
}
