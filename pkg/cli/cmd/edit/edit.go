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

package edit

import (
	"fmt"
	"strings"

	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/ui"
	"github.com/inkpot/inkpot/pkg/cli/utils/diff"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var contentFlag string
var titleFlag string
var notebookFlag string

var example = `
 * Edit a note's content in an editor
 inkpot edit 3c07a7a0

 * Skip the editor by providing new content directly
 inkpot edit 3c07a7a0 -c "new content"

 * Rename a note
 inkpot edit 3c07a7a0 -t "new title"

 * Move a note to another notebook
 inkpot edit 3c07a7a0 -b linux`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new edit command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <noteID>",
		Short:   "Edit a note",
		Aliases: []string{"e"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "The new content for the note")
	f.StringVarP(&titleFlag, "title", "t", "", "The new title for the note")
	f.StringVarP(&notebookFlag, "notebook", "b", "", "The notebook to move the note to")

	return cmd
}

func getContent(a *app.App, note client.Note) (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}

	fpath, err := ui.GetTmpContentPath(*a.Ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting temporarily content file path")
	}

	if err := ui.WriteTmpContent(fpath, note.Content); err != nil {
		return "", errors.Wrap(err, "preparing the editor content")
	}

	c, err := ui.GetEditorInput(*a.Ctx, fpath)
	if err != nil {
		return "", errors.Wrap(err, "Failed to get editor input")
	}

	return c, nil
}

func printDiff(before, after string) {
	diffs := diff.Do(before, after)

	for _, d := range diffs {
		var color func(string) string

		switch d.Type {
		case diffmatchpatch.DiffInsert:
			color = func(s string) string { return log.ColorGreen.Sprint(s) }
		case diffmatchpatch.DiffDelete:
			color = func(s string) string { return log.ColorRed.Sprint(s) }
		default:
			color = func(s string) string { return s }
		}

		fmt.Print(color(d.Text))
	}

	if !strings.HasSuffix(after, "\n") {
		fmt.Println()
	}
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
		note := fetched.Note

		params := client.NoteParams{Title: titleFlag}

		if notebookFlag != "" {
			if res := a.Notebooks.Fetch(token); !res.OK {
				return errors.New(res.Error)
			}

			notebook, ok := a.Notebooks.FindByTitle(notebookFlag)
			if !ok {
				return errors.Errorf("notebook '%s' not found", notebookFlag)
			}

			params.NotebookID = notebook.ID
		}

		// title or notebook moves skip the editor round-trip
		if titleFlag == "" && notebookFlag == "" || contentFlag != "" {
			content, err := getContent(a, note)
			if err != nil {
				return errors.Wrap(err, "getting content")
			}
			if content == "" {
				return errors.New("Empty content")
			}

			if content != note.Content {
				printDiff(note.Content, content)

				ok, err := ui.Confirm("save this change?", true)
				if err != nil {
					return errors.Wrap(err, "getting confirmation")
				}
				if !ok {
					log.Plain("aborted\n")
					return nil
				}

				params.Content = content
			}
		}

		if params == (client.NoteParams{}) {
			log.Plain("nothing to update\n")
			return nil
		}

		res := a.Notes.Update(token, noteID, params)
		if !res.OK {
			return errors.New(res.Error)
		}

		log.Successf("edited the note %s\n", noteID)

		return nil
	}
}
