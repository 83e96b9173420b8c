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

package add

import (
	"os"
	"strings"

	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/output"
	"github.com/inkpot/inkpot/pkg/cli/ui"
	"github.com/inkpot/inkpot/pkg/cli/upgrade"
	"github.com/inkpot/inkpot/pkg/cli/validate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var contentFlag string
var titleFlag string

var example = `
 * Open an editor to write content
 inkpot add git

 * Skip the editor by providing content directly
 inkpot add git -c "time is a part of the commit hash"

 * Send stdin content to a note
 echo "a branch is just a pointer to a commit" | inkpot add git
 # or
 inkpot add git << EOF
 pull is fetch with a merge
 EOF`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new add command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <notebook>",
		Short:   "Add a new note",
		Aliases: []string{"a", "n", "new"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "The new content for the note")
	f.StringVarP(&titleFlag, "title", "t", "", "The title for the note (defaults to the first line of content)")

	return cmd
}

func getContent(a *app.App) (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}

	// check for piped content
	fInfo, _ := os.Stdin.Stat()
	if fInfo.Mode()&os.ModeCharDevice == 0 {
		c, err := ui.ReadStdInput()
		if err != nil {
			return "", errors.Wrap(err, "Failed to get piped input")
		}
		return c, nil
	}

	fpath, err := ui.GetTmpContentPath(*a.Ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting temporarily content file path")
	}

	c, err := ui.GetEditorInput(*a.Ctx, fpath)
	if err != nil {
		return "", errors.Wrap(err, "Failed to get editor input")
	}

	return c, nil
}

// deriveTitle falls back to the first content line when no title was given
func deriveTitle(content string) string {
	line := content
	if idx := strings.IndexByte(content, '\n'); idx != -1 {
		line = content[:idx]
	}

	return strings.TrimSpace(strings.TrimLeft(line, "# "))
}

func resolveNotebook(a *app.App, token, title string) (client.Notebook, error) {
	if res := a.Notebooks.Fetch(token); !res.OK {
		return client.Notebook{}, errors.New(res.Error)
	}

	if notebook, ok := a.Notebooks.FindByTitle(title); ok {
		return notebook, nil
	}

	res := a.Notebooks.Create(token, client.NotebookParams{Title: title})
	if !res.OK {
		return client.Notebook{}, errors.New(res.Error)
	}

	log.Infof("created notebook %s\n", title)

	return res.Notebook, nil
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		notebookTitle := args[0]
		if err := validate.NotebookTitle(notebookTitle); err != nil {
			return errors.Wrap(err, "invalid notebook title")
		}

		token, err := a.RequireToken()
		if err != nil {
			return errors.Wrap(err, "checking session")
		}

		content, err := getContent(a)
		if err != nil {
			return errors.Wrap(err, "getting content")
		}
		if content == "" {
			return errors.New("Empty content")
		}

		title := titleFlag
		if title == "" {
			title = deriveTitle(content)
		}

		notebook, err := resolveNotebook(a, token, notebookTitle)
		if err != nil {
			return errors.Wrap(err, "resolving the notebook")
		}

		res := a.Notes.Create(token, client.NoteParams{
			NotebookID: notebook.ID,
			Title:      title,
			Content:    content,
		})
		if !res.OK {
			return errors.New(res.Error)
		}

		log.Successf("added to %s\n", notebook.Title)
		output.NoteInfo(res.Note, notebook.Title)

		if err := upgrade.Check(*a.Ctx); err != nil {
			log.Error(errors.Wrap(err, "automatically checking updates").Error())
		}

		return nil
	}
}
