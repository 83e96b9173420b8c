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

package fmt

import (
	"sort"
	"strings"

	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/editor"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var atFlag int
var toggleFlag string

var example = `
 * Show the formatting state at the start of a note
 inkpot fmt 3c07a7a0

 * Show the formatting state at an offset
 inkpot fmt 3c07a7a0 --at 42

 * Toggle a mark at an offset and save the note
 inkpot fmt 3c07a7a0 --at 42 --toggle isBold`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new fmt command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fmt <noteID>",
		Short:   "Inspect or toggle markdown formatting in a note",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.IntVar(&atFlag, "at", 0, "the content offset to inspect")
	f.StringVar(&toggleFlag, "toggle", "", "toggle this formatting key and save")

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

		doc := editor.NewDocument(fetched.Note.Content)
		doc.SetCursor(atFlag)

		proj := editor.NewProjector(doc)
		defer proj.Close()

		if toggleFlag == "" {
			printSnapshot(proj.Snapshot())
			return nil
		}

		if ok := proj.Toggle(toggleFlag); !ok {
			return errors.Errorf("unknown formatting key '%s'. available: %s", toggleFlag, strings.Join(editor.Capabilities(), ", "))
		}

		res := a.Notes.Update(token, noteID, client.NoteParams{Content: doc.Source()})
		if !res.OK {
			return errors.New(res.Error)
		}

		log.Successf("toggled %s on the note %s\n", toggleFlag, noteID)

		return nil
	}
}

func printSnapshot(snapshot map[string]bool) {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		marker := log.ColorGray.Sprint("·")
		if snapshot[k] {
			marker = log.ColorGreen.Sprint("✔")
		}

		log.Plainf("%s %s\n", marker, k)
	}
}
