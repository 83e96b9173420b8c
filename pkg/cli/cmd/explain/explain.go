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

package explain

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var instructionsFlag string
var textFlag string

var example = `
 * Explain a note
 inkpot explain 3c07a7a0

 * Explain an arbitrary snippet
 inkpot explain --text "monad"

 * Steer the explanation
 inkpot explain 3c07a7a0 -i "explain like I am five"`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of argument")
	}
	if len(args) == 0 && textFlag == "" {
		return errors.New("Provide a note id or --text")
	}

	return nil
}

// NewCmd returns a new explain command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "explain [noteID]",
		Short:   "Explain a note or a snippet of text",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.StringVarP(&instructionsFlag, "instructions", "i", "", "custom instructions for the explanation")
	f.StringVar(&textFlag, "text", "", "explain this text instead of a note")

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		token, err := a.RequireToken()
		if err != nil {
			return errors.Wrap(err, "checking session")
		}

		text := textFlag
		if len(args) == 1 {
			res := a.Notes.Fetch(token, args[0])
			if !res.OK {
				return errors.New(res.Error)
			}

			text = res.Note.Content
		}

		var explanation string
		if instructionsFlag == "" {
			explanation, err = a.AI.Explain(token, text)
		} else {
			explanation, err = a.AI.ExplainWith(token, text, instructionsFlag)
		}
		if err != nil {
			return errors.Wrap(err, "getting an explanation")
		}

		log.Plainf("%s\n", explanation)

		return nil
	}
}
