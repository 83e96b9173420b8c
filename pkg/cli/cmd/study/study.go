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

package study

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var answersFlag bool

var example = `
 * Generate flashcards from a note
 inkpot study flashcards 3c07a7a0

 * Generate a quiz from a note
 inkpot study quiz 3c07a7a0

 * Include the answer key
 inkpot study quiz 3c07a7a0 --answers`

// NewCmd returns a new study command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "study",
		Short:   "Generate study material from notes",
		Example: example,
	}

	cmd.AddCommand(newFlashcardsCmd(a))
	cmd.AddCommand(newQuizCmd(a))

	return cmd
}

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

func fetchNote(a *app.App, noteID string) (string, client.Note, error) {
	token, err := a.RequireToken()
	if err != nil {
		return "", client.Note{}, errors.Wrap(err, "checking session")
	}

	res := a.Notes.Fetch(token, noteID)
	if !res.OK {
		return "", client.Note{}, errors.New(res.Error)
	}

	return token, res.Note, nil
}

func newFlashcardsCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flashcards <noteID>",
		Short:   "Generate flashcards from a note",
		Aliases: []string{"f", "cards"},
		PreRunE: preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, note, err := fetchNote(a, args[0])
			if err != nil {
				return err
			}

			cards, err := a.AI.GenerateFlashcards(token, note.Content)
			if err != nil {
				return errors.Wrap(err, "generating flashcards")
			}

			set := a.Study.AddFlashcardSet(note.ID, note.Title, cards)
			output.FlashcardSet(set)

			return nil
		},
	}

	return cmd
}

func newQuizCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quiz <noteID>",
		Short:   "Generate a quiz from a note",
		Aliases: []string{"q"},
		PreRunE: preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, note, err := fetchNote(a, args[0])
			if err != nil {
				return err
			}

			questions, err := a.AI.GenerateQuiz(token, note.Content)
			if err != nil {
				return errors.Wrap(err, "generating a quiz")
			}

			quiz := a.Study.AddQuiz(note.ID, note.Title, questions)
			output.Quiz(quiz, answersFlag)

			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&answersFlag, "answers", false, "print the answer key")

	return cmd
}
