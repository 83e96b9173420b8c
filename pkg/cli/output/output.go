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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"time"

	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/store/study"
)

const timeFormat = "Jan 2, 2006 3:04pm (MST)"

// NoteInfo prints a note information
func NoteInfo(note client.Note, notebookTitle string) {
	log.Infof("notebook: %s\n", notebookTitle)
	log.Infof("created at: %s\n", note.CreatedAt.Format(timeFormat))
	if !note.UpdatedAt.IsZero() && !note.UpdatedAt.Equal(note.CreatedAt) {
		log.Infof("updated at: %s\n", note.UpdatedAt.Format(timeFormat))
	}
	log.Infof("note id: %s\n", note.ID)
	if note.Title != "" {
		log.Infof("title: %s\n", note.Title)
	}

	fmt.Printf("\n------------------------content------------------------\n")
	fmt.Printf("%s", note.Content)
	fmt.Printf("\n-------------------------------------------------------\n")
}

// NoteContent prints the bare content of a note
func NoteContent(note client.Note) {
	fmt.Printf("%s", note.Content)
}

// NotebookInfo prints a notebook information
func NotebookInfo(notebook client.Notebook) {
	log.Infof("notebook title: %s\n", notebook.Title)
	log.Infof("notebook id: %s\n", notebook.ID)
	if notebook.Description != "" {
		log.Infof("description: %s\n", notebook.Description)
	}
	if notebook.Color != "" {
		log.Infof("color: %s\n", notebook.Color)
	}
}

// FlashcardSet prints a generated flashcard set
func FlashcardSet(set study.FlashcardSet) {
	log.Infof("flashcards for: %s\n", set.NoteTitle)
	log.Infof("generated at: %s\n", set.CreatedAt.Format(timeFormat))
	fmt.Println("")

	for i, card := range set.Cards {
		log.Plainf("%d) %s\n", i+1, card.Front)
		log.Plainf("   %s\n", card.Back)
	}
}

// Quiz prints a generated quiz with its answers
func Quiz(quiz study.Quiz, showAnswers bool) {
	log.Infof("quiz for: %s\n", quiz.NoteTitle)
	log.Infof("generated at: %s\n", quiz.CreatedAt.Format(timeFormat))
	fmt.Println("")

	for i, q := range quiz.Questions {
		log.Plainf("%d) %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			log.Plainf("   %c. %s\n", 'a'+j, opt)
		}
		if showAnswers {
			log.Plainf("   answer: %s\n", q.CorrectAnswer)
		}
	}
}

// Elapsed formats how long ago t was, for listings
func Elapsed(t time.Time, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
