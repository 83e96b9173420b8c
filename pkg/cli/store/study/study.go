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

// Package study provides the registry of generated study materials.
// Materials live in memory only: they are never sent back to the server and
// do not survive the process.
package study

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/store"
	"github.com/inkpot/inkpot/pkg/clock"
)

// FlashcardSet is a generated set of flashcards for one note
type FlashcardSet struct {
	ID        string
	NoteID    string
	NoteTitle string
	Cards     []client.Flashcard
	CreatedAt time.Time
}

// Quiz is a generated quiz for one note
type Quiz struct {
	ID        string
	NoteID    string
	NoteTitle string
	Questions []client.QuizQuestion
	CreatedAt time.Time
}

// Registry holds the study materials generated during the session, newest
// first
type Registry struct {
	clock clock.Clock

	mu      sync.Mutex
	sets    []FlashcardSet
	quizzes []Quiz

	hub store.Hub
}

// NewRegistry returns an empty study material registry
func NewRegistry(c clock.Clock) *Registry {
	return &Registry{
		clock: c,
	}
}

// AddFlashcardSet registers a generated flashcard set and returns the stored
// record. NoteID may be empty when the source note was never saved.
func (r *Registry) AddFlashcardSet(noteID, noteTitle string, cards []client.Flashcard) FlashcardSet {
	set := FlashcardSet{
		ID:        uuid.NewString(),
		NoteID:    noteID,
		NoteTitle: noteTitle,
		Cards:     cards,
		CreatedAt: r.clock.Now(),
	}

	r.mu.Lock()
	r.sets = append([]FlashcardSet{set}, r.sets...)
	r.mu.Unlock()
	r.hub.Notify()

	return set
}

// AddQuiz registers a generated quiz and returns the stored record
func (r *Registry) AddQuiz(noteID, noteTitle string, questions []client.QuizQuestion) Quiz {
	quiz := Quiz{
		ID:        uuid.NewString(),
		NoteID:    noteID,
		NoteTitle: noteTitle,
		Questions: questions,
		CreatedAt: r.clock.Now(),
	}

	r.mu.Lock()
	r.quizzes = append([]Quiz{quiz}, r.quizzes...)
	r.mu.Unlock()
	r.hub.Notify()

	return quiz
}

// FlashcardSets returns the registered flashcard sets, newest first
func (r *Registry) FlashcardSets() []FlashcardSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret := make([]FlashcardSet, len(r.sets))
	copy(ret, r.sets)

	return ret
}

// Quizzes returns the registered quizzes, newest first
func (r *Registry) Quizzes() []Quiz {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret := make([]Quiz, len(r.quizzes))
	copy(ret, r.quizzes)

	return ret
}

// GetFlashcardSet returns the flashcard set with the given id
func (r *Registry) GetFlashcardSet(id string) (FlashcardSet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sets {
		if s.ID == id {
			return s, true
		}
	}

	return FlashcardSet{}, false
}

// GetQuiz returns the quiz with the given id
func (r *Registry) GetQuiz(id string) (Quiz, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, q := range r.quizzes {
		if q.ID == id {
			return q, true
		}
	}

	return Quiz{}, false
}

// Clear drops every registered material
func (r *Registry) Clear() {
	r.mu.Lock()
	r.sets = nil
	r.quizzes = nil
	r.mu.Unlock()
	r.hub.Notify()
}

// Subscribe registers a callback invoked after every registry change
func (r *Registry) Subscribe(fn func()) func() {
	return r.hub.Subscribe(fn)
}
