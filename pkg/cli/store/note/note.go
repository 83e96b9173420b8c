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

// Package note provides the store that caches notes and tracks the note
// being worked on
package note

import (
	"sync"

	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/database"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/store"
	"github.com/pkg/errors"
)

const mutationScope = "mutations"

// notebookScope is the generation scope for a by-notebook fetch. Fetches for
// different notebooks race only against themselves and full replacements.
func notebookScope(notebookID string) string {
	return "notebook/" + notebookID
}

// Store is a cache of notes. A by-notebook fetch replaces only the notes of
// that notebook; notes fetched for other notebooks are kept. The store also
// tracks the current note, the one most recently opened or created.
type Store struct {
	api *client.Client
	db  *database.DB

	mu        sync.Mutex
	notes     []client.Note
	current   *client.Note
	loading   bool
	lastError string

	gens store.Generations
	hub  store.Hub
}

// Result is the outcome of a note mutation
type Result struct {
	OK    bool
	Error string
	Note  client.Note
}

// New returns a note store backed by the given client and cache database
func New(api *client.Client, db *database.DB) *Store {
	s := &Store{
		api: api,
		db:  db,
	}
	s.restore()

	return s
}

func (s *Store) restore() {
	notes, err := database.GetNotes(s.db)
	if err != nil {
		log.Error(errors.Wrap(err, "restoring cached notes").Error() + "\n")
		return
	}

	for _, n := range notes {
		s.notes = append(s.notes, client.Note(n))
	}
}

// All returns a copy of every cached note
func (s *Store) All() []client.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := make([]client.Note, len(s.notes))
	copy(ret, s.notes)

	return ret
}

// Get returns the cached note with the given id
func (s *Store) Get(id string) (client.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}

	return client.Note{}, false
}

// GetByNotebook returns the cached notes belonging to the given notebook, in
// server order
func (s *Store) GetByNotebook(notebookID string) []client.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ret []client.Note
	for _, n := range s.notes {
		if n.NotebookID == notebookID {
			ret = append(ret, n)
		}
	}

	return ret
}

// Current returns the note most recently opened or created, if any
func (s *Store) Current() (client.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return client.Note{}, false
	}

	return *s.current, true
}

// Loading reports whether a request is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// LastError returns the message of the most recent failure, if any
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastError
}

// Subscribe registers a callback invoked after every state change
func (s *Store) Subscribe(fn func()) func() {
	return s.hub.Subscribe(fn)
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	gen := s.gens.Begin()
	s.mu.Unlock()
	s.hub.Notify()

	return gen
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()
	s.hub.Notify()
}

// FetchByNotebook replaces the cached notes of one notebook with the
// server's listing. The listing omits notebookId, so each note is tagged with
// the notebook it was fetched for. Notes of other notebooks are untouched.
func (s *Store) FetchByNotebook(token, notebookID string) store.Result {
	gen := s.begin()

	fetched, err := s.api.GetNotebookNotes(token, notebookID)
	if err != nil {
		s.fail(errors.Cause(err))
		return store.Fail(errors.Cause(err))
	}

	for i := range fetched {
		fetched[i].NotebookID = notebookID
	}

	s.mu.Lock()
	if s.gens.Apply(notebookScope(notebookID), gen) {
		kept := make([]client.Note, 0, len(s.notes)+len(fetched))
		for _, n := range s.notes {
			if n.NotebookID != notebookID {
				kept = append(kept, n)
			}
		}
		s.notes = append(kept, fetched...)
		s.persistNotebook(notebookID, fetched)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return store.Succeed()
}

// Fetch gets a single note from the server, upserts it into the cache and
// makes it the current note
func (s *Store) Fetch(token, id string) Result {
	gen := s.begin()

	fetched, err := s.api.GetNote(token, id)
	if err != nil {
		s.fail(errors.Cause(err))
		return Result{Error: errors.Cause(err).Error()}
	}

	s.mu.Lock()
	if s.gens.Apply("note/"+id, gen) {
		s.upsert(fetched)
		s.current = &fetched
		s.persistUpsert(fetched)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return Result{OK: true, Note: fetched}
}

// Create creates a note on the server, appends the confirmed record to the
// cache and makes it the current note
func (s *Store) Create(token string, params client.NoteParams) Result {
	gen := s.begin()

	created, err := s.api.CreateNote(token, params)
	if err != nil {
		s.fail(errors.Cause(err))
		return Result{Error: errors.Cause(err).Error()}
	}
	if created.NotebookID == "" {
		created.NotebookID = params.NotebookID
	}

	s.mu.Lock()
	if s.gens.Apply(mutationScope, gen) {
		s.notes = append(s.notes, created)
		s.current = &created
		s.persistUpsert(created)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return Result{OK: true, Note: created}
}

// Update updates a note on the server and replaces the cached record. The
// current note follows the update when it is the one being edited.
func (s *Store) Update(token, id string, params client.NoteParams) Result {
	gen := s.begin()

	updated, err := s.api.UpdateNote(token, id, params)
	if err != nil {
		s.fail(errors.Cause(err))
		return Result{Error: errors.Cause(err).Error()}
	}

	s.mu.Lock()
	if s.gens.Apply(mutationScope, gen) {
		for i, n := range s.notes {
			if n.ID == id {
				if updated.NotebookID == "" {
					updated.NotebookID = n.NotebookID
				}
				s.notes[i] = updated
				break
			}
		}
		if s.current != nil && s.current.ID == id {
			s.current = &updated
		}
		s.persistUpsert(updated)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return Result{OK: true, Note: updated}
}

// Delete deletes a note on the server and drops the cached record, clearing
// the current note if it is the one removed
func (s *Store) Delete(token, id string) store.Result {
	gen := s.begin()

	if err := s.api.DeleteNote(token, id); err != nil {
		s.fail(errors.Cause(err))
		return store.Fail(errors.Cause(err))
	}

	s.mu.Lock()
	if s.gens.Apply(mutationScope, gen) {
		for i, n := range s.notes {
			if n.ID == id {
				s.notes = append(s.notes[:i], s.notes[i+1:]...)
				break
			}
		}
		if s.current != nil && s.current.ID == id {
			s.current = nil
		}
		s.persistExpunge(id)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return store.Succeed()
}

// Clear empties the store and its cache, typically on logout
func (s *Store) Clear() {
	s.mu.Lock()
	gen := s.gens.Begin()
	s.gens.ApplyAll(gen)

	s.notes = nil
	s.current = nil
	s.loading = false
	s.lastError = ""

	if err := database.ExpungeAllNotes(s.db); err != nil {
		log.Error(errors.Wrap(err, "clearing cached notes").Error() + "\n")
	}
	s.mu.Unlock()
	s.hub.Notify()
}

// upsert replaces the cached record with the same id, or appends
func (s *Store) upsert(n client.Note) {
	for i, existing := range s.notes {
		if existing.ID == n.ID {
			s.notes[i] = n
			return
		}
	}

	s.notes = append(s.notes, n)
}

// persistNotebook replaces the cached note rows of one notebook. Cache
// writes are fire-and-forget: a failure is logged and the in-memory state
// stays intact.
func (s *Store) persistNotebook(notebookID string, notes []client.Note) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Error(errors.Wrap(err, "beginning a note cache transaction").Error() + "\n")
		return
	}

	if err := database.ExpungeNotesByNotebook(tx, notebookID); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "expunging cached notes").Error() + "\n")
		return
	}

	for _, n := range notes {
		if err := database.Note(n).Insert(tx); err != nil {
			tx.Rollback()
			log.Error(errors.Wrap(err, "caching a note").Error() + "\n")
			return
		}
	}

	tx.Commit()
}

func (s *Store) persistUpsert(n client.Note) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Error(errors.Wrap(err, "beginning a note cache transaction").Error() + "\n")
		return
	}

	if err := (database.Note{ID: n.ID}).Expunge(tx); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "expunging a cached note").Error() + "\n")
		return
	}
	if err := database.Note(n).Insert(tx); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "caching a note").Error() + "\n")
		return
	}

	tx.Commit()
}

func (s *Store) persistExpunge(id string) {
	if err := (database.Note{ID: id}).Expunge(s.db); err != nil {
		log.Error(errors.Wrap(err, "expunging a cached note").Error() + "\n")
	}
}
