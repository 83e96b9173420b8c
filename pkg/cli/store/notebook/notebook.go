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

// Package notebook provides the store that caches the user's notebooks
package notebook

import (
	"sync"

	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/database"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/store"
	"github.com/pkg/errors"
)

// mutationScope groups create, update and delete requests under one
// generation scope so that a full fetch invalidates them all
const mutationScope = "mutations"

// Store is a cache of the user's notebooks, kept consistent with the server
// by applying confirmed mutations locally instead of refetching. The server
// remains the source of truth; the cache is an optimization.
type Store struct {
	api *client.Client
	db  *database.DB

	mu        sync.Mutex
	notebooks []client.Notebook
	loading   bool
	lastError string

	gens store.Generations
	hub  store.Hub
}

// Result is the outcome of a notebook mutation
type Result struct {
	OK       bool
	Error    string
	Notebook client.Notebook
}

// New returns a notebook store backed by the given client and cache database
func New(api *client.Client, db *database.DB) *Store {
	s := &Store{
		api: api,
		db:  db,
	}
	s.restore()

	return s
}

// restore loads the cached notebooks from the local database
func (s *Store) restore() {
	notebooks, err := database.GetNotebooks(s.db)
	if err != nil {
		log.Error(errors.Wrap(err, "restoring cached notebooks").Error() + "\n")
		return
	}

	for _, n := range notebooks {
		s.notebooks = append(s.notebooks, client.Notebook(n))
	}
}

// All returns a copy of the cached notebooks in server order
func (s *Store) All() []client.Notebook {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := make([]client.Notebook, len(s.notebooks))
	copy(ret, s.notebooks)

	return ret
}

// Get returns the cached notebook with the given id
func (s *Store) Get(id string) (client.Notebook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notebooks {
		if n.ID == id {
			return n, true
		}
	}

	return client.Notebook{}, false
}

// FindByTitle returns the cached notebook with the given title
func (s *Store) FindByTitle(title string) (client.Notebook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notebooks {
		if n.Title == title {
			return n, true
		}
	}

	return client.Notebook{}, false
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

// Fetch replaces the cached collection with the server's. A fetch that
// resolves after a newer request leaves the cache untouched.
func (s *Store) Fetch(token string) store.Result {
	gen := s.begin()

	notebooks, err := s.api.GetNotebooks(token)
	if err != nil {
		s.fail(errors.Cause(err))
		return store.Fail(errors.Cause(err))
	}

	s.mu.Lock()
	if s.gens.ApplyAll(gen) {
		s.notebooks = notebooks
		s.persistAll(notebooks)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return store.Succeed()
}

// Create creates a notebook on the server and appends the confirmed record
// to the cache
func (s *Store) Create(token string, params client.NotebookParams) Result {
	gen := s.begin()

	created, err := s.api.CreateNotebook(token, params)
	if err != nil {
		s.fail(errors.Cause(err))
		return Result{Error: errors.Cause(err).Error()}
	}

	s.mu.Lock()
	if s.gens.Apply(mutationScope, gen) {
		s.notebooks = append(s.notebooks, created)
		s.persistInsert(created)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return Result{OK: true, Notebook: created}
}

// Update updates a notebook on the server and replaces the cached record
func (s *Store) Update(token, id string, params client.NotebookParams) Result {
	gen := s.begin()

	updated, err := s.api.UpdateNotebook(token, id, params)
	if err != nil {
		s.fail(errors.Cause(err))
		return Result{Error: errors.Cause(err).Error()}
	}

	s.mu.Lock()
	if s.gens.Apply(mutationScope, gen) {
		for i, n := range s.notebooks {
			if n.ID == id {
				s.notebooks[i] = updated
				break
			}
		}
		s.persistUpdate(updated)
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return Result{OK: true, Notebook: updated}
}

// Delete deletes a notebook on the server and drops the cached record. Notes
// belonging to the notebook are not touched; reconciling them is the note
// store's concern.
func (s *Store) Delete(token, id string) store.Result {
	gen := s.begin()

	if err := s.api.DeleteNotebook(token, id); err != nil {
		s.fail(errors.Cause(err))
		return store.Fail(errors.Cause(err))
	}

	s.mu.Lock()
	if s.gens.Apply(mutationScope, gen) {
		for i, n := range s.notebooks {
			if n.ID == id {
				s.notebooks = append(s.notebooks[:i], s.notebooks[i+1:]...)
				break
			}
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

	s.notebooks = nil
	s.loading = false
	s.lastError = ""

	if err := database.ExpungeAllNotebooks(s.db); err != nil {
		log.Error(errors.Wrap(err, "clearing cached notebooks").Error() + "\n")
	}
	s.mu.Unlock()
	s.hub.Notify()
}

// persistAll replaces the cached notebook rows. Cache writes are
// fire-and-forget: a failure is logged and the in-memory state stays intact.
func (s *Store) persistAll(notebooks []client.Notebook) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Error(errors.Wrap(err, "beginning a notebook cache transaction").Error() + "\n")
		return
	}

	if err := database.ExpungeAllNotebooks(tx); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "expunging cached notebooks").Error() + "\n")
		return
	}

	for _, n := range notebooks {
		if err := database.Notebook(n).Insert(tx); err != nil {
			tx.Rollback()
			log.Error(errors.Wrap(err, "caching a notebook").Error() + "\n")
			return
		}
	}

	tx.Commit()
}

func (s *Store) persistInsert(n client.Notebook) {
	if err := database.Notebook(n).Insert(s.db); err != nil {
		log.Error(errors.Wrap(err, "caching a created notebook").Error() + "\n")
	}
}

func (s *Store) persistUpdate(n client.Notebook) {
	if err := database.Notebook(n).Update(s.db); err != nil {
		log.Error(errors.Wrap(err, "caching an updated notebook").Error() + "\n")
	}
}

func (s *Store) persistExpunge(id string) {
	if err := (database.Notebook{ID: id}).Expunge(s.db); err != nil {
		log.Error(errors.Wrap(err, "expunging a cached notebook").Error() + "\n")
	}
}
