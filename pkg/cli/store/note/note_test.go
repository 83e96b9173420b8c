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

package note

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/database"
	"github.com/inkpot/inkpot/pkg/cli/store/notebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

const testToken = "token-abc"

func newTestStore(t *testing.T, handler http.Handler) (*Store, *database.DB) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	db := database.InitTestMemoryDB(t)
	api := client.New(server.URL, "test", server.Client())

	return New(api, db), db
}

func TestFetchByNotebook(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/notebook/nb-1", func(w http.ResponseWriter, r *http.Request) {
		// the by-notebook listing omits notebookId
		fmt.Fprint(w, `[
			{"id": "note-1", "title": "binary search", "content": "halve the range"},
			{"id": "note-2", "title": "quicksort"}
		]`)
	})

	s, db := newTestStore(t, mux)

	res := s.FetchByNotebook(testToken, "nb-1")

	require.True(t, res.OK, "fetch should succeed")

	notes := s.GetByNotebook("nb-1")
	require.Len(t, notes, 2, "note count mismatch")
	assert.Equal(t, "nb-1", notes[0].NotebookID, "notes must be tagged with the notebook they were fetched for")
	assert.Equal(t, "binary search", notes[0].Title, "note title mismatch")

	cached, err := database.GetNotesByNotebook(db, "nb-1")
	require.NoError(t, err, "reading the cache")
	assert.Len(t, cached, 2, "cached note count mismatch")
}

func TestFetchByNotebookScopedReplace(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/notebook/nb-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "note-1", "title": "binary search"}]`)
	})
	mux.HandleFunc("/notes/notebook/nb-2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "note-3", "title": "sourdough"}]`)
	})

	s, _ := newTestStore(t, mux)

	require.True(t, s.FetchByNotebook(testToken, "nb-1").OK, "first fetch should succeed")
	require.True(t, s.FetchByNotebook(testToken, "nb-2").OK, "second fetch should succeed")

	assert.Len(t, s.GetByNotebook("nb-1"), 1, "a fetch for one notebook must not evict another's notes")
	assert.Len(t, s.GetByNotebook("nb-2"), 1, "note count mismatch")

	// refetching nb-1 replaces only nb-1 notes
	require.True(t, s.FetchByNotebook(testToken, "nb-1").OK, "refetch should succeed")
	assert.Len(t, s.All(), 2, "total note count mismatch")
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/note-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "note-1", "notebookId": "nb-1", "title": "binary search", "content": "halve the range"}`)
	})

	s, _ := newTestStore(t, mux)

	res := s.Fetch(testToken, "note-1")

	require.True(t, res.OK, "fetch should succeed")
	assert.Equal(t, "halve the range", res.Note.Content, "note content mismatch")

	current, ok := s.Current()
	require.True(t, ok, "fetched note should become current")
	assert.Equal(t, "note-1", current.ID, "current note mismatch")

	got, ok := s.Get("note-1")
	require.True(t, ok, "note should be cached")
	assert.Equal(t, "binary search", got.Title, "cached note mismatch")
}

func TestCreate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "note-9", "notebookId": "nb-1", "title": "new note"}`)
	})

	s, db := newTestStore(t, mux)

	res := s.Create(testToken, client.NoteParams{NotebookID: "nb-1", Title: "new note"})

	require.True(t, res.OK, "create should succeed")
	assert.Equal(t, "note-9", res.Note.ID, "created note id mismatch")

	current, ok := s.Current()
	require.True(t, ok, "created note should become current")
	assert.Equal(t, "note-9", current.ID, "current note mismatch")

	cached, err := database.GetNotesByNotebook(db, "nb-1")
	require.NoError(t, err, "reading the cache")
	assert.Len(t, cached, 1, "cached note count mismatch")
}

func TestUpdate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/notebook/nb-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "note-1", "title": "binary search"}]`)
	})
	mux.HandleFunc("/notes/note-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "note-1", "title": "binary search", "content": "updated content"}`)
	})

	s, _ := newTestStore(t, mux)

	require.True(t, s.FetchByNotebook(testToken, "nb-1").OK, "fetch should succeed")

	res := s.Update(testToken, "note-1", client.NoteParams{Content: "updated content"})

	require.True(t, res.OK, "update should succeed")

	got, ok := s.Get("note-1")
	require.True(t, ok, "note should be cached")
	assert.Equal(t, "updated content", got.Content, "cached note should be replaced")
	assert.Equal(t, "nb-1", got.NotebookID, "update must not lose the notebook tag")
}

func TestCreateUpdateFetchRoundTrip(t *testing.T) {
	var stored client.Note

	mux := http.NewServeMux()
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		var params client.NoteParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params), "decoding create params")

		stored = client.Note{ID: "note-1", NotebookID: params.NotebookID, Title: params.Title, Content: params.Content}
		require.NoError(t, json.NewEncoder(w).Encode(stored), "encoding create response")
	})
	mux.HandleFunc("/notes/note-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var params client.NoteParams
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params), "decoding update params")

			if params.NotebookID != "" {
				stored.NotebookID = params.NotebookID
			}
			if params.Title != "" {
				stored.Title = params.Title
			}
			if params.Content != "" {
				stored.Content = params.Content
			}
		}

		require.NoError(t, json.NewEncoder(w).Encode(stored), "encoding note response")
	})

	s, _ := newTestStore(t, mux)

	created := s.Create(testToken, client.NoteParams{NotebookID: "nb-1", Title: "draft", Content: "first pass"})
	require.True(t, created.OK, "create should succeed")

	updated := s.Update(testToken, "note-1", client.NoteParams{Title: "final", Content: "second pass"})
	require.True(t, updated.OK, "update should succeed")

	fetched := s.Fetch(testToken, "note-1")
	require.True(t, fetched.OK, "fetch should succeed")

	assert.Equal(t, "final", fetched.Note.Title, "round-tripped title mismatch")
	assert.Equal(t, "second pass", fetched.Note.Content, "round-tripped content mismatch")
	assert.Equal(t, "nb-1", fetched.Note.NotebookID, "round-tripped notebook mismatch")

	got, ok := s.Get("note-1")
	require.True(t, ok, "note should be cached")
	assert.Equal(t, fetched.Note, got, "cache should equal the fetched note")
}

func TestDelete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/notebook/nb-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "note-1", "title": "binary search"}, {"id": "note-2", "title": "quicksort"}]`)
	})
	mux.HandleFunc("/notes/note-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	s, db := newTestStore(t, mux)

	require.True(t, s.FetchByNotebook(testToken, "nb-1").OK, "fetch should succeed")
	require.True(t, s.Fetch(testToken, "note-1").OK, "fetch should succeed")

	res := s.Delete(testToken, "note-1")

	require.True(t, res.OK, "delete should succeed")

	_, ok := s.Get("note-1")
	assert.False(t, ok, "deleted note should be gone")
	_, ok = s.Current()
	assert.False(t, ok, "deleting the current note should clear it")

	cached, err := database.GetNotesByNotebook(db, "nb-1")
	require.NoError(t, err, "reading the cache")
	assert.Len(t, cached, 1, "cached note count mismatch")
}

func TestDeleteWithoutToken(t *testing.T) {
	s, _ := newTestStore(t, http.NewServeMux())

	res := s.Delete("", "note-1")

	assert.False(t, res.OK, "delete should fail without a token")
	assert.Equal(t, client.ErrAuthRequired.Error(), res.Error, "error message mismatch")
}

func TestClear(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/notebook/nb-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "note-1", "title": "binary search"}]`)
	})

	s, db := newTestStore(t, mux)

	require.True(t, s.FetchByNotebook(testToken, "nb-1").OK, "fetch should succeed")
	s.Clear()

	assert.Empty(t, s.All(), "store should be empty")
	_, ok := s.Current()
	assert.False(t, ok, "current note should be cleared")

	cached, err := database.GetNotes(db)
	require.NoError(t, err, "reading the cache")
	assert.Empty(t, cached, "cache should be empty")
}

func TestNotebookDeleteDoesNotCascade(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notebooks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "nb-1", "title": "algorithms"}]`)
	})
	mux.HandleFunc("/notebooks/nb-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("/notes/notebook/nb-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "note-1", "title": "binary search"}]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	db := database.InitTestMemoryDB(t)
	api := client.New(server.URL, "test", server.Client())

	notebooks := notebook.New(api, db)
	notes := New(api, db)

	require.True(t, notebooks.Fetch(testToken).OK, "notebook fetch should succeed")
	require.True(t, notes.FetchByNotebook(testToken, "nb-1").OK, "note fetch should succeed")

	require.True(t, notebooks.Delete(testToken, "nb-1").OK, "notebook delete should succeed")

	// removing a notebook leaves its notes until the next fetch resolves them
	assert.Len(t, notes.GetByNotebook("nb-1"), 1, "notebook deletion must not cascade into the note store")
}

func TestRestore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes/notebook/nb-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "note-1", "title": "binary search", "content": "halve the range"}]`)
	})

	s, db := newTestStore(t, mux)

	require.True(t, s.FetchByNotebook(testToken, "nb-1").OK, "fetch should succeed")

	restored := New(s.api, db)

	got, ok := restored.Get("note-1")
	require.True(t, ok, "restored store should serve the cached note")
	assert.Equal(t, "halve the range", got.Content, "restored note content mismatch")
}
