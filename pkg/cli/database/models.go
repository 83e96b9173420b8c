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

package database

import (
	"time"

	"github.com/pkg/errors"
)

// Notebook is a cached notebook record
type Notebook struct {
	ID          string
	Title       string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Note is a cached note record
type Note struct {
	ID         string
	NotebookID string
	Title      string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Insert inserts a new notebook
func (n Notebook) Insert(q Queryable) error {
	_, err := q.Exec("INSERT INTO notebooks (id, title, description, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		n.ID, n.Title, n.Description, n.Color, n.CreatedAt, n.UpdatedAt)

	if err != nil {
		return errors.Wrapf(err, "inserting notebook with id %s", n.ID)
	}

	return nil
}

// Update updates the notebook with the given data
func (n Notebook) Update(q Queryable) error {
	_, err := q.Exec("UPDATE notebooks SET title = ?, description = ?, color = ?, created_at = ?, updated_at = ? WHERE id = ?",
		n.Title, n.Description, n.Color, n.CreatedAt, n.UpdatedAt, n.ID)

	if err != nil {
		return errors.Wrapf(err, "updating the notebook with id %s", n.ID)
	}

	return nil
}

// Expunge hard-deletes the notebook from the database
func (n Notebook) Expunge(q Queryable) error {
	_, err := q.Exec("DELETE FROM notebooks WHERE id = ?", n.ID)
	if err != nil {
		return errors.Wrap(err, "expunging a notebook locally")
	}

	return nil
}

// ExpungeAllNotebooks removes all cached notebooks
func ExpungeAllNotebooks(q Queryable) error {
	_, err := q.Exec("DELETE FROM notebooks")
	if err != nil {
		return errors.Wrap(err, "expunging all notebooks")
	}

	return nil
}

// GetNotebooks returns all cached notebooks ordered by creation time
func GetNotebooks(q Queryable) ([]Notebook, error) {
	rows, err := q.Query("SELECT id, title, description, color, created_at, updated_at FROM notebooks ORDER BY created_at")
	if err != nil {
		return nil, errors.Wrap(err, "querying notebooks")
	}
	defer rows.Close()

	var ret []Notebook
	for rows.Next() {
		var n Notebook
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Color, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning a notebook row")
		}
		ret = append(ret, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating notebook rows")
	}

	return ret, nil
}

// Insert inserts a new note
func (n Note) Insert(q Queryable) error {
	_, err := q.Exec("INSERT INTO notes (id, notebook_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		n.ID, n.NotebookID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)

	if err != nil {
		return errors.Wrapf(err, "inserting note with id %s", n.ID)
	}

	return nil
}

// Update updates the note with the given data
func (n Note) Update(q Queryable) error {
	_, err := q.Exec("UPDATE notes SET notebook_id = ?, title = ?, content = ?, created_at = ?, updated_at = ? WHERE id = ?",
		n.NotebookID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt, n.ID)

	if err != nil {
		return errors.Wrapf(err, "updating the note with id %s", n.ID)
	}

	return nil
}

// Expunge hard-deletes the note from the database
func (n Note) Expunge(q Queryable) error {
	_, err := q.Exec("DELETE FROM notes WHERE id = ?", n.ID)
	if err != nil {
		return errors.Wrap(err, "expunging a note locally")
	}

	return nil
}

// ExpungeNotesByNotebook removes all cached notes that belong to the given notebook
func ExpungeNotesByNotebook(q Queryable, notebookID string) error {
	_, err := q.Exec("DELETE FROM notes WHERE notebook_id = ?", notebookID)
	if err != nil {
		return errors.Wrapf(err, "expunging notes of notebook %s", notebookID)
	}

	return nil
}

// ExpungeAllNotes removes all cached notes
func ExpungeAllNotes(q Queryable) error {
	_, err := q.Exec("DELETE FROM notes")
	if err != nil {
		return errors.Wrap(err, "expunging all notes")
	}

	return nil
}

// GetNotes returns all cached notes ordered by creation time
func GetNotes(q Queryable) ([]Note, error) {
	return queryNotes(q, "SELECT id, notebook_id, title, content, created_at, updated_at FROM notes ORDER BY created_at")
}

// GetNotesByNotebook returns the cached notes that belong to the given notebook
func GetNotesByNotebook(q Queryable, notebookID string) ([]Note, error) {
	return queryNotes(q, "SELECT id, notebook_id, title, content, created_at, updated_at FROM notes WHERE notebook_id = ? ORDER BY created_at", notebookID)
}

func queryNotes(q Queryable, query string, args ...interface{}) ([]Note, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	defer rows.Close()

	var ret []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.NotebookID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning a note row")
		}
		ret = append(ret, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating note rows")
	}

	return ret, nil
}
