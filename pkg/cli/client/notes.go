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

package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Note is a note in the response. The by-notebook listing omits notebookId;
// the note store tags each note with the notebook it was fetched for.
type Note struct {
	ID         string    `json:"id"`
	NotebookID string    `json:"notebookId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NoteParams is a payload for creating or updating a note
type NoteParams struct {
	NotebookID string `json:"notebookId,omitempty"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
}

// GetNotebookNotes gets the server's note list for one notebook
func (c *Client) GetNotebookNotes(token, notebookID string) ([]Note, error) {
	endpoint := fmt.Sprintf("/notes/notebook/%s", notebookID)
	body, err := c.doAuthorized("GET", endpoint, token, "")
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	var resp []Note
	if err := decode(body, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// GetNote gets a single note from the server
func (c *Client) GetNote(token, id string) (Note, error) {
	endpoint := fmt.Sprintf("/notes/%s", id)
	body, err := c.doAuthorized("GET", endpoint, token, "")
	if err != nil {
		return Note{}, errors.Wrap(err, "making http request")
	}

	var resp Note
	if err := decode(body, &resp); err != nil {
		return Note{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// CreateNote creates a note in the server
func (c *Client) CreateNote(token string, params NoteParams) (Note, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return Note{}, errors.Wrap(err, "marshaling payload")
	}

	body, err := c.doAuthorized("POST", "/notes", token, string(b))
	if err != nil {
		return Note{}, errors.Wrap(err, "posting a note to the server")
	}

	var resp Note
	if err := decode(body, &resp); err != nil {
		return Note{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// UpdateNote updates a note in the server
func (c *Client) UpdateNote(token, id string, params NoteParams) (Note, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return Note{}, errors.Wrap(err, "marshaling payload")
	}

	endpoint := fmt.Sprintf("/notes/%s", id)
	body, err := c.doAuthorized("PUT", endpoint, token, string(b))
	if err != nil {
		return Note{}, errors.Wrap(err, "putting a note to the server")
	}

	var resp Note
	if err := decode(body, &resp); err != nil {
		return Note{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// DeleteNote removes a note in the server
func (c *Client) DeleteNote(token, id string) error {
	endpoint := fmt.Sprintf("/notes/%s", id)
	if _, err := c.doAuthorized("DELETE", endpoint, token, ""); err != nil {
		return errors.Wrap(err, "deleting a note in the server")
	}

	return nil
}
