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

// Notebook is a notebook in the response
type Notebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NotebookParams is a payload for creating or updating a notebook
type NotebookParams struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// GetNotebooks gets the full set of notebooks from the server
func (c *Client) GetNotebooks(token string) ([]Notebook, error) {
	body, err := c.doAuthorized("GET", "/notebooks", token, "")
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	var resp []Notebook
	if err := decode(body, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// CreateNotebook creates a new notebook in the server
func (c *Client) CreateNotebook(token string, params NotebookParams) (Notebook, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return Notebook{}, errors.Wrap(err, "marshaling payload")
	}

	body, err := c.doAuthorized("POST", "/notebooks", token, string(b))
	if err != nil {
		return Notebook{}, errors.Wrap(err, "posting a notebook to the server")
	}

	var resp Notebook
	if err := decode(body, &resp); err != nil {
		return Notebook{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// UpdateNotebook updates a notebook in the server
func (c *Client) UpdateNotebook(token, id string, params NotebookParams) (Notebook, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return Notebook{}, errors.Wrap(err, "marshaling payload")
	}

	endpoint := fmt.Sprintf("/notebooks/%s", id)
	body, err := c.doAuthorized("PUT", endpoint, token, string(b))
	if err != nil {
		return Notebook{}, errors.Wrap(err, "putting a notebook to the server")
	}

	var resp Notebook
	if err := decode(body, &resp); err != nil {
		return Notebook{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// DeleteNotebook deletes a notebook in the server
func (c *Client) DeleteNotebook(token, id string) error {
	endpoint := fmt.Sprintf("/notebooks/%s", id)
	if _, err := c.doAuthorized("DELETE", endpoint, token, ""); err != nil {
		return errors.Wrap(err, "deleting a notebook in the server")
	}

	return nil
}
