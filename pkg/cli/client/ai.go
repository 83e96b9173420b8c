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

	"github.com/pkg/errors"
)

// Flashcard is a single generated notecard
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestion is a single generated quiz question
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// explainPayload is a payload for the explain-text endpoint
type explainPayload struct {
	Text         string `json:"text"`
	Instructions string `json:"instructions,omitempty"`
}

// generatePayload is a payload for the notecard and quiz generation endpoints
type generatePayload struct {
	Text string `json:"text"`
}

// explainResponse is a response from the explain-text endpoint
type explainResponse struct {
	Success     bool   `json:"success"`
	Explanation string `json:"explanation"`
	Message     string `json:"message"`
}

// notecardsResponse is a response from the generate-notecards endpoint
type notecardsResponse struct {
	Success bool        `json:"success"`
	Data    []Flashcard `json:"data"`
	Message string      `json:"message"`
}

// quizResponse is a response from the generate-quiz endpoint
type quizResponse struct {
	Success bool           `json:"success"`
	Data    []QuizQuestion `json:"data"`
	Message string         `json:"message"`
}

// rejectionError returns an error for a response that carried success=false
func rejectionError(message string) error {
	if message == "" {
		message = "the server rejected the request"
	}
	return errors.New(message)
}

// ExplainText asks the server to explain the given text
func (c *Client) ExplainText(token, text, instructions string) (string, error) {
	payload := explainPayload{
		Text:         text,
		Instructions: instructions,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "marshaling payload")
	}

	body, err := c.doAuthorized("POST", "/ai/explain-text", token, string(b))
	if err != nil {
		return "", errors.Wrap(err, "making http request")
	}

	var resp explainResponse
	if err := decode(body, &resp); err != nil {
		return "", errors.Wrap(err, "decoding payload")
	}

	if !resp.Success {
		return "", rejectionError(resp.Message)
	}

	return resp.Explanation, nil
}

// GenerateNotecards asks the server to synthesize flashcards from the given text
func (c *Client) GenerateNotecards(token, text string) ([]Flashcard, error) {
	b, err := json.Marshal(generatePayload{Text: text})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	body, err := c.doAuthorized("POST", "/ai/generate-notecards", token, string(b))
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	var resp notecardsResponse
	if err := decode(body, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}

	if !resp.Success {
		return nil, rejectionError(resp.Message)
	}

	return resp.Data, nil
}

// GenerateQuiz asks the server to synthesize a quiz from the given text
func (c *Client) GenerateQuiz(token, text string) ([]QuizQuestion, error) {
	b, err := json.Marshal(generatePayload{Text: text})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	body, err := c.doAuthorized("POST", "/ai/generate-quiz", token, string(b))
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	var resp quizResponse
	if err := decode(body, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}

	if !resp.Success {
		return nil, rejectionError(resp.Message)
	}

	return resp.Data, nil
}
