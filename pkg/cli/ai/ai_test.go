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

package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewService(client.New(server.URL, "test", server.Client()))
}

func TestExplain(t *testing.T) {
	var requests int

	mux := http.NewServeMux()
	mux.HandleFunc("/ai/explain-text", func(w http.ResponseWriter, r *http.Request) {
		requests++

		var payload struct {
			Text         string `json:"text"`
			Instructions string `json:"instructions"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload), "decoding the request")
		assert.Equal(t, "binary search", payload.Text, "text mismatch")
		assert.Contains(t, payload.Instructions, "2-3 sentences", "default instructions should be attached")

		fmt.Fprint(w, `{"success": true, "explanation": "halves the search range each step"}`)
	})

	s := newTestService(t, mux)

	got, err := s.Explain("token-abc", "binary search")
	require.NoError(t, err, "explaining")
	assert.Equal(t, "halves the search range each step", got, "explanation mismatch")

	// the second call for the same text is served from the cache
	got, err = s.Explain("token-abc", "binary search")
	require.NoError(t, err, "explaining again")
	assert.Equal(t, "halves the search range each step", got, "cached explanation mismatch")
	assert.Equal(t, 1, requests, "repeated explanation should not hit the server")
}

func TestExplainEmptyText(t *testing.T) {
	s := newTestService(t, http.NewServeMux())

	_, err := s.Explain("token-abc", "   \n\t")
	assert.Equal(t, ErrEmptyText, errors.Cause(err), "error mismatch")
}

func TestGenerateFlashcards(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ai/generate-notecards", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": [{"front": "complexity?", "back": "O(log n)"}]}`)
	})

	s := newTestService(t, mux)

	cards, err := s.GenerateFlashcards("token-abc", "binary search notes")
	require.NoError(t, err, "generating flashcards")
	require.Len(t, cards, 1, "card count mismatch")
	assert.Equal(t, "O(log n)", cards[0].Back, "card back mismatch")
}

func TestGenerateQuizRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ai/generate-quiz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "message": "content too short"}`)
	})

	s := newTestService(t, mux)

	_, err := s.GenerateQuiz("token-abc", "hi")
	require.Error(t, err, "generation should fail")
	assert.Contains(t, err.Error(), "content too short", "rejection message mismatch")
}
