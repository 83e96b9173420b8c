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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkpot/inkpot/pkg/assert"
	"github.com/pkg/errors"
)

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
		expected   string
	}{
		{
			name:       "error envelope",
			statusCode: 400,
			body:       `{"error": "title is required"}`,
			expected:   "title is required",
		},
		{
			name:       "markup body",
			statusCode: 404,
			body:       "<!DOCTYPE html><html><body>Not Found</body></html>",
			expected:   "server returned markup instead of JSON (status 404). Did you configure your endpoint correctly?",
		},
		{
			name:       "plain text body",
			statusCode: 500,
			body:       "something broke",
			expected:   "something broke",
		},
		{
			name:       "empty body",
			statusCode: 502,
			body:       "",
			expected:   "HTTP error: status 502",
		},
		{
			name:       "envelope without message",
			statusCode: 500,
			body:       `{"error": ""}`,
			expected:   `{"error": ""}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := errorMessage(tc.statusCode, tc.body)
			assert.Equal(t, got, tc.expected, "message mismatch")
		})
	}
}

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, "POST", "method mismatch")
		assert.Equal(t, r.URL.Path, "/auth/signin", "path mismatch")
		assert.Equal(t, r.Header.Get("Content-Type"), "application/json", "content type mismatch")

		fmt.Fprint(w, `{"user": {"id": "u-1", "email": "alice@example.com"}, "access_token": "tok-abc"}`)
	}))
	defer server.Close()

	c := New(server.URL, "test", nil)
	resp, err := c.SignIn("alice@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, resp.AccessToken, "tok-abc", "token mismatch")
	assert.Equal(t, resp.User.Email, "alice@example.com", "user email mismatch")
}

func TestSignInInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid credentials"}`)
	}))
	defer server.Close()

	c := New(server.URL, "test", nil)
	_, err := c.SignIn("alice@example.com", "wrong")

	if !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("expected an invalid login error, got %v", err)
	}
	assert.Equal(t, err.Error(), "invalid credentials", "error message mismatch")
}

func TestBearerToken(t *testing.T) {
	var gotAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	c := New(server.URL, "test", nil)
	if _, err := c.GetNotebooks("tok-abc"); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, gotAuthorization, "Bearer tok-abc", "authorization header mismatch")
}

func TestAuthRequired(t *testing.T) {
	c := New("http://localhost:0", "test", nil)

	_, err := c.GetNotebooks("")
	assert.Equal(t, errors.Cause(err), ErrAuthRequired, "expected ErrAuthRequired")

	_, err = c.GetProfile("")
	assert.Equal(t, errors.Cause(err), ErrAuthRequired, "expected ErrAuthRequired")
}

func TestNetworkError(t *testing.T) {
	// a closed server produces a transport failure with no response
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL, "test", nil)
	_, err := c.GetNotebooks("tok-abc")

	var netErr *NetworkError
	assert.Equal(t, errors.As(err, &netErr), true, "expected a NetworkError")
}

func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not json")
	}))
	defer server.Close()

	c := New(server.URL, "test", nil)
	_, err := c.GetNotebooks("tok-abc")

	var decodeErr *DecodeError
	assert.Equal(t, errors.As(err, &decodeErr), true, "expected a DecodeError")
}

func TestHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": "plan limit reached"}`)
	}))
	defer server.Close()

	c := New(server.URL, "test", nil)
	_, err := c.CreateNotebook("tok-abc", NotebookParams{Title: "biology"})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected an HTTPError, got %v", err)
	}
	assert.Equal(t, httpErr.StatusCode, http.StatusForbidden, "status mismatch")
	assert.Equal(t, httpErr.Message, "plan limit reached", "message mismatch")
	assert.Equal(t, httpErr.IsUnauthorized(), false, "403 is not unauthorized")
}

func TestGenerateNotecards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/ai/generate-notecards", "path mismatch")
		fmt.Fprint(w, `{"success": true, "data": [{"front": "What is mitosis?", "back": "Cell division"}]}`)
	}))
	defer server.Close()

	c := New(server.URL, "test", nil)
	cards, err := c.GenerateNotecards("tok-abc", "# Mitosis\nCell division...")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, len(cards), 1, "card count mismatch")
	assert.Equal(t, cards[0].Front, "What is mitosis?", "front mismatch")
}

func TestGenerateQuizRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "message": "content too short"}`)
	}))
	defer server.Close()

	c := New(server.URL, "test", nil)
	_, err := c.GenerateQuiz("tok-abc", "hi")

	assert.Equal(t, errors.Cause(err).Error(), "content too short", "rejection message mismatch")
}
