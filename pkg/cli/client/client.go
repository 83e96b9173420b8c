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

// Package client provides interfaces for interacting with the Inkpot server
// and the data structures for responses
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong credentials")

// InvalidLoginError is an error for a rejected sign-in. It carries the
// server's message and matches ErrInvalidLogin under errors.Is.
type InvalidLoginError struct {
	Message string
}

func (e *InvalidLoginError) Error() string {
	if e.Message == "" {
		return ErrInvalidLogin.Error()
	}

	return e.Message
}

// Is reports a match against the ErrInvalidLogin sentinel
func (e *InvalidLoginError) Is(target error) bool {
	return target == ErrInvalidLogin
}

// ErrAuthRequired is an error for an authenticated request made without a token
var ErrAuthRequired = errors.New("no token available")

// NetworkError represents a transport failure with no server response
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Err)
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError represents an HTTP error response from the server
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// DecodeError represents a response body that is not valid JSON
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	excerpt := e.Body
	if len(excerpt) > 100 {
		excerpt = excerpt[:100] + "..."
	}
	return fmt.Sprintf("invalid JSON response: %s", excerpt)
}

// Unwrap returns the underlying decoding error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
	return &http.Client{
		Transport: transport,
	}
}

// Client makes requests against the Inkpot API on behalf of the caller.
// The bearer token is an explicit argument on every authenticated method;
// the client itself holds no session state.
type Client struct {
	APIEndpoint string
	Version     string
	HTTPClient  *http.Client
}

// New returns a new Client for the given API endpoint
func New(apiEndpoint, version string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		APIEndpoint: apiEndpoint,
		Version:     version,
		HTTPClient:  hc,
	}
}

// errorEnvelope is the conventional error response body from the server
type errorEnvelope struct {
	Error string `json:"error"`
}

// looksLikeMarkup reports whether the body appears to be an HTML document
// rather than a JSON payload
func looksLikeMarkup(body string) bool {
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html")
}

// errorMessage extracts a human-readable message from an error response body.
// The server conventionally responds with an {error: string} envelope; a markup
// body indicates that the endpoint is not pointing at the API at all.
func errorMessage(statusCode int, body string) string {
	var envelope errorEnvelope
	if err := json.Unmarshal([]byte(body), &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}

	if looksLikeMarkup(body) {
		return fmt.Sprintf("server returned markup instead of JSON (status %d). Did you configure your endpoint correctly?", statusCode)
	}

	if trimmed := strings.TrimSpace(body); trimmed != "" {
		return trimmed
	}

	return fmt.Sprintf("HTTP error: status %d", statusCode)
}

// do makes a single http request to the given path in the api endpoint. It
// attaches the bearer token when one is given. It makes exactly one attempt;
// retrying is up to the caller.
func (c *Client) do(method, path, token, body string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s%s", c.APIEndpoint, path)
	req, err := http.NewRequest(method, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("CLI-Version", c.Version)

	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	log.Debug("HTTP %s %s\n", method, path)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response body for %d", res.StatusCode)
	}

	if res.StatusCode >= 400 {
		return nil, &HTTPError{
			StatusCode: res.StatusCode,
			Message:    errorMessage(res.StatusCode, string(respBody)),
		}
	}

	return respBody, nil
}

// doAuthorized makes a http request to the given path in the api endpoint as a
// user with the appropriate headers. The given path should include the
// preceding slash.
func (c *Client) doAuthorized(method, path, token, body string) ([]byte, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	return c.do(method, path, token, body)
}

// decode unmarshals the given response body into dest
func decode(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return &DecodeError{Body: string(body), Err: err}
	}

	return nil
}
