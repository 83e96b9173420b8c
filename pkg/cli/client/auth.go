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
	"net/http"

	"github.com/pkg/errors"
)

// User is the user record returned by the auth endpoints
type User struct {
	ID      string          `json:"id,omitempty"`
	Email   string          `json:"email,omitempty"`
	Name    string          `json:"name,omitempty"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

// credentialsPayload is a payload for the signin and signup endpoints
type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse is a response from the /auth/signin endpoint
type SignInResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

// SignUpResponse is a response from the /auth/signup endpoint
type SignUpResponse struct {
	User                      *User  `json:"user"`
	AccessToken               string `json:"access_token"`
	RequiresEmailVerification bool   `json:"requires_email_verification"`
}

// ProfileResponse is a response from the get profile endpoint
type ProfileResponse struct {
	Profile json.RawMessage `json:"profile"`
}

// SignIn requests a bearer token for the given credentials
func (c *Client) SignIn(email, password string) (SignInResponse, error) {
	payload := credentialsPayload{
		Email:    email,
		Password: password,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return SignInResponse{}, errors.Wrap(err, "marshaling payload")
	}

	body, err := c.do("POST", "/auth/signin", "", string(b))
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			return SignInResponse{}, &InvalidLoginError{Message: httpErr.Message}
		}
		return SignInResponse{}, errors.Wrap(err, "making http request")
	}

	var resp SignInResponse
	if err := decode(body, &resp); err != nil {
		return SignInResponse{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// SignUp registers a new account. The server may respond with a
// requires_email_verification flag instead of a token, in which case the
// caller must branch on RequiresEmailVerification.
func (c *Client) SignUp(email, password string) (SignUpResponse, error) {
	payload := credentialsPayload{
		Email:    email,
		Password: password,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return SignUpResponse{}, errors.Wrap(err, "marshaling payload")
	}

	body, err := c.do("POST", "/auth/signup", "", string(b))
	if err != nil {
		return SignUpResponse{}, errors.Wrap(err, "making http request")
	}

	var resp SignUpResponse
	if err := decode(body, &resp); err != nil {
		return SignUpResponse{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// GetProfile fetches the profile of the signed-in user
func (c *Client) GetProfile(token string) (ProfileResponse, error) {
	body, err := c.doAuthorized("GET", "/auth/profile", token, "")
	if err != nil {
		return ProfileResponse{}, errors.Wrap(err, "making http request")
	}

	var resp ProfileResponse
	if err := decode(body, &resp); err != nil {
		return ProfileResponse{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// UpdateProfile updates the profile of the signed-in user and returns the
// updated profile record
func (c *Client) UpdateProfile(token string, data map[string]interface{}) (json.RawMessage, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	body, err := c.doAuthorized("PUT", "/auth/profile", token, string(b))
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	var resp json.RawMessage
	if err := decode(body, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}
