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

// Package session provides the store that owns identity and session state
package session

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/consts"
	"github.com/inkpot/inkpot/pkg/cli/database"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/store"
	"github.com/inkpot/inkpot/pkg/clock"
	"github.com/pkg/errors"
)

// State is the position of the session in its lifecycle
type State int

const (
	// StateAnonymous is the state with no signed-in user
	StateAnonymous State = iota
	// StateAuthenticating is the state with a sign-in or sign-up in flight
	StateAuthenticating
	// StateAuthenticated is the state with a valid session
	StateAuthenticated
	// StateError is the state after a failed operation
	StateError
)

// Store owns the current user, the bearer token and the session lifecycle.
// It is the single writer of session state; a subset of the state survives
// restarts through the system table.
type Store struct {
	api   *client.Client
	db    *database.DB
	clock clock.Clock

	mu            sync.Mutex
	user          *client.User
	token         string
	authenticated bool
	loading       bool
	lastError     string

	gens store.Generations
	hub  store.Hub
}

// Snapshot is a point-in-time copy of the session state
type Snapshot struct {
	User          *client.User
	Token         string
	Authenticated bool
	Loading       bool
	LastError     string
}

// AuthResult is the outcome of a sign-in or sign-up
type AuthResult struct {
	OK                   bool
	Error                string
	User                 *client.User
	RequiresVerification bool
}

// ProfileResult is the outcome of a profile fetch or update
type ProfileResult struct {
	OK      bool
	Error   string
	Profile json.RawMessage
}

// New returns a session store, restoring any persisted session state
func New(api *client.Client, db *database.DB, c clock.Clock) *Store {
	s := &Store{
		api:   api,
		db:    db,
		clock: c,
	}
	s.restore()

	return s
}

// restore loads the persisted session subset from the system table
func (s *Store) restore() {
	var token string
	err := database.GetSystem(s.db, consts.SystemSessionToken, &token)
	if err != nil && err != sql.ErrNoRows {
		log.Error(errors.Wrap(err, "restoring session token").Error() + "\n")
		return
	}

	var userJSON string
	err = database.GetSystem(s.db, consts.SystemSessionUser, &userJSON)
	if err != nil && err != sql.ErrNoRows {
		log.Error(errors.Wrap(err, "restoring session user").Error() + "\n")
		return
	}

	var authenticated bool
	err = database.GetSystem(s.db, consts.SystemSessionAuthenticated, &authenticated)
	if err != nil && err != sql.ErrNoRows {
		log.Error(errors.Wrap(err, "restoring session flag").Error() + "\n")
		return
	}

	s.token = token
	s.authenticated = authenticated
	if userJSON != "" {
		var u client.User
		if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
			log.Error(errors.Wrap(err, "decoding persisted user").Error() + "\n")
		} else {
			s.user = &u
		}
	}
}

// tokenExpiry extracts the exp claim from the bearer token. The token is not
// verified here; expiry is advisory and the server remains the authority.
func tokenExpiry(token string) int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}

	return exp.Unix()
}

// persist writes the persisted session subset. Persistence is fire-and-forget:
// a failed write is logged and the in-memory state remains the truth.
func (s *Store) persist() {
	tx, err := s.db.Begin()
	if err != nil {
		log.Error(errors.Wrap(err, "beginning a session persistence transaction").Error() + "\n")
		return
	}

	userJSON := ""
	if s.user != nil {
		b, err := json.Marshal(s.user)
		if err != nil {
			log.Error(errors.Wrap(err, "encoding user for persistence").Error() + "\n")
		} else {
			userJSON = string(b)
		}
	}

	if err := database.UpsertSystem(tx, consts.SystemSessionToken, s.token); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "persisting session token").Error() + "\n")
		return
	}
	if err := database.UpsertSystem(tx, consts.SystemSessionTokenExpiry, tokenExpiry(s.token)); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "persisting session token expiry").Error() + "\n")
		return
	}
	if err := database.UpsertSystem(tx, consts.SystemSessionUser, userJSON); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "persisting session user").Error() + "\n")
		return
	}
	if err := database.UpsertSystem(tx, consts.SystemSessionAuthenticated, s.authenticated); err != nil {
		tx.Rollback()
		log.Error(errors.Wrap(err, "persisting session flag").Error() + "\n")
		return
	}

	tx.Commit()
}

// clearPersisted removes the persisted session subset
func (s *Store) clearPersisted() {
	tx, err := s.db.Begin()
	if err != nil {
		log.Error(errors.Wrap(err, "beginning a session cleanup transaction").Error() + "\n")
		return
	}

	for _, key := range []string{
		consts.SystemSessionToken,
		consts.SystemSessionTokenExpiry,
		consts.SystemSessionUser,
		consts.SystemSessionAuthenticated,
	} {
		if err := database.DeleteSystem(tx, key); err != nil {
			tx.Rollback()
			log.Error(errors.Wrap(err, "clearing persisted session").Error() + "\n")
			return
		}
	}

	tx.Commit()
}

// Snapshot returns a copy of the current session state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		User:          s.user,
		Token:         s.token,
		Authenticated: s.authenticated,
		Loading:       s.loading,
		LastError:     s.lastError,
	}
}

// Token returns the current bearer token, or an empty string when signed out
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

// State derives the lifecycle state from the session fields
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.loading:
		return StateAuthenticating
	case s.authenticated:
		return StateAuthenticated
	case s.lastError != "":
		return StateError
	default:
		return StateAnonymous
	}
}

// Subscribe registers a callback invoked after every state change
func (s *Store) Subscribe(fn func()) func() {
	return s.hub.Subscribe(fn)
}

// begin marks an operation as started: the loading flag goes up, the last
// error is cleared and a request generation is issued.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	gen := s.gens.Begin()
	s.mu.Unlock()
	s.hub.Notify()

	return gen
}

// fail records an operation failure
func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()
	s.hub.Notify()
}

// SignIn exchanges credentials for a session. On failure the store remains
// unauthenticated and the server's message is recorded as the last error.
func (s *Store) SignIn(email, password string) AuthResult {
	gen := s.begin()

	resp, err := s.api.SignIn(email, password)
	if err != nil {
		s.fail(errors.Cause(err))
		return AuthResult{Error: errors.Cause(err).Error()}
	}

	s.mu.Lock()
	if s.gens.ApplyAll(gen) {
		s.user = resp.User
		s.token = resp.AccessToken
		s.authenticated = true
		s.persist()
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return AuthResult{OK: true, User: resp.User}
}

// SignUp registers a new account. When the server signals that email
// verification is required, the result is successful but the session stays
// anonymous and carries no token; the caller must branch on
// RequiresVerification.
func (s *Store) SignUp(email, password string) AuthResult {
	gen := s.begin()

	resp, err := s.api.SignUp(email, password)
	if err != nil {
		s.fail(errors.Cause(err))
		return AuthResult{Error: errors.Cause(err).Error()}
	}

	if resp.RequiresEmailVerification {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.hub.Notify()

		return AuthResult{OK: true, RequiresVerification: true}
	}

	s.mu.Lock()
	if s.gens.ApplyAll(gen) {
		s.user = resp.User
		s.token = resp.AccessToken
		s.authenticated = true
		s.persist()
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return AuthResult{OK: true, User: resp.User}
}

// RefreshProfile re-fetches the signed-in user's profile. A 401 response
// clears the whole session: a stale token must never leave the store in an
// authenticated-but-erroring state.
func (s *Store) RefreshProfile() ProfileResult {
	token := s.Token()
	if token == "" {
		return ProfileResult{Error: client.ErrAuthRequired.Error()}
	}

	gen := s.begin()

	resp, err := s.api.GetProfile(token)
	if err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
			s.Logout()
		} else {
			s.fail(errors.Cause(err))
		}
		return ProfileResult{Error: errors.Cause(err).Error()}
	}

	s.mu.Lock()
	if s.gens.ApplyAll(gen) {
		if s.user == nil {
			s.user = &client.User{}
		}
		s.user.Profile = resp.Profile
		s.persist()
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return ProfileResult{OK: true, Profile: resp.Profile}
}

// UpdateProfile pushes profile changes to the server and records the updated
// profile record
func (s *Store) UpdateProfile(data map[string]interface{}) ProfileResult {
	token := s.Token()
	if token == "" {
		return ProfileResult{Error: client.ErrAuthRequired.Error()}
	}

	gen := s.begin()

	updated, err := s.api.UpdateProfile(token, data)
	if err != nil {
		s.fail(errors.Cause(err))
		return ProfileResult{Error: errors.Cause(err).Error()}
	}

	s.mu.Lock()
	if s.gens.ApplyAll(gen) {
		if s.user == nil {
			s.user = &client.User{}
		}
		s.user.Profile = updated
		s.persist()
	}
	s.loading = false
	s.mu.Unlock()
	s.hub.Notify()

	return ProfileResult{OK: true, Profile: updated}
}

// Logout unconditionally clears the session, in memory and on disk. Any
// in-flight responses resolve as stale afterwards.
func (s *Store) Logout() {
	s.mu.Lock()
	gen := s.gens.Begin()
	s.gens.ApplyAll(gen)

	s.user = nil
	s.token = ""
	s.authenticated = false
	s.loading = false
	s.lastError = ""
	s.clearPersisted()
	s.mu.Unlock()
	s.hub.Notify()
}

// Initialize reconciles persisted credentials with the server at startup: a
// persisted token is refreshed, and a refresh failure logs the session out.
func (s *Store) Initialize() {
	if s.Token() == "" {
		return
	}

	if res := s.RefreshProfile(); !res.OK {
		s.Logout()
	}
}
