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

package session

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/consts"
	"github.com/inkpot/inkpot/pkg/cli/database"
	"github.com/inkpot/inkpot/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func newTestStore(t *testing.T, handler http.Handler) (*Store, *database.DB) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	db := database.InitTestMemoryDB(t)
	api := client.New(server.URL, "test", server.Client())

	return New(api, db, clock.NewMock()), db
}

func TestSignIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-1", "email": "alice@example.com"}, "access_token": "token-abc"}`)
	})

	s, db := newTestStore(t, mux)

	res := s.SignIn("alice@example.com", "pass1234")

	require.True(t, res.OK, "sign in should succeed")
	assert.Equal(t, "user-1", res.User.ID, "result user id mismatch")

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated, "store should be authenticated")
	assert.False(t, snap.Loading, "loading flag should be cleared")
	assert.Equal(t, "token-abc", snap.Token, "token mismatch")
	assert.Equal(t, StateAuthenticated, s.State(), "state mismatch")

	var token string
	err := database.GetSystem(db, consts.SystemSessionToken, &token)
	require.NoError(t, err, "reading persisted token")
	assert.Equal(t, "token-abc", token, "persisted token mismatch")
}

func TestSignInInvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "No account found with this email"}`)
	})

	s, _ := newTestStore(t, mux)

	res := s.SignIn("alice@example.com", "wrongpass")

	assert.False(t, res.OK, "sign in should fail")
	assert.Equal(t, "No account found with this email", res.Error, "error message mismatch")

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated, "store should not be authenticated")
	assert.Equal(t, "No account found with this email", snap.LastError, "last error mismatch")
	assert.Equal(t, StateError, s.State(), "state mismatch")
}

func TestSignUpRequiresVerification(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"requires_email_verification": true}`)
	})

	s, _ := newTestStore(t, mux)

	res := s.SignUp("bob@example.com", "pass1234")

	require.True(t, res.OK, "sign up should succeed")
	assert.True(t, res.RequiresVerification, "verification flag should be set")

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated, "store must stay anonymous until verified")
	assert.Equal(t, "", snap.Token, "no token should be recorded")
}

func TestSignUp(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-2", "email": "bob@example.com"}, "access_token": "token-def"}`)
	})

	s, _ := newTestStore(t, mux)

	res := s.SignUp("bob@example.com", "pass1234")

	require.True(t, res.OK, "sign up should succeed")
	assert.False(t, res.RequiresVerification, "verification flag should not be set")

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated, "store should be authenticated")
	assert.Equal(t, "token-def", snap.Token, "token mismatch")
}

func TestRefreshProfileUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-1"}, "access_token": "token-abc"}`)
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "token expired"}`)
	})

	s, db := newTestStore(t, mux)

	require.True(t, s.SignIn("alice@example.com", "pass1234").OK, "sign in should succeed")

	res := s.RefreshProfile()

	assert.False(t, res.OK, "refresh should fail")

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated, "a rejected token must log the session out")
	assert.Equal(t, "", snap.Token, "token should be cleared")
	assert.Equal(t, StateAnonymous, s.State(), "state mismatch")

	var token string
	err := database.GetSystem(db, consts.SystemSessionToken, &token)
	assert.Error(t, err, "persisted token should be gone")
}

func TestRefreshProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-1"}, "access_token": "token-abc"}`)
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"profile": {"theme": "dark"}}`)
	})

	s, _ := newTestStore(t, mux)

	require.True(t, s.SignIn("alice@example.com", "pass1234").OK, "sign in should succeed")

	res := s.RefreshProfile()

	require.True(t, res.OK, "refresh should succeed")

	snap := s.Snapshot()
	require.NotNil(t, snap.User, "user should be present")
	assert.JSONEq(t, `{"theme": "dark"}`, string(snap.User.Profile), "profile mismatch")
}

func TestRefreshProfileWithoutToken(t *testing.T) {
	s, _ := newTestStore(t, http.NewServeMux())

	res := s.RefreshProfile()

	assert.False(t, res.OK, "refresh should fail without a token")
	assert.Equal(t, client.ErrAuthRequired.Error(), res.Error, "error message mismatch")
}

func TestUpdateProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-1"}, "access_token": "token-abc"}`)
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, `{"name": "Alice"}`)
	})

	s, _ := newTestStore(t, mux)

	require.True(t, s.SignIn("alice@example.com", "pass1234").OK, "sign in should succeed")

	res := s.UpdateProfile(map[string]interface{}{"name": "Alice"})

	require.True(t, res.OK, "update should succeed")
	assert.JSONEq(t, `{"name": "Alice"}`, string(res.Profile), "profile mismatch")
}

func TestLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-1"}, "access_token": "token-abc"}`)
	})

	s, db := newTestStore(t, mux)

	require.True(t, s.SignIn("alice@example.com", "pass1234").OK, "sign in should succeed")

	s.Logout()

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated, "store should not be authenticated")
	assert.Nil(t, snap.User, "user should be cleared")
	assert.Equal(t, "", snap.Token, "token should be cleared")

	var token string
	err := database.GetSystem(db, consts.SystemSessionToken, &token)
	assert.Error(t, err, "persisted token should be gone")
}

func TestRestore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-1", "email": "alice@example.com"}, "access_token": "token-abc"}`)
	})

	s, db := newTestStore(t, mux)

	require.True(t, s.SignIn("alice@example.com", "pass1234").OK, "sign in should succeed")

	// a fresh store over the same database resumes the session
	restored := New(s.api, db, clock.NewMock())

	snap := restored.Snapshot()
	assert.True(t, snap.Authenticated, "restored store should be authenticated")
	assert.Equal(t, "token-abc", snap.Token, "restored token mismatch")
	require.NotNil(t, snap.User, "restored user should be present")
	assert.Equal(t, "alice@example.com", snap.User.Email, "restored user email mismatch")
}

func TestSubscribe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "user-1"}, "access_token": "token-abc"}`)
	})

	s, _ := newTestStore(t, mux)

	var fired int
	cancel := s.Subscribe(func() { fired++ })
	defer cancel()

	s.SignIn("alice@example.com", "pass1234")

	assert.True(t, fired >= 2, "subscriber should see the loading and the settled state")
}
