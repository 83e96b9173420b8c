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

// Package app assembles the stores and services into one injectable
// application object. There are no package-level singletons; every command
// receives the app it operates on.
package app

import (
	"github.com/inkpot/inkpot/pkg/cli/ai"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/context"
	"github.com/inkpot/inkpot/pkg/cli/store/note"
	"github.com/inkpot/inkpot/pkg/cli/store/notebook"
	"github.com/inkpot/inkpot/pkg/cli/store/session"
	"github.com/inkpot/inkpot/pkg/cli/store/study"
)

// App holds the stores and services of one Inkpot instance
type App struct {
	Ctx       *context.InkpotCtx
	API       *client.Client
	Session   *session.Store
	Notebooks *notebook.Store
	Notes     *note.Store
	Study     *study.Registry
	AI        *ai.Service
}

// New assembles an app from the given runtime context
func New(ctx *context.InkpotCtx) *App {
	api := client.New(ctx.APIEndpoint, ctx.Version, ctx.HTTPClient)

	return &App{
		Ctx:       ctx,
		API:       api,
		Session:   session.New(api, ctx.DB, ctx.Clock),
		Notebooks: notebook.New(api, ctx.DB),
		Notes:     note.New(api, ctx.DB),
		Study:     study.NewRegistry(ctx.Clock),
		AI:        ai.NewService(api),
	}
}

// Token returns the current bearer token, or an empty string when signed out
func (a *App) Token() string {
	return a.Session.Token()
}

// RequireToken returns the current bearer token, failing when signed out
func (a *App) RequireToken() (string, error) {
	token := a.Session.Token()
	if token == "" {
		return "", client.ErrAuthRequired
	}

	return token, nil
}

// SignOut clears the session and every synced cache
func (a *App) SignOut() {
	a.Session.Logout()
	a.Notebooks.Clear()
	a.Notes.Clear()
	a.Study.Clear()
}
