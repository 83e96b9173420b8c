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

package login

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/store/session"
	"github.com/inkpot/inkpot/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewCmd returns a new login command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to Inkpot",
		RunE:  newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		// a persisted session is revalidated rather than replaced
		if a.Session.State() == session.StateAuthenticated {
			a.Session.Initialize()

			snap := a.Session.Snapshot()
			if snap.Authenticated {
				log.Successf("logged in as %s\n", snap.User.Email)
				return nil
			}

			log.Infof("session expired. please sign in again.\n")
		}

		var email, password string
		if err := ui.PromptInput("email", &email); err != nil {
			return errors.Wrap(err, "getting email input")
		}
		if email == "" {
			return errors.New("Email is empty")
		}

		if err := ui.PromptPassword("password", &password); err != nil {
			return errors.Wrap(err, "getting password input")
		}
		if password == "" {
			return errors.New("Password is empty")
		}

		res := a.Session.SignIn(email, password)
		if !res.OK {
			return errors.New(res.Error)
		}

		log.Successf("logged in as %s\n", res.User.Email)

		return nil
	}
}
