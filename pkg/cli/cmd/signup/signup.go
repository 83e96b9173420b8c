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

package signup

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewCmd returns a new signup command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an Inkpot account",
		RunE:  newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		var email, password, confirmed string
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

		if err := ui.PromptPassword("repeat password", &confirmed); err != nil {
			return errors.Wrap(err, "getting password confirmation input")
		}
		if password != confirmed {
			return errors.New("Passwords do not match")
		}

		res := a.Session.SignUp(email, password)
		if !res.OK {
			return errors.New(res.Error)
		}

		if res.RequiresVerification {
			log.Infof("account created. check your inbox at %s to verify it, then run `inkpot login`.\n", email)
			return nil
		}

		log.Successf("signed up as %s\n", res.User.Email)

		return nil
	}
}
