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

package logout

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/store/session"
	"github.com/spf13/cobra"
)

// NewCmd returns a new logout command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out of Inkpot",
		RunE:  newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if a.Session.State() == session.StateAnonymous {
			log.Plain("not logged in\n")
			return nil
		}

		a.SignOut()

		log.Success("logged out\n")

		return nil
	}
}
