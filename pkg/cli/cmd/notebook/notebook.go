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

package notebook

import (
	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/client"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/inkpot/inkpot/pkg/cli/output"
	"github.com/inkpot/inkpot/pkg/cli/ui"
	"github.com/inkpot/inkpot/pkg/cli/validate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var descriptionFlag string
var colorFlag string
var titleFlag string

// NewCmd returns a new notebook command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notebook",
		Short:   "Manage notebooks",
		Aliases: []string{"nb"},
		RunE:    newListRun(a),
	}

	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newRemoveCmd(a))

	return cmd
}

func requireTitleArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

func newListRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		token, err := a.RequireToken()
		if err != nil {
			return errors.Wrap(err, "checking session")
		}

		if res := a.Notebooks.Fetch(token); !res.OK {
			return errors.New(res.Error)
		}

		for _, n := range a.Notebooks.All() {
			output.NotebookInfo(n)
		}

		return nil
	}
}

func newAddCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <title>",
		Short:   "Create a notebook",
		PreRunE: requireTitleArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if err := validate.NotebookTitle(title); err != nil {
				return errors.Wrap(err, "invalid notebook title")
			}

			token, err := a.RequireToken()
			if err != nil {
				return errors.Wrap(err, "checking session")
			}

			res := a.Notebooks.Create(token, client.NotebookParams{
				Title:       title,
				Description: descriptionFlag,
				Color:       colorFlag,
			})
			if !res.OK {
				return errors.New(res.Error)
			}

			log.Successf("created notebook %s\n", title)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&descriptionFlag, "description", "d", "", "The description for the notebook")
	f.StringVar(&colorFlag, "color", "", "The display color for the notebook")

	return cmd
}

func newEditCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <title>",
		Short:   "Edit a notebook",
		PreRunE: requireTitleArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.RequireToken()
			if err != nil {
				return errors.Wrap(err, "checking session")
			}

			if res := a.Notebooks.Fetch(token); !res.OK {
				return errors.New(res.Error)
			}

			notebook, ok := a.Notebooks.FindByTitle(args[0])
			if !ok {
				return errors.Errorf("notebook '%s' not found", args[0])
			}

			if titleFlag != "" {
				if err := validate.NotebookTitle(titleFlag); err != nil {
					return errors.Wrap(err, "invalid notebook title")
				}
			}

			params := client.NotebookParams{
				Title:       titleFlag,
				Description: descriptionFlag,
				Color:       colorFlag,
			}
			if params == (client.NotebookParams{}) {
				log.Plain("nothing to update\n")
				return nil
			}
			if params.Title == "" {
				params.Title = notebook.Title
			}

			res := a.Notebooks.Update(token, notebook.ID, params)
			if !res.OK {
				return errors.New(res.Error)
			}

			log.Successf("edited notebook %s\n", res.Notebook.Title)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&titleFlag, "title", "t", "", "The new title for the notebook")
	f.StringVarP(&descriptionFlag, "description", "d", "", "The new description for the notebook")
	f.StringVar(&colorFlag, "color", "", "The new display color for the notebook")

	return cmd
}

func newRemoveCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <title>",
		Short:   "Remove a notebook",
		PreRunE: requireTitleArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.RequireToken()
			if err != nil {
				return errors.Wrap(err, "checking session")
			}

			if res := a.Notebooks.Fetch(token); !res.OK {
				return errors.New(res.Error)
			}

			notebook, ok := a.Notebooks.FindByTitle(args[0])
			if !ok {
				return errors.Errorf("notebook '%s' not found", args[0])
			}

			// notes in the notebook stay on the server and in the cache
			ok, err = ui.Confirm("remove this notebook?", false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Plain("aborted\n")
				return nil
			}

			if res := a.Notebooks.Delete(token, notebook.ID); !res.OK {
				return errors.New(res.Error)
			}

			log.Successf("removed notebook %s\n", notebook.Title)

			return nil
		},
	}

	return cmd
}
