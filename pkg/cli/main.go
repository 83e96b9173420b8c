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

package main

import (
	"os"
	"strings"

	"github.com/inkpot/inkpot/pkg/cli/app"
	"github.com/inkpot/inkpot/pkg/cli/infra"
	"github.com/inkpot/inkpot/pkg/cli/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	// commands
	"github.com/inkpot/inkpot/pkg/cli/cmd/add"
	"github.com/inkpot/inkpot/pkg/cli/cmd/cat"
	"github.com/inkpot/inkpot/pkg/cli/cmd/edit"
	"github.com/inkpot/inkpot/pkg/cli/cmd/explain"
	fmtcmd "github.com/inkpot/inkpot/pkg/cli/cmd/fmt"
	"github.com/inkpot/inkpot/pkg/cli/cmd/login"
	"github.com/inkpot/inkpot/pkg/cli/cmd/logout"
	"github.com/inkpot/inkpot/pkg/cli/cmd/ls"
	"github.com/inkpot/inkpot/pkg/cli/cmd/notebook"
	"github.com/inkpot/inkpot/pkg/cli/cmd/remove"
	"github.com/inkpot/inkpot/pkg/cli/cmd/root"
	"github.com/inkpot/inkpot/pkg/cli/cmd/signup"
	"github.com/inkpot/inkpot/pkg/cli/cmd/study"
	"github.com/inkpot/inkpot/pkg/cli/cmd/version"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

// parseDBPath extracts --dbPath flag value from command line arguments
// regardless of where it appears (before or after subcommand).
// Returns empty string if not found.
func parseDBPath(args []string) string {
	for i, arg := range args {
		// Handle --dbPath=value
		if strings.HasPrefix(arg, "--dbPath=") {
			return strings.TrimPrefix(arg, "--dbPath=")
		}
		// Handle --dbPath value
		if arg == "--dbPath" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	// The --dbPath flag can appear after the subcommand, which root.ParseFlags
	// does not see, so parse it by hand before initializing the database.
	dbPath := parseDBPath(os.Args[1:])

	ctx, err := infra.Init(versionTag, apiEndpoint, dbPath)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer ctx.DB.Close()

	a := app.New(ctx)

	root.Register(login.NewCmd(a))
	root.Register(signup.NewCmd(a))
	root.Register(logout.NewCmd(a))
	root.Register(ls.NewCmd(a))
	root.Register(add.NewCmd(a))
	root.Register(edit.NewCmd(a))
	root.Register(remove.NewCmd(a))
	root.Register(cat.NewCmd(a))
	root.Register(notebook.NewCmd(a))
	root.Register(study.NewCmd(a))
	root.Register(fmtcmd.NewCmd(a))
	root.Register(explain.NewCmd(a))
	root.Register(version.NewCmd(a))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
