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

// Package upgrade provides the release update check
package upgrade

import (
	gocontext "context"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"github.com/inkpot/inkpot/pkg/cli/consts"
	"github.com/inkpot/inkpot/pkg/cli/context"
	"github.com/inkpot/inkpot/pkg/cli/database"
	"github.com/inkpot/inkpot/pkg/cli/log"
	"github.com/pkg/errors"
)

const (
	repoOwner = "inkpot"
	repoName  = "inkpot"

	// upgradeInterval is the minimum pause between two upgrade checks
	upgradeInterval = int64(time.Hour / time.Second * 24 * 7)
)

// fetchLatestStableTag fetches the tag of the latest release from the
// repository
func fetchLatestStableTag() (string, error) {
	gh := github.NewClient(nil)

	release, _, err := gh.Repositories.GetLatestRelease(gocontext.Background(), repoOwner, repoName)
	if err != nil {
		return "", errors.Wrap(err, "fetching the latest release")
	}
	if release.TagName == nil {
		return "", errors.New("release carries no tag")
	}

	return *release.TagName, nil
}

// shouldCheck reports whether enough time has passed since the last check
func shouldCheck(ctx context.InkpotCtx) (bool, error) {
	if !ctx.EnableUpgradeCheck {
		return false, nil
	}

	var lastUpgrade int64
	if err := database.GetSystem(ctx.DB, consts.SystemLastUpgrade, &lastUpgrade); err != nil {
		return false, errors.Wrap(err, "getting last upgrade time")
	}

	now := ctx.Clock.Now().Unix()
	return now-lastUpgrade > upgradeInterval, nil
}

func touchLastUpgrade(ctx context.InkpotCtx) error {
	now := ctx.Clock.Now().Unix()
	if err := database.UpsertSystem(ctx.DB, consts.SystemLastUpgrade, now); err != nil {
		return errors.Wrap(err, "updating last upgrade time")
	}

	return nil
}

// Check checks for an available newer release and prints an instruction if
// one exists
func Check(ctx context.InkpotCtx) error {
	ok, err := shouldCheck(ctx)
	if err != nil {
		return errors.Wrap(err, "checking eligibility")
	}
	if !ok {
		return nil
	}

	if err := touchLastUpgrade(ctx); err != nil {
		return errors.Wrap(err, "recording the check")
	}

	latest, err := fetchLatestStableTag()
	if err != nil {
		return errors.Wrap(err, "fetching the latest version")
	}

	current := strings.TrimPrefix(ctx.Version, "v")
	latestVersion := strings.TrimPrefix(latest, "v")

	if current == latestVersion || current == "master" {
		log.Infof("you are up-to-date\n\n")
		return nil
	}

	log.Infof("a newer version %s is available. Please upgrade.\n", latestVersion)

	return nil
}
