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

package store

import (
	"testing"

	"github.com/inkpot/inkpot/pkg/assert"
	"github.com/pkg/errors"
)

func TestResult(t *testing.T) {
	ok := Succeed()
	assert.Equal(t, ok.OK, true, "Succeed should be OK")
	assert.Equal(t, ok.Error, "", "Succeed should carry no error")

	fail := Fail(errors.New("no token available"))
	assert.Equal(t, fail.OK, false, "Fail should not be OK")
	assert.Equal(t, fail.Error, "no token available", "Fail message mismatch")
}

func TestGenerationsStaleResponse(t *testing.T) {
	var g Generations

	older := g.Begin()
	newer := g.Begin()

	// the newer request resolves first; the older response must be discarded
	assert.Equal(t, g.Apply("", newer), true, "newer response should apply")
	assert.Equal(t, g.Apply("", older), false, "stale response should be discarded")
}

func TestGenerationsScopes(t *testing.T) {
	var g Generations

	genA := g.Begin()
	genB := g.Begin()

	// responses in unrelated scopes do not invalidate each other
	assert.Equal(t, g.Apply("notebook/b", genB), true, "scope b should apply")
	assert.Equal(t, g.Apply("notebook/a", genA), true, "scope a should apply")
}

func TestGenerationsApplyAll(t *testing.T) {
	var g Generations

	scoped := g.Begin()
	full := g.Begin()

	assert.Equal(t, g.Apply("notebook/a", scoped), true, "scoped response should apply")
	assert.Equal(t, g.ApplyAll(full), true, "full replace should apply")

	// anything older than the full replace is stale in every scope
	stale := scoped
	assert.Equal(t, g.Apply("notebook/b", stale), false, "responses predating a full replace are stale")

	// a full replace that lost the race against a newer scoped response is stale
	lateFull := g.Begin()
	lateScoped := g.Begin()
	assert.Equal(t, g.Apply("notebook/a", lateScoped), true, "scoped response should apply")
	assert.Equal(t, g.ApplyAll(lateFull), false, "full replace older than an applied response is stale")
}

func TestHub(t *testing.T) {
	var h Hub

	var count int
	cancel := h.Subscribe(func() { count++ })

	h.Notify()
	h.Notify()
	assert.Equal(t, count, 2, "subscriber should see every notification")

	cancel()
	h.Notify()
	assert.Equal(t, count, 2, "cancelled subscriber should see nothing")
}
