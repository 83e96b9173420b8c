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

package context

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

// InitTestCtx returns a context rooted in a temporary directory that is
// cleaned up with the test
func InitTestCtx(t *testing.T) InkpotCtx {
	t.Helper()

	base := t.TempDir()
	paths := Paths{
		Home:   base,
		Config: filepath.Join(base, "config"),
		Data:   filepath.Join(base, "data"),
		Cache:  filepath.Join(base, "cache"),
	}

	if err := InitDirs(paths); err != nil {
		t.Fatal(errors.Wrap(err, "initializing test dirs"))
	}

	return InkpotCtx{
		Paths:   paths,
		Version: "test",
	}
}
