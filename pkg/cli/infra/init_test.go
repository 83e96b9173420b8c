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

package infra

import (
	"testing"

	"github.com/inkpot/inkpot/pkg/assert"
	"github.com/inkpot/inkpot/pkg/cli/context"
	"github.com/inkpot/inkpot/pkg/cli/database"
	"github.com/pkg/errors"

	_ "github.com/mattn/go-sqlite3"
)

func TestInitSystemKV(t *testing.T) {
	db := database.InitTestMemoryDB(t)

	var originalCount int
	database.MustScan(t, "counting system configs", db.QueryRow("SELECT count(*) FROM system"), &originalCount)

	tx, err := db.Begin()
	if err != nil {
		t.Fatal(errors.Wrap(err, "beginning a transaction"))
	}

	if err := initSystemKV(tx, "testKey", "testVal"); err != nil {
		tx.Rollback()
		t.Fatal(errors.Wrap(err, "executing"))
	}

	tx.Commit()

	var count int
	database.MustScan(t, "counting system configs", db.QueryRow("SELECT count(*) FROM system"), &count)
	assert.Equal(t, count, originalCount+1, "system count mismatch")

	var val string
	database.MustScan(t, "getting system value",
		db.QueryRow("SELECT value FROM system WHERE key = ?", "testKey"), &val)
	assert.Equal(t, val, "testVal", "system value mismatch")
}

func TestInitSystemKVExisting(t *testing.T) {
	db := database.InitTestMemoryDB(t)

	database.MustExec(t, "inserting a system config", db,
		"INSERT INTO system (key, value) VALUES (?, ?)", "testKey", "original")

	if err := initSystemKV(db, "testKey", "newVal"); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var val string
	database.MustScan(t, "getting system value",
		db.QueryRow("SELECT value FROM system WHERE key = ?", "testKey"), &val)
	assert.Equal(t, val, "original", "existing value must not be overwritten")
}

func TestGetDBPath(t *testing.T) {
	paths := context.Paths{
		Home:   "/home/user",
		Config: "/config",
		Data:   "/data",
		Cache:  "/cache",
	}

	assert.Equal(t, getDBPath(paths, ""), "/data/inkpot/inkpot.db", "default path mismatch")
	assert.Equal(t, getDBPath(paths, "./custom.db"), "./custom.db", "custom path should win")
}
