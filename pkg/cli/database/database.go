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

// Package database provides the local cache database and its models
package database

import (
	"database/sql"
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// DB is a thin wrapper around the SQL database connection
type DB struct {
	*sql.DB
}

// Queryable is the minimal query interface satisfied by both *DB and *sql.Tx
type Queryable interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Open opens the database connection at the given path
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening the database")
	}

	return &DB{db}, nil
}

// InitSchema creates the tables for the local cache if they do not exist
func InitSchema(db *DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return errors.Wrap(err, "running schema sql")
	}

	return nil
}

// GetSystem scans the value of the system record with the given key into dest
func GetSystem(q Queryable, key string, dest interface{}) error {
	return q.QueryRow("SELECT value FROM system WHERE key = ?", key).Scan(dest)
}

// UpsertSystem inserts or updates a system record with the given key
func UpsertSystem(q Queryable, key string, val interface{}) error {
	var count int
	if err := q.QueryRow("SELECT count(*) FROM system WHERE key = ?", key).Scan(&count); err != nil {
		return errors.Wrap(err, "counting system record")
	}

	if count == 0 {
		if _, err := q.Exec("INSERT INTO system (key, value) VALUES (?, ?)", key, val); err != nil {
			return errors.Wrapf(err, "inserting system record for %s", key)
		}
	} else {
		if _, err := q.Exec("UPDATE system SET value = ? WHERE key = ?", val, key); err != nil {
			return errors.Wrapf(err, "updating system record for %s", key)
		}
	}

	return nil
}

// DeleteSystem removes the system record with the given key
func DeleteSystem(q Queryable, key string) error {
	if _, err := q.Exec("DELETE FROM system WHERE key = ?", key); err != nil {
		return errors.Wrapf(err, "deleting system record for %s", key)
	}

	return nil
}
