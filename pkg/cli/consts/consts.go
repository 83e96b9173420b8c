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

// Package consts provides definitions of constants
package consts

var (
	// AppDirName is the name of the directory containing inkpot files
	AppDirName = "inkpot"
	// DBFileName is a filename for the Inkpot SQLite database
	DBFileName = "inkpot.db"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "INKPOT_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "md"
	// ConfigFilename is the name of the config file
	ConfigFilename = "inkpotrc"

	// SystemSessionToken is the key for the bearer token in the system table
	SystemSessionToken = "session_token"
	// SystemSessionTokenExpiry is the timestamp at which the bearer token will expire
	SystemSessionTokenExpiry = "session_token_expiry"
	// SystemSessionUser is the key for the signed-in user record in the system table
	SystemSessionUser = "session_user"
	// SystemSessionAuthenticated is the key for the persisted authenticated flag
	SystemSessionAuthenticated = "session_authenticated"
	// SystemLastUpgrade is the timestamp at which the system most recently checked for an upgrade
	SystemLastUpgrade = "last_upgrade"
)
