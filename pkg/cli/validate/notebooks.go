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

// Package validate provides validation of user-provided values
package validate

import (
	"strings"

	"github.com/inkpot/inkpot/pkg/cli/utils"
	"github.com/pkg/errors"
)

// ErrNotebookTitleNumeric is an error for a notebook title that only contains numbers
var ErrNotebookTitleNumeric = errors.New("The notebook title cannot contain only numbers")

// ErrNotebookTitleEmpty is an error for an empty notebook title
var ErrNotebookTitleEmpty = errors.New("The notebook title is empty")

// ErrNotebookTitleMultiline is an error for a notebook title that has linebreaks
var ErrNotebookTitleMultiline = errors.New("The notebook title contains multiple lines")

// NotebookTitle validates a notebook title. Titles that are purely numeric
// are rejected because commands accept numeric arguments as note ids.
func NotebookTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrNotebookTitleEmpty
	}

	if utils.IsNumber(title) {
		return ErrNotebookTitleNumeric
	}

	if strings.Contains(title, "\n") || strings.Contains(title, "\r\n") {
		return ErrNotebookTitleMultiline
	}

	return nil
}
