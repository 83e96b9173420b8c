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

// Package editor provides the note editing engine and the projector that
// derives the formatting state consumed by the toolbar
package editor

// Mark is an inline formatting mark
type Mark int

const (
	// MarkBold is strong emphasis
	MarkBold Mark = iota
	// MarkItalic is regular emphasis
	MarkItalic
	// MarkUnderline is an underline, carried as inline html
	MarkUnderline
	// MarkStrike is strikethrough
	MarkStrike
	// MarkCode is an inline code span
	MarkCode
)

// Block is a block-level node kind
type Block int

const (
	// BlockParagraph is a plain paragraph
	BlockParagraph Block = iota
	// BlockBulletList is an unordered list
	BlockBulletList
	// BlockOrderedList is a numbered list
	BlockOrderedList
	// BlockTaskList is a list of checkable items
	BlockTaskList
	// BlockCodeBlock is a fenced code block
	BlockCodeBlock
	// BlockBlockquote is a quoted block
	BlockBlockquote
)

// Event is a change notification emitted by an engine
type Event int

const (
	// EventTransaction signals that the document content changed
	EventTransaction Event = iota
	// EventSelectionUpdate signals that only the cursor moved
	EventSelectionUpdate
)

// Engine is the capability surface of an editing engine: formatting queries
// against the live document and cursor, the commands that change them, and
// change notifications. Queries never mutate the document.
type Engine interface {
	MarkActive(m Mark) bool
	BlockActive(b Block) bool
	HeadingLevel() int
	CanUndo() bool
	CanRedo() bool

	ToggleMark(m Mark)
	ToggleBlock(b Block)
	ToggleHeading(level int)
	Undo() bool
	Redo() bool

	Subscribe(fn func(Event)) func()
}
