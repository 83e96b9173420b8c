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

package editor

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markers maps each inline mark to its delimiters. Underline has no markdown
// syntax and is carried as inline html.
var markers = map[Mark][2]string{
	MarkBold:      {"**", "**"},
	MarkItalic:    {"*", "*"},
	MarkUnderline: {"<u>", "</u>"},
	MarkStrike:    {"~~", "~~"},
	MarkCode:      {"`", "`"},
}

// revision is one entry in the document history
type revision struct {
	source string
	cursor int
}

// Document is a markdown editing engine. The note content is a markdown
// string; formatting queries parse it and inspect the node the cursor sits
// in, and formatting commands rewrite the text around the cursor. Every
// content change produces a revision, so undo and redo are full-source
// restores.
type Document struct {
	mu      sync.Mutex
	history []revision
	index   int

	md goldmark.Markdown

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

var _ Engine = (*Document)(nil)

// NewDocument returns a document holding the given markdown source with the
// cursor at the start
func NewDocument(source string) *Document {
	return &Document{
		history: []revision{{source: source}},
		md: goldmark.New(goldmark.WithExtensions(
			extension.Strikethrough,
			extension.TaskList,
		)),
	}
}

// Source returns the current markdown source
func (d *Document) Source() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.history[d.index].source
}

// Cursor returns the current cursor offset in bytes
func (d *Document) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.history[d.index].cursor
}

// SetCursor moves the cursor, clamping it to the document bounds
func (d *Document) SetCursor(offset int) {
	d.mu.Lock()
	cur := &d.history[d.index]
	if offset < 0 {
		offset = 0
	}
	if offset > len(cur.source) {
		offset = len(cur.source)
	}
	cur.cursor = offset
	d.mu.Unlock()

	d.notify(EventSelectionUpdate)
}

// SetContent replaces the whole document, as loading a note does
func (d *Document) SetContent(source string) {
	d.mu.Lock()
	d.commit(source, 0)
	d.mu.Unlock()

	d.notify(EventTransaction)
}

// Insert inserts text at the cursor and moves the cursor past it
func (d *Document) Insert(s string) {
	d.mu.Lock()
	cur := d.history[d.index]
	next := cur.source[:cur.cursor] + s + cur.source[cur.cursor:]
	d.commit(next, cur.cursor+len(s))
	d.mu.Unlock()

	d.notify(EventTransaction)
}

// commit appends a revision, discarding any redoable future. Callers must
// hold d.mu.
func (d *Document) commit(source string, cursor int) {
	d.history = append(d.history[:d.index+1], revision{source: source, cursor: cursor})
	d.index = len(d.history) - 1
}

// CanUndo reports whether an earlier revision exists
func (d *Document) CanUndo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.index > 0
}

// CanRedo reports whether an undone revision can be restored
func (d *Document) CanRedo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.index < len(d.history)-1
}

// Undo restores the previous revision
func (d *Document) Undo() bool {
	d.mu.Lock()
	if d.index == 0 {
		d.mu.Unlock()
		return false
	}
	d.index--
	d.mu.Unlock()

	d.notify(EventTransaction)
	return true
}

// Redo restores the next revision
func (d *Document) Redo() bool {
	d.mu.Lock()
	if d.index >= len(d.history)-1 {
		d.mu.Unlock()
		return false
	}
	d.index++
	d.mu.Unlock()

	d.notify(EventTransaction)
	return true
}

// Subscribe registers a callback invoked after every document or cursor
// change. The returned function cancels the subscription.
func (d *Document) Subscribe(fn func(Event)) func() {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	if d.subs == nil {
		d.subs = map[int]func(Event){}
	}

	id := d.nextID
	d.nextID++
	d.subs[id] = fn

	return func() {
		d.subMu.Lock()
		defer d.subMu.Unlock()
		delete(d.subs, id)
	}
}

func (d *Document) notify(ev Event) {
	d.subMu.Lock()
	fns := make([]func(Event), 0, len(d.subs))
	for _, fn := range d.subs {
		fns = append(fns, fn)
	}
	d.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// cursorState is the formatting context of the cursor position
type cursorState struct {
	heading   int
	block     Block
	bold      bool
	italic    bool
	strike    bool
	code      bool
	underline bool
}

// MarkActive reports whether the cursor sits inside the given inline mark
func (d *Document) MarkActive(m Mark) bool {
	st := d.stateAtCursor()

	switch m {
	case MarkBold:
		return st.bold
	case MarkItalic:
		return st.italic
	case MarkUnderline:
		return st.underline
	case MarkStrike:
		return st.strike
	case MarkCode:
		return st.code
	default:
		return false
	}
}

// BlockActive reports whether the cursor sits inside the given block kind.
// A heading counts as a paragraph for no block kind; query HeadingLevel for
// headings.
func (d *Document) BlockActive(b Block) bool {
	st := d.stateAtCursor()

	if b == BlockParagraph {
		return st.block == BlockParagraph && st.heading == 0
	}

	return st.block == b
}

// HeadingLevel returns the level of the heading containing the cursor, or 0
func (d *Document) HeadingLevel() int {
	return d.stateAtCursor().heading
}

// stateAtCursor parses the source and derives the formatting context of the
// node containing the cursor
func (d *Document) stateAtCursor() cursorState {
	d.mu.Lock()
	cur := d.history[d.index]
	d.mu.Unlock()

	source := []byte(cur.source)
	cursor := cur.cursor
	st := cursorState{block: BlockParagraph}

	root := d.md.Parser().Parse(text.NewReader(source))

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if nodeContains(node, cursor) {
				st.heading = node.Level
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if nodeContains(n, cursor) {
				st.block = BlockCodeBlock
			}
		case *ast.Blockquote:
			if nodeContains(node, cursor) {
				st.block = BlockBlockquote
			}
		case *ast.List:
			if nodeContains(node, cursor) {
				switch {
				case hasTaskCheckbox(node):
					st.block = BlockTaskList
				case node.IsOrdered():
					st.block = BlockOrderedList
				default:
					st.block = BlockBulletList
				}
			}
		case *ast.Emphasis:
			if inlineContains(node, cursor) {
				if node.Level >= 2 {
					st.bold = true
				} else {
					st.italic = true
				}
			}
		case *ast.CodeSpan:
			if inlineContains(node, cursor) {
				st.code = true
			}
		case *east.Strikethrough:
			if inlineContains(node, cursor) {
				st.strike = true
			}
		}

		return ast.WalkContinue, nil
	})

	// underline survives markdown as inline html tags
	before := cur.source[:cursor]
	open := strings.LastIndex(before, "<u>")
	closed := strings.LastIndex(before, "</u>")
	st.underline = open >= 0 && open > closed

	return st
}

// nodeContains reports whether the cursor falls within the source lines of
// the given block node or any of its descendants
func nodeContains(n ast.Node, cursor int) bool {
	start, stop, ok := nodeSpan(n)
	return ok && cursor >= start && cursor <= stop
}

// nodeSpan returns the byte range covered by a block node's lines, widened
// by its descendants
func nodeSpan(n ast.Node) (start, stop int, ok bool) {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			start = lines.At(0).Start
			stop = lines.At(lines.Len() - 1).Stop
			ok = true
		}
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		cs, ce, cok := nodeSpan(c)
		if !cok {
			continue
		}
		if !ok || cs < start {
			start = cs
		}
		if !ok || ce > stop {
			stop = ce
		}
		ok = true
	}

	return start, stop, ok
}

// inlineContains reports whether the cursor falls within any text segment of
// the given inline node
func inlineContains(n ast.Node, cursor int) bool {
	found := false

	ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		if t, isText := child.(*ast.Text); isText {
			if cursor >= t.Segment.Start && cursor <= t.Segment.Stop {
				found = true
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})

	return found
}

// hasTaskCheckbox reports whether any item of the list carries a checkbox
func hasTaskCheckbox(n ast.Node) bool {
	found := false

	ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		if _, isBox := child.(*east.TaskCheckBox); isBox {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return found
}

// lineBounds returns the bounds of the line containing the cursor
func lineBounds(source string, cursor int) (int, int) {
	start := strings.LastIndexByte(source[:cursor], '\n') + 1
	end := strings.IndexByte(source[cursor:], '\n')
	if end == -1 {
		end = len(source)
	} else {
		end += cursor
	}

	return start, end
}

// wordBounds returns the bounds of the whitespace-delimited word at the
// cursor
func wordBounds(source string, cursor int) (int, int) {
	isSpace := func(b byte) bool {
		return b == ' ' || b == '\t' || b == '\n'
	}

	start := cursor
	for start > 0 && !isSpace(source[start-1]) {
		start--
	}
	end := cursor
	for end < len(source) && !isSpace(source[end]) {
		end++
	}

	return start, end
}

// ToggleMark wraps the word at the cursor in the mark's delimiters, or
// unwraps it when already wrapped
func (d *Document) ToggleMark(m Mark) {
	open, closing := markers[m][0], markers[m][1]

	d.mu.Lock()
	cur := d.history[d.index]
	start, end := wordBounds(cur.source, cur.cursor)
	word := cur.source[start:end]

	var next string
	var cursor int
	if strings.HasPrefix(word, open) && strings.HasSuffix(word, closing) && len(word) >= len(open)+len(closing) {
		unwrapped := word[len(open) : len(word)-len(closing)]
		next = cur.source[:start] + unwrapped + cur.source[end:]
		cursor = start + len(unwrapped)
	} else {
		next = cur.source[:start] + open + word + closing + cur.source[end:]
		cursor = start + len(open) + len(word)
	}
	d.commit(next, cursor)
	d.mu.Unlock()

	d.notify(EventTransaction)
}

// blockPrefixes are the line prefixes that block toggles add and strip
var blockPrefixes = map[Block]string{
	BlockBulletList:  "- ",
	BlockOrderedList: "1. ",
	BlockTaskList:    "- [ ] ",
	BlockBlockquote:  "> ",
}

// stripLinePrefix removes any known block or heading prefix from a line
func stripLinePrefix(line string) string {
	for _, prefix := range []string{"- [ ] ", "- [x] ", "- ", "* ", "> "} {
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):]
		}
	}

	trimmed := strings.TrimLeft(line, "#")
	if trimmed != line && strings.HasPrefix(trimmed, " ") {
		return trimmed[1:]
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && line[i] == '.' && line[i+1] == ' ' {
		return line[i+2:]
	}

	return line
}

// ToggleBlock rewrites the line at the cursor into the given block kind, or
// back into a paragraph when it already is that kind
func (d *Document) ToggleBlock(b Block) {
	if b == BlockCodeBlock {
		d.toggleCodeBlock()
		return
	}

	active := d.BlockActive(b)

	d.mu.Lock()
	cur := d.history[d.index]
	start, end := lineBounds(cur.source, cur.cursor)
	line := stripLinePrefix(cur.source[start:end])

	if !active && b != BlockParagraph {
		line = blockPrefixes[b] + line
	}

	next := cur.source[:start] + line + cur.source[end:]
	d.commit(next, start+len(line))
	d.mu.Unlock()

	d.notify(EventTransaction)
}

// toggleCodeBlock fences the line at the cursor, or removes the fences when
// the cursor already sits inside a fenced block
func (d *Document) toggleCodeBlock() {
	if d.BlockActive(BlockCodeBlock) {
		d.mu.Lock()
		cur := d.history[d.index]
		lines := strings.Split(cur.source, "\n")

		kept := make([]string, 0, len(lines))
		for _, l := range lines {
			if strings.HasPrefix(strings.TrimSpace(l), "```") {
				continue
			}
			kept = append(kept, l)
		}

		next := strings.Join(kept, "\n")
		cursor := cur.cursor
		if cursor > len(next) {
			cursor = len(next)
		}
		d.commit(next, cursor)
		d.mu.Unlock()

		d.notify(EventTransaction)
		return
	}

	d.mu.Lock()
	cur := d.history[d.index]
	start, end := lineBounds(cur.source, cur.cursor)
	line := cur.source[start:end]

	next := cur.source[:start] + "```\n" + line + "\n```" + cur.source[end:]
	d.commit(next, start+len("```\n")+len(line))
	d.mu.Unlock()

	d.notify(EventTransaction)
}

// ToggleHeading turns the line at the cursor into a heading of the given
// level, or back into a paragraph when it already is one
func (d *Document) ToggleHeading(level int) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	active := d.HeadingLevel() == level

	d.mu.Lock()
	cur := d.history[d.index]
	start, end := lineBounds(cur.source, cur.cursor)
	line := stripLinePrefix(cur.source[start:end])

	if !active {
		line = strings.Repeat("#", level) + " " + line
	}

	next := cur.source[:start] + line + cur.source[end:]
	d.commit(next, start+len(line))
	d.mu.Unlock()

	d.notify(EventTransaction)
}
