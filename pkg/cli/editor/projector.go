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
	"fmt"
	"sync"

	"github.com/inkpot/inkpot/pkg/cli/log"
)

// Capability is one trackable formatting state: its name, the query that
// computes it, and the command that toggles it. Adding a trackable state is
// adding a row here.
type Capability struct {
	Key    string
	Query  func(Engine) bool
	Toggle func(Engine)
}

// capabilities is the static table the projector expands. Keys are the names
// the view layer binds toolbar controls to.
var capabilities = []Capability{
	{"isBold", func(e Engine) bool { return e.MarkActive(MarkBold) }, func(e Engine) { e.ToggleMark(MarkBold) }},
	{"isItalic", func(e Engine) bool { return e.MarkActive(MarkItalic) }, func(e Engine) { e.ToggleMark(MarkItalic) }},
	{"isUnderline", func(e Engine) bool { return e.MarkActive(MarkUnderline) }, func(e Engine) { e.ToggleMark(MarkUnderline) }},
	{"isStrike", func(e Engine) bool { return e.MarkActive(MarkStrike) }, func(e Engine) { e.ToggleMark(MarkStrike) }},
	{"isCode", func(e Engine) bool { return e.MarkActive(MarkCode) }, func(e Engine) { e.ToggleMark(MarkCode) }},
	{"isParagraph", func(e Engine) bool { return e.BlockActive(BlockParagraph) }, func(e Engine) { e.ToggleBlock(BlockParagraph) }},
	{"isBulletList", func(e Engine) bool { return e.BlockActive(BlockBulletList) }, func(e Engine) { e.ToggleBlock(BlockBulletList) }},
	{"isOrderedList", func(e Engine) bool { return e.BlockActive(BlockOrderedList) }, func(e Engine) { e.ToggleBlock(BlockOrderedList) }},
	{"isTaskList", func(e Engine) bool { return e.BlockActive(BlockTaskList) }, func(e Engine) { e.ToggleBlock(BlockTaskList) }},
	{"isCodeBlock", func(e Engine) bool { return e.BlockActive(BlockCodeBlock) }, func(e Engine) { e.ToggleBlock(BlockCodeBlock) }},
	{"isBlockquote", func(e Engine) bool { return e.BlockActive(BlockBlockquote) }, func(e Engine) { e.ToggleBlock(BlockBlockquote) }},
	{"isHeading1", func(e Engine) bool { return e.HeadingLevel() == 1 }, func(e Engine) { e.ToggleHeading(1) }},
	{"isHeading2", func(e Engine) bool { return e.HeadingLevel() == 2 }, func(e Engine) { e.ToggleHeading(2) }},
	{"isHeading3", func(e Engine) bool { return e.HeadingLevel() == 3 }, func(e Engine) { e.ToggleHeading(3) }},
	{"canUndo", func(e Engine) bool { return e.CanUndo() }, func(e Engine) { e.Undo() }},
	{"canRedo", func(e Engine) bool { return e.CanRedo() }, func(e Engine) { e.Redo() }},
}

// Capabilities returns the names of every tracked formatting state
func Capabilities() []string {
	keys := make([]string, 0, len(capabilities))
	for _, c := range capabilities {
		keys = append(keys, c.Key)
	}

	return keys
}

// Projector derives the formatting snapshot the toolbar renders from. The
// whole snapshot is recomputed on every engine event; it is never patched
// field by field. If any query panics, the previous snapshot is kept.
type Projector struct {
	engine Engine
	cancel func()

	mu       sync.Mutex
	snapshot map[string]bool
}

// NewProjector returns a projector subscribed to the given engine, with the
// snapshot already computed
func NewProjector(e Engine) *Projector {
	p := &Projector{
		engine: e,
	}
	p.recompute()
	p.cancel = e.Subscribe(func(Event) {
		p.recompute()
	})

	return p
}

// recompute expands the capability table into a fresh snapshot
func (p *Projector) recompute() {
	next := make(map[string]bool, len(capabilities))

	for _, c := range capabilities {
		value, err := runQuery(c, p.engine)
		if err != nil {
			// the engine is in a transient bad state; keep the last
			// good snapshot
			log.Debug("skipping snapshot recompute: %v\n", err)
			return
		}
		next[c.Key] = value
	}

	p.mu.Lock()
	p.snapshot = next
	p.mu.Unlock()
}

// runQuery evaluates one capability query, converting a panic into an error
func runQuery(c Capability, e Engine) (value bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("querying %s: %v", c.Key, r)
		}
	}()

	return c.Query(e), nil
}

// Snapshot returns a copy of the current formatting snapshot
func (p *Projector) Snapshot() map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ret := make(map[string]bool, len(p.snapshot))
	for k, v := range p.snapshot {
		ret[k] = v
	}

	return ret
}

// Active reports the snapshot value for one capability
func (p *Projector) Active(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshot[key]
}

// Toggle runs the command bound to the given capability. The resulting
// engine event recomputes the snapshot.
func (p *Projector) Toggle(key string) bool {
	for _, c := range capabilities {
		if c.Key == key {
			c.Toggle(p.engine)
			return true
		}
	}

	return false
}

// Close cancels the engine subscription
func (p *Projector) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}
