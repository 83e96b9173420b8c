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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCoversEveryCapability(t *testing.T) {
	p := NewProjector(NewDocument(""))
	defer p.Close()

	snapshot := p.Snapshot()
	for _, key := range Capabilities() {
		_, ok := snapshot[key]
		assert.True(t, ok, "snapshot is missing %s", key)
	}
}

func TestHeadingWithRedoAvailable(t *testing.T) {
	d := NewDocument("## Study plan\nbody")
	d.SetCursor(strings.Index(d.Source(), "Study") + 1)

	// create a redoable edit, then come back
	d.Insert("x")
	require.True(t, d.Undo(), "undo should succeed")

	p := NewProjector(d)
	defer p.Close()

	assert.True(t, p.Active("isHeading2"), "level-2 heading should be active")
	assert.False(t, p.Active("isHeading1"), "level-1 heading should not be active")
	assert.True(t, p.Active("canRedo"), "redo should be available")
	assert.False(t, p.Active("canUndo"), "undo should not be available")
}

func TestSnapshotRecomputesOnEvents(t *testing.T) {
	d := NewDocument("make this bold")
	d.SetCursor(strings.Index(d.Source(), "bold") + 1)

	p := NewProjector(d)
	defer p.Close()

	assert.False(t, p.Active("isBold"), "bold should not be active yet")

	d.ToggleMark(MarkBold)

	assert.True(t, p.Active("isBold"), "snapshot should reflect the toggled mark")
	assert.True(t, p.Active("canUndo"), "snapshot should reflect the new revision")
}

func TestToggleByKey(t *testing.T) {
	d := NewDocument("a plain line")
	d.SetCursor(strings.Index(d.Source(), "plain") + 1)

	p := NewProjector(d)
	defer p.Close()

	require.True(t, p.Toggle("isHeading1"), "capability should exist")

	assert.Equal(t, "# a plain line", d.Source(), "toggle should rewrite the document")
	assert.True(t, p.Active("isHeading1"), "snapshot should reflect the toggle")

	assert.False(t, p.Toggle("isBogus"), "unknown capability should be rejected")
}

// flakyEngine panics on every query once tripped, like an engine mid-teardown
type flakyEngine struct {
	broken bool
	subs   []func(Event)
}

func (f *flakyEngine) check() {
	if f.broken {
		panic("engine is mid-transaction")
	}
}

func (f *flakyEngine) MarkActive(Mark) bool   { f.check(); return false }
func (f *flakyEngine) BlockActive(Block) bool { f.check(); return false }
func (f *flakyEngine) HeadingLevel() int      { f.check(); return 2 }
func (f *flakyEngine) CanUndo() bool          { f.check(); return true }
func (f *flakyEngine) CanRedo() bool          { f.check(); return false }
func (f *flakyEngine) ToggleMark(Mark)        {}
func (f *flakyEngine) ToggleBlock(Block)      {}
func (f *flakyEngine) ToggleHeading(int)      {}
func (f *flakyEngine) Undo() bool             { return false }
func (f *flakyEngine) Redo() bool             { return false }

func (f *flakyEngine) Subscribe(fn func(Event)) func() {
	f.subs = append(f.subs, fn)
	return func() {}
}

func (f *flakyEngine) emit(ev Event) {
	for _, fn := range f.subs {
		fn(ev)
	}
}

func TestQueryPanicKeepsPreviousSnapshot(t *testing.T) {
	engine := &flakyEngine{}
	p := NewProjector(engine)
	defer p.Close()

	require.True(t, p.Active("isHeading2"), "initial snapshot mismatch")
	require.True(t, p.Active("canUndo"), "initial snapshot mismatch")

	engine.broken = true
	engine.emit(EventTransaction)

	assert.True(t, p.Active("isHeading2"), "snapshot should keep its last good value")
	assert.True(t, p.Active("canUndo"), "snapshot should keep its last good value")
}
