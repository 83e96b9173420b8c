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

// Package store provides the shared plumbing for the client-side state
// stores: operation results, change subscriptions, and the request
// generation counters that keep stale responses from overwriting newer
// state.
package store

import (
	"sync"
)

// Result is the outcome of a store operation. Store operations never
// propagate errors to the caller; every failure is converted into a Result
// with a human-readable message.
type Result struct {
	OK    bool
	Error string
}

// Succeed returns a successful Result
func Succeed() Result {
	return Result{OK: true}
}

// Fail returns a failed Result carrying the message of the given error
func Fail(err error) Result {
	return Result{Error: err.Error()}
}

// Generations issues request generations and arbitrates which responses may
// be applied. Every operation takes a generation at its start; a response is
// applied only if nothing newer has been applied in the same scope since. A
// full-replace operation applies across all scopes at once.
type Generations struct {
	mu sync.Mutex
	// next is the most recently issued generation
	next uint64
	// global is the generation of the last applied full-replace
	global uint64
	// scoped is the generation of the last applied response per scope
	scoped map[string]uint64
	// maxApplied is the largest generation applied in any scope
	maxApplied uint64
}

// Begin issues a new request generation
func (g *Generations) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return g.next
}

// Apply records the given generation as applied in the given scope. It
// returns false if a newer response has already been applied in that scope
// or across all scopes, in which case the caller must discard its response.
func (g *Generations) Apply(scope string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen <= g.global || gen <= g.scoped[scope] {
		return false
	}

	if g.scoped == nil {
		g.scoped = map[string]uint64{}
	}
	g.scoped[scope] = gen
	if gen > g.maxApplied {
		g.maxApplied = gen
	}

	return true
}

// ApplyAll records the given generation as applied across every scope, as a
// full-replace operation does. It returns false if any scope has already
// applied a newer response.
func (g *Generations) ApplyAll(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen <= g.maxApplied {
		return false
	}

	g.global = gen
	g.scoped = nil
	g.maxApplied = gen

	return true
}

// Hub is a change-subscription list. Stores notify it after every state
// transition so that consumers can re-render from a fresh snapshot.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// Subscribe registers a callback invoked on every state change. The returned
// function cancels the subscription.
func (h *Hub) Subscribe(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs == nil {
		h.subs = map[int]func(){}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Notify invokes every subscribed callback. Callbacks run outside the hub
// lock so that a subscriber may resubscribe or read store snapshots.
func (h *Hub) Notify() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
