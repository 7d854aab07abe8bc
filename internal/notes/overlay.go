// overlay.go
//
// Note feed view-model
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package notes

import (
	"sort"
	"sync"
)

// ToggleState tracks a provisional bookmark change
type ToggleState int

const (
	TogglePending ToggleState = iota
	ToggleApplied
	ToggleFailed
)

func (s ToggleState) String() string {
	switch s {
	case TogglePending:
		return "pending"
	case ToggleApplied:
		return "applied"
	case ToggleFailed:
		return "failed"
	}
	return "unknown"
}

type toggle struct {
	want  bool
	state ToggleState
	err   error
}

// BookmarkOverlay layers optimistic bookmark toggles over the last confirmed
// bookmark set. A failed toggle falls back to the confirmed value.
type BookmarkOverlay struct {
	mu        sync.Mutex
	confirmed map[string]bool
	toggles   map[string]*toggle
}

// NewBookmarkOverlay starts from a confirmed bookmark set
func NewBookmarkOverlay(confirmed []string) *BookmarkOverlay {
	o := &BookmarkOverlay{toggles: make(map[string]*toggle)}
	o.reset(confirmed)
	return o
}

// Bookmarked is the value the viewer should see for noteID
func (o *BookmarkOverlay) Bookmarked(noteID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current(noteID)
}

// Begin flips noteID provisionally and returns the new wanted value.
func (o *BookmarkOverlay) Begin(noteID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	want := !o.current(noteID)
	o.toggles[noteID] = &toggle{want: want, state: TogglePending}
	return want
}

// Commit confirms the pending toggle for noteID
func (o *BookmarkOverlay) Commit(noteID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.toggles[noteID]
	if !ok || t.state != TogglePending {
		return
	}
	t.state = ToggleApplied
	o.confirmed[noteID] = t.want
}

// Fail rolls noteID back to its confirmed value and records err
func (o *BookmarkOverlay) Fail(noteID string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.toggles[noteID]
	if !ok || t.state != TogglePending {
		return
	}
	t.state = ToggleFailed
	t.err = err
}

// State reports the last toggle state for noteID
func (o *BookmarkOverlay) State(noteID string) (ToggleState, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.toggles[noteID]
	if !ok {
		return 0, false
	}
	return t.state, true
}

// Err is the failure recorded for noteID, if any
func (o *BookmarkOverlay) Err(noteID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if t, ok := o.toggles[noteID]; ok {
		return t.err
	}
	return nil
}

// Reconcile adopts a store snapshot as the confirmed set. Settled toggles are
// dropped; pending toggles stay layered on top.
func (o *BookmarkOverlay) Reconcile(snapshot []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reset(snapshot)
	for id, t := range o.toggles {
		if t.state != TogglePending {
			delete(o.toggles, id)
		}
	}
}

// IDs is the effective bookmark set, sorted
func (o *BookmarkOverlay) IDs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	seen := make(map[string]struct{})
	for id := range o.confirmed {
		seen[id] = struct{}{}
	}
	for id := range o.toggles {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		if o.current(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (o *BookmarkOverlay) current(noteID string) bool {
	if t, ok := o.toggles[noteID]; ok && t.state != ToggleFailed {
		return t.want
	}
	return o.confirmed[noteID]
}

func (o *BookmarkOverlay) reset(ids []string) {
	o.confirmed = make(map[string]bool, len(ids))
	for _, id := range ids {
		o.confirmed[id] = true
	}
}
