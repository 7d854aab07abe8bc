// notifier.go
//
// Remote document store for the notes feed
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

package store

import "sync"

// notifier fans change signals out to subscribers by key. Each subscriber has
// a one slot buffer, so bursts coalesce and publishers never block.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]chan struct{})}
}

func (n *notifier) subscribe(key string) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	if n.subs[key] == nil {
		n.subs[key] = make(map[int]chan struct{})
	}
	n.subs[key][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[key], id)
			if len(n.subs[key]) == 0 {
				delete(n.subs, key)
			}
		})
	}
}

func (n *notifier) publish(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *notifier) count(key string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[key])
}
