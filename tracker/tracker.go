/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tracker

import (
	"sort"
	"sync"

	"dirpx.dev/arc/apis"
)

// New constructs an empty Tracker.
func New() apis.Tracker {
	return &tracker{}
}

// tracker is a Tracker backed by sync.Map, keyed by block ID.
type tracker struct {
	// mu guards write-side consistency and count.
	mu sync.Mutex
	// m maps block ID to its entry.
	m sync.Map // map[uint64]apis.Entry
	// count tracks the number of live entries.
	count int
}

// Track records e. Entries with a zero ID are ignored; re-tracking a known
// ID keeps the first entry.
func (t *tracker) Track(e apis.Entry) {
	if e.ID == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, loaded := t.m.LoadOrStore(e.ID, e); !loaded {
		t.count++
	}
}

// Untrack forgets the entry for id, if any.
func (t *tracker) Untrack(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.m.LoadAndDelete(id); ok {
		t.count--
	}
}

// Entries returns live entries ordered by ID, oldest block first.
func (t *tracker) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, t.Count())
	t.m.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Entry))
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Count returns the number of live entries.
func (t *tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Reset forgets every entry.
func (t *tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m.Range(func(key, _ any) bool {
		t.m.Delete(key)
		return true
	})
	t.count = 0
}
