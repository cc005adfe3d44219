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

package apis

import (
	"fmt"
	"reflect"
)

// Tracker records live control blocks for diagnostics and leak reports.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Tracker interface {
	// Track records a newly allocated block. Tracking the same ID twice
	// keeps the first entry.
	Track(e Entry)
	// Untrack forgets a block once it has been freed. Unknown IDs are ignored.
	Untrack(id uint64)
	// Entries returns a snapshot of live blocks (order is unspecified).
	Entries() []Entry
	// Count returns the number of live blocks.
	Count() int
	// Reset forgets every entry.
	Reset()
}

// Entry describes one control block for trackers and observers.
type Entry struct {
	// ID is the process-unique block identifier.
	ID uint64
	// Type is the payload's static type (*T).
	Type reflect.Type
	// Name is the resolved payload name, "" when unnamed or unresolved.
	Name string
}

// String formats e for logs and leak reports.
func (e Entry) String() string {
	name := e.Name
	if name == "" && e.Type != nil {
		name = e.Type.String()
	}
	return fmt.Sprintf("block#%d(%s)", e.ID, name)
}
