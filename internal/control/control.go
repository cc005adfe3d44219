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

// Package control implements the control block shared by a group of
// strong and weak handles. Only package arc may reach it.
package control

import (
	"fmt"
	"sync/atomic"
)

// lastID hands out process-unique block identifiers.
var lastID atomic.Uint64

// Block is the shared counter state behind one payload.
//
// strong counts the owning handles. weak counts the non-owning handles plus
// one unit held collectively by the strong handles while strong > 0, so the
// block is freed by whoever takes weak to zero and by nobody else.
//
// The zero value is not usable; call Init before publishing the block.
type Block struct {
	id     uint64
	strong atomic.Int64
	weak   atomic.Int64
	// group is set once the strong group's weak unit has been given back.
	group atomic.Bool
	check bool
}

// Init prepares b for a freshly adopted payload: strong=1, no weak handles.
// If check is set, counter corruption panics instead of going unnoticed.
func (b *Block) Init(check bool) {
	b.id = lastID.Add(1)
	b.check = check
	b.strong.Store(1)
	b.weak.Store(1)
}

// ID returns the block identifier assigned by Init.
func (b *Block) ID() uint64 {
	return b.id
}

// Retain adds a strong reference. The caller must already own one.
func (b *Block) Retain() {
	if n := b.strong.Add(1); n <= 1 && b.check {
		panic(b.corrupt("retain", "strong", n))
	}
}

// TryRetain adds a strong reference only if at least one is still held.
// It never moves the strong count away from zero.
func (b *Block) TryRetain() bool {
	for {
		n := b.strong.Load()
		if n <= 0 {
			return false
		}
		if b.strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops a strong reference and reports whether it was the last one.
// Exactly one call observes the 1 -> 0 transition.
func (b *Block) Release() bool {
	n := b.strong.Add(-1)
	if n < 0 && b.check {
		panic(b.corrupt("release", "strong", n))
	}
	return n == 0
}

// RetainWeak adds a weak reference. The caller must hold a strong or weak one.
func (b *Block) RetainWeak() {
	if n := b.weak.Add(1); n <= 1 && b.check {
		panic(b.corrupt("retain", "weak", n))
	}
}

// ReleaseGroup gives back the strong group's weak unit. Call it once, after
// Release returned true and the payload has been disposed of. It reports
// whether the block must now be freed.
func (b *Block) ReleaseGroup() bool {
	last := b.ReleaseWeak()
	b.group.Store(true)
	return last
}

// ReleaseWeak drops a weak reference. It reports whether the block must now
// be freed.
func (b *Block) ReleaseWeak() bool {
	n := b.weak.Add(-1)
	if n < 0 && b.check {
		panic(b.corrupt("release", "weak", n))
	}
	return n == 0
}

// Strong returns a snapshot of the strong count.
func (b *Block) Strong() int64 {
	if n := b.strong.Load(); n > 0 {
		return n
	}
	return 0
}

// Weak returns a snapshot of the weak handle count.
// The strong group's unit is not reported, including while the payload is
// being disposed of. Under concurrent mutation the result may straddle the
// group's release and under-report by one.
func (b *Block) Weak() int64 {
	released := b.group.Load()
	w := b.weak.Load()
	if !released {
		w--
	}
	if w < 0 {
		return 0
	}
	return w
}

func (b *Block) corrupt(op, counter string, n int64) string {
	return fmt.Sprintf("arc(control): block#%d: %s left %s count at %d", b.id, op, counter, n)
}
