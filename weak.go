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

package arc

// Weak is a non-owning handle. It keeps the control block alive, never the
// payload, and can be upgraded to a Shared with Lock while the payload
// still exists.
//
// A Weak references only the control block; the payload is fetched from the
// block when locking, so the Shared it was created from may be moved or
// dropped freely. The zero value is an empty handle. Like Shared, a Weak
// must not be copied by value.
type Weak[T any] struct {
	noCopy noCopy
	c      *cell[T]
}

// NewWeak returns a weak handle observing s's payload. An empty or nil s
// yields an empty handle.
func NewWeak[T any](s *Shared[T]) *Weak[T] {
	w := &Weak[T]{}
	w.AssignShared(s)
	return w
}

// UseCount returns the number of strong references, 0 when w is empty.
// The result is a snapshot and must not be used for synchronization.
func (w *Weak[T]) UseCount() int64 {
	if w.c == nil {
		return 0
	}
	return w.c.Strong()
}

// WeakCount returns the number of weak references, 0 when w is empty.
// The result is a snapshot and must not be used for synchronization.
func (w *Weak[T]) WeakCount() int64 {
	if w.c == nil {
		return 0
	}
	return w.c.Weak()
}

// Expired reports whether the payload is gone. It is answered from the
// strong count alone.
func (w *Weak[T]) Expired() bool {
	return w.c == nil || w.c.Strong() == 0
}

// Lock returns a new strong handle to the payload, or an empty one if the
// payload has already been disposed of. It cannot race a concurrent final
// Drop into resurrecting the payload.
func (w *Weak[T]) Lock() *Shared[T] {
	if w.c == nil {
		return &Shared[T]{}
	}
	if !w.c.TryRetain() {
		w.c.lockFailed()
		return &Shared[T]{}
	}
	return &Shared[T]{ptr: w.c.ptr.Load(), c: w.c}
}

// Clone returns a new weak handle observing the same payload.
func (w *Weak[T]) Clone() *Weak[T] {
	if w.c != nil {
		w.c.RetainWeak()
	}
	return &Weak[T]{c: w.c}
}

// Assign makes w observe o's payload. Assigning a handle to itself does
// nothing; a nil o empties w.
func (w *Weak[T]) Assign(o *Weak[T]) {
	if w == o {
		return
	}
	if o == nil {
		w.Drop()
		return
	}
	w.adopt(o.c)
}

// AssignShared makes w observe s's payload. A nil or empty s empties w.
func (w *Weak[T]) AssignShared(s *Shared[T]) {
	if s == nil {
		w.Drop()
		return
	}
	w.adopt(s.c)
}

// Move returns a new weak handle taking over w's reference and leaves w empty.
func (w *Weak[T]) Move() *Weak[T] {
	n := &Weak[T]{c: w.c}
	w.c = nil
	return n
}

// MoveFrom transfers o's reference into w and leaves o empty. Moving a handle
// into itself does nothing; a nil o empties w.
func (w *Weak[T]) MoveFrom(o *Weak[T]) {
	if w == o {
		return
	}
	if o == nil {
		w.Drop()
		return
	}
	c := o.c
	o.c = nil
	old := w.c
	w.c = c
	if old != nil {
		old.releaseWeak()
	}
}

// Swap exchanges the blocks observed by w and o. Counts are not touched.
func (w *Weak[T]) Swap(o *Weak[T]) {
	w.c, o.c = o.c, w.c
}

// Drop gives up w's reference and leaves w empty. The last reference of
// either kind frees the control block.
func (w *Weak[T]) Drop() {
	c := w.c
	w.c = nil
	if c != nil {
		c.releaseWeak()
	}
}

// Reset is Drop; it reads better where a handle is reused afterwards.
func (w *Weak[T]) Reset() {
	w.Drop()
}

// adopt takes a new weak reference on c before giving up the current one,
// so re-observing the same block is count-neutral.
func (w *Weak[T]) adopt(c *cell[T]) {
	if c != nil {
		c.RetainWeak()
	}
	old := w.c
	w.c = c
	if old != nil {
		old.releaseWeak()
	}
}
