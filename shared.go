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

import (
	"reflect"

	"github.com/pkg/errors"
)

// Shared is a shared-ownership handle. Every handle sharing a payload holds
// one strong reference on the payload's control block; the payload is
// disposed of when the last one is dropped.
//
// The zero value is an empty handle. Handles are used through pointers and
// must not be copied by value: use Clone to share and Move to transfer.
// A single Shared must not be mutated from several goroutines at once, but
// distinct handles sharing one payload may be used concurrently.
type Shared[T any] struct {
	noCopy noCopy
	ptr    *T
	c      *cell[T]
}

// NewShared takes ownership of p under a fresh control block. The caller
// must not hand the same pointer to another owner. A nil p yields an empty
// handle.
func NewShared[T any](p *T) *Shared[T] {
	return NewSharedWithDeleter(p, nil)
}

// NewSharedWithDeleter is NewShared with a custom deleter. A nil del selects
// DefaultDeleter.
func NewSharedWithDeleter[T any](p *T, del Deleter[T]) *Shared[T] {
	if p == nil {
		return &Shared[T]{}
	}
	return &Shared[T]{ptr: p, c: newCell(p, del)}
}

// MakeShared allocates a payload holding v together with its handle.
func MakeShared[T any](v T) *Shared[T] {
	return NewShared(&v)
}

// MakeSharedFunc builds the payload with ctor and adopts it. If ctor fails no
// control block is created and the wrapped error is returned.
func MakeSharedFunc[T any](ctor func() (*T, error)) (*Shared[T], error) {
	p, err := ctor()
	if err != nil {
		return nil, errors.Wrapf(err, "arc: construct %s", reflect.TypeFor[T]())
	}
	if p == nil {
		return nil, ErrNilPayload
	}
	return NewShared(p), nil
}

// Get returns the payload pointer, nil when s is empty.
func (s *Shared[T]) Get() *T {
	return s.ptr
}

// Value returns a copy of the payload. s must not be empty.
func (s *Shared[T]) Value() T {
	return *s.ptr
}

// UseCount returns the number of strong references, 0 when s is empty.
// The result is a snapshot and must not be used for synchronization.
func (s *Shared[T]) UseCount() int64 {
	if s.c == nil {
		return 0
	}
	return s.c.Strong()
}

// WeakCount returns the number of weak references, 0 when s is empty.
// The result is a snapshot and must not be used for synchronization.
func (s *Shared[T]) WeakCount() int64 {
	if s.c == nil {
		return 0
	}
	return s.c.Weak()
}

// Unique reports whether s is the only strong reference (snapshot).
func (s *Shared[T]) Unique() bool {
	return s.UseCount() == 1
}

// Clone returns a new handle sharing s's payload.
func (s *Shared[T]) Clone() *Shared[T] {
	if s.c != nil {
		s.c.Retain()
	}
	return &Shared[T]{ptr: s.ptr, c: s.c}
}

// Assign makes s share o's payload, dropping whatever s held before.
// Assigning a handle to itself does nothing; a nil o empties s.
func (s *Shared[T]) Assign(o *Shared[T]) {
	if s == o {
		return
	}
	if o == nil {
		s.Drop()
		return
	}
	if o.c != nil {
		o.c.Retain()
	}
	old := s.c
	s.ptr, s.c = o.ptr, o.c
	if old != nil {
		old.release()
	}
}

// Move returns a new handle owning s's reference and leaves s empty.
// Counts are not touched.
func (s *Shared[T]) Move() *Shared[T] {
	n := &Shared[T]{ptr: s.ptr, c: s.c}
	s.ptr, s.c = nil, nil
	return n
}

// MoveFrom transfers o's reference into s, dropping whatever s held before,
// and leaves o empty. Moving a handle into itself does nothing; a nil o
// empties s.
func (s *Shared[T]) MoveFrom(o *Shared[T]) {
	if s == o {
		return
	}
	if o == nil {
		s.Drop()
		return
	}
	ptr, c := o.ptr, o.c
	o.ptr, o.c = nil, nil
	old := s.c
	s.ptr, s.c = ptr, c
	if old != nil {
		old.release()
	}
}

// Reset drops s's reference and adopts p under a fresh control block.
// Reset(nil) leaves s empty, without a block.
func (s *Shared[T]) Reset(p *T) {
	s.ResetWithDeleter(p, nil)
}

// ResetWithDeleter is Reset with a custom deleter for p.
func (s *Shared[T]) ResetWithDeleter(p *T, del Deleter[T]) {
	old := s.c
	s.ptr, s.c = nil, nil
	if old != nil {
		old.release()
	}
	if p != nil {
		s.ptr, s.c = p, newCell(p, del)
	}
}

// Release gives up s's reference without disposing of the payload, even if
// it was the last one, and returns the payload. s is left empty.
//
// Release is an escape hatch for extracting a payload from a single owner.
// Call it only after establishing UseCount() == 1 by other means: any other
// handle still sharing the payload keeps using it and will dispose of it
// when it is dropped, while the caller believes it owns it exclusively.
func (s *Shared[T]) Release() *T {
	p, c := s.ptr, s.c
	s.ptr, s.c = nil, nil
	if c != nil {
		c.abandon()
	}
	return p
}

// Swap exchanges the payloads of s and o. Counts are not touched.
func (s *Shared[T]) Swap(o *Shared[T]) {
	s.ptr, o.ptr = o.ptr, s.ptr
	s.c, o.c = o.c, s.c
}

// Drop gives up s's reference and leaves s empty. The last strong reference
// disposes of the payload; the control block is freed once no weak handle
// remains either. Dropping an empty handle does nothing.
func (s *Shared[T]) Drop() {
	c := s.c
	s.ptr, s.c = nil, nil
	if c != nil {
		c.release()
	}
}
