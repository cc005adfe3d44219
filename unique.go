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

// Unique is a single-owner handle. It has no control block and no atomic
// state: exactly one Unique owns the payload and disposes of it on Drop.
//
// The zero value is an empty handle. A Unique must not be copied by value;
// use Move to transfer ownership.
type Unique[T any] struct {
	noCopy noCopy
	ptr    *T
	del    Deleter[T]
}

// NewUnique takes ownership of p. A nil p yields an empty handle.
func NewUnique[T any](p *T) *Unique[T] {
	return NewUniqueWithDeleter(p, nil)
}

// NewUniqueWithDeleter is NewUnique with a custom deleter. A nil del selects
// DefaultDeleter.
func NewUniqueWithDeleter[T any](p *T, del Deleter[T]) *Unique[T] {
	return &Unique[T]{ptr: p, del: del}
}

// MakeUnique allocates a payload holding v together with its handle.
func MakeUnique[T any](v T) *Unique[T] {
	return NewUnique(&v)
}

// Get returns the payload pointer, nil when u is empty.
func (u *Unique[T]) Get() *T {
	return u.ptr
}

// Value returns a copy of the payload. u must not be empty.
func (u *Unique[T]) Value() T {
	return *u.ptr
}

// Move returns a new handle owning u's payload and leaves u empty.
func (u *Unique[T]) Move() *Unique[T] {
	n := &Unique[T]{ptr: u.ptr, del: u.del}
	u.ptr, u.del = nil, nil
	return n
}

// MoveFrom disposes of u's payload, takes over o's and leaves o empty.
// Moving a handle into itself does nothing.
func (u *Unique[T]) MoveFrom(o *Unique[T]) error {
	if u == o {
		return nil
	}
	ptr, del := o.ptr, o.del
	o.ptr, o.del = nil, nil
	err := u.Drop()
	u.ptr, u.del = ptr, del
	return err
}

// Release gives up ownership without disposing of the payload and returns it.
func (u *Unique[T]) Release() *T {
	p := u.ptr
	u.ptr, u.del = nil, nil
	return p
}

// Reset disposes of the current payload and adopts p with the default deleter.
func (u *Unique[T]) Reset(p *T) error {
	err := u.Drop()
	u.ptr = p
	return err
}

// Swap exchanges the payloads (and deleters) of u and o.
func (u *Unique[T]) Swap(o *Unique[T]) {
	u.ptr, o.ptr = o.ptr, u.ptr
	u.del, o.del = o.del, u.del
}

// Share converts u into a Shared handle owning the same payload and deleter.
// u is left empty.
func (u *Unique[T]) Share() *Shared[T] {
	p, del := u.ptr, u.del
	u.ptr, u.del = nil, nil
	return NewSharedWithDeleter(p, del)
}

// Drop disposes of the payload, if any, and leaves u empty. The deleter's
// error is returned.
func (u *Unique[T]) Drop() error {
	p, del := u.ptr, u.del
	u.ptr, u.del = nil, nil
	if p == nil {
		return nil
	}
	if del == nil {
		del = DefaultDeleter[T]
	}
	return del(p)
}
