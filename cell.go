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
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/arc/apis"
	"dirpx.dev/arc/internal/control"
)

// cell is the allocation shared by every handle of one payload: the control
// block plus what the handles need to reach and dispose of the payload.
//
// ptr is cleared when the payload is disposed of, so a weak handle can
// never reach it afterwards and the collector may reclaim it while weak
// handles are still around.
type cell[T any] struct {
	control.Block
	ptr   atomic.Pointer[T]
	del   Deleter[T]
	env   *state
	entry apis.Entry
}

// newCell adopts p (non-nil) under a fresh block with strong=1.
func newCell[T any](p *T, del Deleter[T]) *cell[T] {
	if del == nil {
		del = DefaultDeleter[T]
	}
	env := st.Load()
	c := &cell[T]{del: del, env: env}
	c.Init(env.cfg.CheckCounts)
	c.ptr.Store(p)

	c.entry = apis.Entry{ID: c.ID(), Type: reflect.TypeFor[*T]()}

	if env.observed() {
		c.entry.Name = env.res.Resolve(p, env.cfg)
		if env.cfg.TrackBlocks {
			env.trk.Track(c.entry)
		}
		if env.obs != nil {
			env.obs.BlockAllocated(c.entry)
		}
	}
	return c
}

// release drops one strong reference, disposing of the payload and then
// giving up the strong group's weak unit when it was the last.
func (c *cell[T]) release() {
	if !c.Release() {
		return
	}
	c.dispose()
	c.releaseGroup()
}

// abandon drops one strong reference without disposing of the payload.
func (c *cell[T]) abandon() {
	if !c.Release() {
		return
	}
	c.ptr.Store(nil)
	c.del = nil
	c.releaseGroup()
}

// releaseGroup gives back the strong group's weak unit once the payload is
// gone and frees the block when no weak handle remains.
func (c *cell[T]) releaseGroup() {
	if c.ReleaseGroup() {
		c.free()
	}
}

// releaseWeak drops one weak unit and frees the block when it was the last.
func (c *cell[T]) releaseWeak() {
	if c.ReleaseWeak() {
		c.free()
	}
}

func (c *cell[T]) dispose() {
	p := c.ptr.Swap(nil)
	del := c.del
	c.del = nil
	if p == nil {
		return
	}
	err := del(p)
	if err != nil {
		err = errors.Wrapf(err, "arc: dispose %s", c.entry)
	}
	if c.env.obs != nil {
		c.env.obs.PayloadDisposed(c.entry, err)
	}
}

func (c *cell[T]) free() {
	if c.env.cfg.TrackBlocks {
		c.env.trk.Untrack(c.entry.ID)
	}
	if c.env.obs != nil {
		c.env.obs.BlockFreed(c.entry)
	}
}

func (c *cell[T]) lockFailed() {
	if c.env.obs != nil {
		c.env.obs.LockFailed(c.entry)
	}
}
