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

package arc_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/arc"
	"dirpx.dev/arc/apis"
	"dirpx.dev/arc/config"
	"dirpx.dev/arc/tracker"
)

// resource counts how often it was torn down.
type resource struct {
	id        int
	destroyed atomic.Int32
}

func (r *resource) Destroy() { r.destroyed.Add(1) }

// session is a plain payload without teardown.
type session struct{ id int }

// counting is an apis.Observer that records every notification.
type counting struct {
	allocated  atomic.Int64
	disposed   atomic.Int64
	freed      atomic.Int64
	lockFailed atomic.Int64

	mu   sync.Mutex
	errs []error
}

func (c *counting) BlockAllocated(apis.Entry) { c.allocated.Add(1) }

func (c *counting) PayloadDisposed(_ apis.Entry, err error) {
	c.disposed.Add(1)
	if err != nil {
		c.mu.Lock()
		c.errs = append(c.errs, err)
		c.mu.Unlock()
	}
}

func (c *counting) BlockFreed(apis.Entry) { c.freed.Add(1) }
func (c *counting) LockFailed(apis.Entry) { c.lockFailed.Add(1) }

func (c *counting) errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// observe installs a counting observer and a fresh tracker with block
// tracking on, and restores the defaults when the test ends.
func observe(tb testing.TB) *counting {
	tb.Helper()
	obs := &counting{}
	cfg := config.NewConfig(config.WithTrackBlocks(true))
	arc.SetAll(&cfg, obs, tracker.New(), nil, nil)
	tb.Cleanup(func() {
		def := config.DefaultConfig()
		arc.SetAll(&def, nil, tracker.New(), nil, nil)
		arc.UnpinTracker()
	})
	return obs
}
