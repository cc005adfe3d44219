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
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/arc/apis"
	"dirpx.dev/arc/builder"
	"dirpx.dev/arc/config"
)

// init publishes the default snapshot.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.trk = b.BuildTracker(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilPayload is returned when a constructor yields neither a payload nor an error.
	ErrNilPayload = errors.New("arc: constructor returned nil payload")
	// ErrNilTracker is raised when a builder returns a nil tracker.
	ErrNilTracker = errors.New("arc: builder returned nil tracker")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("arc: builder returned nil resolver")
)

// Config returns the process-wide configuration new blocks are created with.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the configuration used by blocks allocated from now on.
// Unpinned trackers and resolvers are rebuilt by the active builder.
func SetConfig(cfg apis.Config) {
	update(func(next *state) {
		next.cfg = cfg
		next.rebuild()
	})
}

// Observer returns the active observer, or nil when none is installed.
func Observer() apis.Observer {
	return st.Load().obs
}

// SetObserver installs o for blocks allocated from now on. A nil o disables
// notifications.
func SetObserver(o apis.Observer) {
	update(func(next *state) {
		next.obs = o
	})
}

// Tracker returns the active tracker.
func Tracker() apis.Tracker {
	return st.Load().trk
}

// SetTracker replaces the tracker and pins it. Blocks keep reporting to the
// tracker that was active when they were allocated.
func SetTracker(t apis.Tracker) {
	if t == nil {
		return
	}
	update(func(next *state) {
		next.trk = t
		next.ptrk = true
	})
}

// Resolver returns the resolver used to name payloads.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces the resolver and pins it.
func SetResolver(r apis.Resolver) {
	if r == nil {
		return
	}
	update(func(next *state) {
		next.res = r
		next.pres = true
	})
}

// Builder returns the builder used to derive trackers and resolvers.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder swaps the builder and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(next *state) {
		next.bld = b
		next.rebuild()
	})
}

// SetAll replaces every layer in one step and clears both pins, except for
// layers passed explicitly, which are pinned.
//
// Nil cfg and bld leave the corresponding component unchanged; obs is always
// replaced. It is mainly used by tests to get a deterministic snapshot.
func SetAll(cfg *apis.Config, obs apis.Observer, trk apis.Tracker, res apis.Resolver, bld apis.Builder) {
	update(func(next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		if bld != nil {
			next.bld = bld
		}
		next.obs = obs
		next.ptrk, next.pres = false, false
		next.rebuild()
		if trk != nil {
			next.trk, next.ptrk = trk, true
		}
		if res != nil {
			next.res, next.pres = res, true
		}
	})
}

// LiveBlocks returns the blocks currently recorded by the active tracker.
// Blocks are only recorded while Config().TrackBlocks is set.
func LiveBlocks() []apis.Entry {
	return st.Load().trk.Entries()
}

// EntityType returns the diagnostic name of payload type t.
func EntityType(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// IsTrackerPinned reports whether the tracker survives rebuilds.
func IsTrackerPinned() bool {
	return st.Load().ptrk
}

// PinTracker keeps the current tracker across rebuilds.
func PinTracker() {
	update(func(next *state) { next.ptrk = true })
}

// UnpinTracker lets the builder replace the tracker on the next rebuild.
func UnpinTracker() {
	update(func(next *state) { next.ptrk = false })
}

// IsResolverPinned reports whether the resolver survives rebuilds.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver keeps the current resolver across rebuilds.
func PinResolver() {
	update(func(next *state) { next.pres = true })
}

// UnpinResolver lets the builder replace the resolver on the next rebuild.
func UnpinResolver() {
	update(func(next *state) { next.pres = false })
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the current snapshot.
var st atomic.Pointer[state]

// update derives a new snapshot from the current one under buildMu and
// publishes it atomically.
func update(fn func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)

	if next.trk == nil {
		panic(ErrNilTracker)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// state is an immutable snapshot published via st.Store; never mutate
// fields of a published state. Every block keeps the snapshot that was
// current when it was allocated.
type state struct {
	// cfg is the configuration for new blocks.
	cfg apis.Config
	// obs receives lifecycle notifications; nil disables them.
	obs apis.Observer
	// trk records live blocks when cfg.TrackBlocks is set.
	trk apis.Tracker
	// res names payload types for entries.
	res apis.Resolver
	// bld derives trk and res from cfg.
	bld apis.Builder
	// ptrk indicates whether trk is pinned.
	ptrk bool
	// pres indicates whether res is pinned.
	pres bool
}

// rebuild refreshes the unpinned layers of an unpublished snapshot.
func (s *state) rebuild() {
	if !s.ptrk {
		s.trk = s.bld.BuildTracker(s.cfg, s.trk)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.res)
	}
}

// observed reports whether blocks allocated under s need an Entry.
func (s *state) observed() bool {
	return s.obs != nil || s.cfg.TrackBlocks
}
