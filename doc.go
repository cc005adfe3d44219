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

// Package arc provides reference-counted ownership of heap payloads.
//
// arc gives Go code deterministic teardown for resources that must not wait
// for the garbage collector: file descriptors, pooled buffers, C memory,
// connections. A payload is owned by handles; when the last owner lets go,
// the payload's deleter runs exactly once. The collector only reclaims the
// memory afterwards.
//
// # Handles
//
// Three handle kinds are provided:
//
//   - Unique[T]: a single owner. No control block, no atomics. Move
//     transfers ownership, Drop disposes of the payload.
//
//   - Shared[T]: one of several owners. Every Shared holds a strong
//     reference on the payload's control block. Clone adds one, Drop gives
//     one up, Move transfers one without touching the counts. The payload
//     is disposed of on the strong count's 1 -> 0 transition.
//
//   - Weak[T]: an observer. It keeps the control block alive but never the
//     payload. Lock upgrades it to a Shared while the payload still exists
//     and returns an empty Shared otherwise.
//
// Handles are used through pointers. Copying a handle value would duplicate
// a reference without counting it, so every handle embeds a marker that
// makes `go vet` report such copies. The zero value of each handle is a
// valid empty handle.
//
//	s := arc.NewShared(conn)    // strong=1
//	w := arc.NewWeak(s)         // strong=1 weak=1
//	c := s.Clone()              // strong=2
//	s.Drop()                    // strong=1
//	if l := w.Lock(); l.Get() != nil {
//		defer l.Drop()
//		use(l.Get())
//	}
//	c.Drop()                    // payload disposed of, block kept for w
//	w.Drop()                    // block freed
//
// # Control block
//
// The control block carries the strong and weak counters. The weak counter
// holds one extra unit on behalf of all strong owners together, released
// when the strong count reaches zero, so the block is freed by whoever
// brings the weak counter to zero, exactly once, whichever kind of handle
// goes last. Lock increments the strong count with a compare-and-swap loop
// that never moves it away from zero, so a payload that has been disposed
// of cannot be resurrected by a racing Lock.
//
// # Deleters
//
// Payloads are disposed of by a Deleter. DefaultDeleter calls Destroy
// (apis.Destroyer) or Close (io.Closer) when the payload implements them.
// Errors from a Shared payload's deleter have no caller to return to; they
// are handed to the active apis.Observer.
//
// # Process-wide settings
//
// Config, Observer, Tracker, Resolver and Builder live in an immutable
// snapshot published through an atomic pointer. Readers never lock; writers
// (SetConfig, SetObserver, SetTracker, SetResolver, SetBuilder, SetAll)
// serialize on a build mutex and publish a new snapshot. Each control block
// captures the snapshot once at allocation, so a block always reports to the
// observer and tracker that were active when it was created.
//
// SetTracker and SetResolver pin their layer: SetConfig and SetBuilder only
// rebuild unpinned layers through the active Builder. UnpinTracker and
// UnpinResolver release a pin.
//
// # Diagnostics
//
// With Config.TrackBlocks set, every live control block is recorded in the
// active apis.Tracker; LiveBlocks lists them, which makes leaks visible in
// tests and debug endpoints. Entries are named by the Resolver: a payload
// implementing apis.Namer names itself, anything else is named after its
// nearest named type ("pkg.Type").
//
// Ready-made observers live in the observer (logging, fan-out) and metrics
// (Prometheus) packages. Package reclaim defers disposal to an owner
// goroutine.
//
// # Concurrency
//
// Counters are the only synchronized state. Distinct handles sharing one
// payload may be used from different goroutines; a single handle must not
// be mutated concurrently. arc never synchronizes access to the payload
// itself. No operation blocks.
package arc
