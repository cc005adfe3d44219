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

// Config carries read-only knobs for control blocks and diagnostics.
// It is passed by value and should be treated as immutable by implementations.
//
// A control block captures the Config active at its allocation; changing the
// process-wide Config later never affects blocks that already exist.
type Config struct {
	// CheckCounts makes counter corruption fatal: a strong or weak count that
	// would go below zero, or a strong count incremented from zero, panics.
	CheckCounts bool

	// TrackBlocks registers every live control block in the active Tracker
	// so leaks can be listed with Tracker.Entries.
	TrackBlocks bool

	// IncludeBuiltins controls whether builtin/no-package named payload types
	// (e.g., "int", "string") get a name. If false, such cases yield "".
	IncludeBuiltins bool

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when looking for the nearest named payload type.
	MaxUnwrap int

	// MapPreferElem controls which side of map[K]V is considered “primary”
	// when searching for a nearest named inner type. If true, prefer V; otherwise K.
	MapPreferElem bool
}
