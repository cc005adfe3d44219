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

// Observer receives lifecycle notifications from control blocks.
//
// Hooks run synchronously on the goroutine that caused the transition, so
// implementations must be cheap, non-blocking and safe for concurrent use.
// They must not call back into the handle that triggered them.
type Observer interface {
	// BlockAllocated is called once when a Shared handle allocates a block.
	BlockAllocated(e Entry)
	// PayloadDisposed is called once when the strong count reaches zero and
	// the payload's deleter has run. err is the deleter's error, if any.
	PayloadDisposed(e Entry, err error)
	// BlockFreed is called once when both counts have reached zero.
	BlockFreed(e Entry)
	// LockFailed is called when Weak.Lock finds the payload already gone.
	LockFailed(e Entry)
}
