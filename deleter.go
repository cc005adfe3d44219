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
	"io"

	"dirpx.dev/arc/apis"
)

// Deleter disposes of a payload once its last owner lets go.
// It is never called with a nil pointer.
type Deleter[T any] func(p *T) error

// DefaultDeleter calls Destroy if the payload implements apis.Destroyer,
// otherwise Close if it implements io.Closer, otherwise nothing: the memory
// itself is left to the garbage collector.
//
// Both *T and T are checked, so Shared[*os.File] closes the file.
func DefaultDeleter[T any](p *T) error {
	if ok, err := teardown(p); ok {
		return err
	}
	_, err := teardown(*p)
	return err
}

func teardown(v any) (bool, error) {
	switch d := v.(type) {
	case apis.Destroyer:
		d.Destroy()
		return true, nil
	case io.Closer:
		return true, d.Close()
	}
	return false, nil
}
