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

package reflect

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/arc/apis"
	"dirpx.dev/arc/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrNotNamed is returned when no named type sits within MaxUnwrap
	// levels of containers (anonymous struct, func, deep pointer chain).
	ErrNotNamed = errors.New("reflect: no named type within unwrap depth")
)

// NearestNamed peels pointers, slices, arrays and channels off t until it
// reaches a named type. Maps yield their preferred side (element when
// MapPreferElem, key otherwise), then the other side, and unwrap the
// element when neither is named. At most cfg.MaxUnwrap levels are peeled;
// a non-positive value selects config.DefaultMaxUnwrap.
func NearestNamed(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}

	for ; depth > 0; depth-- {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			if n := mapSide(t, cfg.MapPreferElem); n != nil {
				return n, nil
			}
			t = t.Elem()
		default:
			if t.Name() != "" {
				return t, nil
			}
			return nil, errors.Wrapf(ErrNotNamed, "%s", t)
		}
	}

	if t.Name() != "" {
		return t, nil
	}
	return nil, errors.Wrapf(ErrNotNamed, "%s", t)
}

// mapSide returns the first named side of map type m in preference order.
func mapSide(m reflect.Type, preferElem bool) reflect.Type {
	first, second := m.Key(), m.Elem()
	if preferElem {
		first, second = second, first
	}
	if first.Name() != "" {
		return first
	}
	if second.Name() != "" {
		return second
	}
	return nil
}
