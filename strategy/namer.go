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

package strategy

import (
	"reflect"

	"dirpx.dev/arc/apis"
)

// NewNamerStrategy creates an apis.Strategy that asks payloads implementing
// apis.Namer for their name.
func NewNamerStrategy() apis.Strategy {
	return namerStrategy{}
}

// namerStrategy is the zero-reflection fast path for values.
type namerStrategy struct{}

var _ apis.Strategy = namerStrategy{}

var namerType = reflect.TypeFor[apis.Namer]()

// TryResolve returns v.EntityName() if v implements apis.Namer.
// A typed nil pointer is named through its type.
func (s namerStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	n, ok := v.(apis.Namer)
	if !ok {
		return "", false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return s.TryResolveType(rv.Type(), cfg)
	}
	return n.EntityName(), true
}

// TryResolveType handles types implementing apis.Namer by asking a zero
// instance, which is valid because EntityName must not depend on instance
// state. Pointer types are given a pointer to a zero element rather than nil.
func (namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || t.Kind() == reflect.Interface || !t.Implements(namerType) {
		return "", false
	}
	var zero reflect.Value
	if t.Kind() == reflect.Pointer {
		zero = reflect.New(t.Elem())
	} else {
		zero = reflect.New(t).Elem()
	}
	return zero.Interface().(apis.Namer).EntityName(), true
}
