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
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/arc/apis"
	uref "dirpx.dev/arc/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that names payloads after
// their nearest named type, as "pkg.Type".
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. Payloads usually arrive as *T,
// so containers are unwrapped first; generic instantiation parameters are
// dropped so every Node[K] shares one name.
type reflectStrategy struct{}

var _ apis.Strategy = reflectStrategy{}

// nameKey covers every config knob that changes the result.
type nameKey struct {
	t              reflect.Type
	includeBuiltin bool
	maxUnwrap      int
	mapPreferElem  bool
}

// names memoizes computed names; a block allocation may hit it on every call.
var names sync.Map // nameKey -> string

// TryResolve names v's dynamic type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return nameOf(reflect.TypeOf(v), cfg), true
}

// TryResolveType names t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return nameOf(t, cfg), true
}

func nameOf(t reflect.Type, cfg apis.Config) string {
	key := nameKey{
		t:              t,
		includeBuiltin: cfg.IncludeBuiltins,
		maxUnwrap:      cfg.MaxUnwrap,
		mapPreferElem:  cfg.MapPreferElem,
	}
	if v, ok := names.Load(key); ok {
		return v.(string)
	}
	name := compute(t, cfg)
	names.Store(key, name)
	return name
}

func compute(t reflect.Type, cfg apis.Config) string {
	base, err := uref.NearestNamed(t, cfg)
	if err != nil {
		return ""
	}
	name := base.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	switch pkg := base.PkgPath(); {
	case pkg != "":
		return path.Base(pkg) + "." + name
	case cfg.IncludeBuiltins:
		return name
	default:
		return ""
	}
}
