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

package builder

import (
	"dirpx.dev/arc/apis"
	"dirpx.dev/arc/resolver"
	"dirpx.dev/arc/tracker"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildTracker keeps the previous tracker when there is one. Live blocks
// untrack themselves from the tracker they registered with, so handing out
// a fresh tracker here would strand their entries.
func (b *builder) BuildTracker(_ apis.Config, prev apis.Tracker) apis.Tracker {
	if prev != nil {
		return prev
	}
	return tracker.New()
}

// BuildResolver builds the default naming chain: apis.Namer first, then
// reflection. Resolvers are stateless, so prev is ignored.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver) apis.Resolver {
	return resolver.Default()
}
