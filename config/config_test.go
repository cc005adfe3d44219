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

package config_test

import (
	"testing"

	"dirpx.dev/arc/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.CheckCounts != config.DefaultCheckCounts {
		t.Fatalf("CheckCounts = %v, want %v", got.CheckCounts, config.DefaultCheckCounts)
	}
	if got.TrackBlocks != config.DefaultTrackBlocks {
		t.Fatalf("TrackBlocks = %v, want %v", got.TrackBlocks, config.DefaultTrackBlocks)
	}
	if got.IncludeBuiltins != config.DefaultIncludeBuiltins {
		t.Fatalf("IncludeBuiltins = %v, want %v", got.IncludeBuiltins, config.DefaultIncludeBuiltins)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.MapPreferElem != config.DefaultMapPreferElem {
		t.Fatalf("MapPreferElem = %v, want %v", got.MapPreferElem, config.DefaultMapPreferElem)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestBoolOptions(t *testing.T) {
	cases := []struct {
		name string
		opt  func(bool) config.Option
		get  func(c config.Option) bool
	}{
		{"CheckCounts", config.WithCheckCounts, func(o config.Option) bool { return config.NewConfig(o).CheckCounts }},
		{"TrackBlocks", config.WithTrackBlocks, func(o config.Option) bool { return config.NewConfig(o).TrackBlocks }},
		{"IncludeBuiltins", config.WithIncludeBuiltins, func(o config.Option) bool { return config.NewConfig(o).IncludeBuiltins }},
		{"MapPreferElem", config.WithMapPreferElem, func(o config.Option) bool { return config.NewConfig(o).MapPreferElem }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, want := range []bool{false, true} {
				if got := tc.get(tc.opt(want)); got != want {
					t.Fatalf("%s = %v, want %v", tc.name, got, want)
				}
			}
		})
	}
}

func TestWithMaxUnwrap_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}
}

func TestWithMaxUnwrap_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(-1))
	if c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", c.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithCheckCounts(true),
		config.WithCheckCounts(false),
		config.WithTrackBlocks(false),
		config.WithTrackBlocks(true),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
	)

	if c.CheckCounts {
		t.Errorf("CheckCounts = %v, want false (last option wins)", c.CheckCounts)
	}
	if !c.TrackBlocks {
		t.Errorf("TrackBlocks = %v, want true (last option wins)", c.TrackBlocks)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
}

func TestNewConfig_MaxUnwrapZeroAllowed(t *testing.T) {
	// Only negative values are reset; normalization treats zero as "use default".
	c := config.NewConfig(config.WithMaxUnwrap(0))
	if c.MaxUnwrap != 0 {
		t.Fatalf("MaxUnwrap = %d, want 0", c.MaxUnwrap)
	}
}
