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

package control_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/arc/internal/control"
)

func newBlock(check bool) *control.Block {
	b := &control.Block{}
	b.Init(check)
	return b
}

func TestInit(t *testing.T) {
	b := newBlock(true)
	assert.EqualValues(t, 1, b.Strong())
	assert.EqualValues(t, 0, b.Weak())
	assert.NotZero(t, b.ID())

	other := newBlock(true)
	assert.NotEqual(t, b.ID(), other.ID(), "block IDs must be unique")
}

func TestStrongLifecycle(t *testing.T) {
	b := newBlock(true)
	b.Retain()
	b.Retain()
	require.EqualValues(t, 3, b.Strong())

	assert.False(t, b.Release())
	assert.False(t, b.Release())
	assert.True(t, b.Release(), "last release must report zero")
	assert.EqualValues(t, 0, b.Strong())

	// The strong group's unit is the only thing left.
	assert.True(t, b.ReleaseGroup())
}

func TestWeakOutlivesStrong(t *testing.T) {
	b := newBlock(true)
	b.RetainWeak()
	b.RetainWeak()
	require.EqualValues(t, 2, b.Weak())

	require.True(t, b.Release())
	assert.EqualValues(t, 2, b.Weak(), "group unit is hidden while disposing")
	assert.False(t, b.ReleaseGroup(), "weak handles still hold the block")
	assert.EqualValues(t, 2, b.Weak())

	assert.False(t, b.ReleaseWeak())
	assert.True(t, b.ReleaseWeak(), "last weak handle frees the block")
}

func TestTryRetain(t *testing.T) {
	b := newBlock(true)
	b.RetainWeak()

	require.True(t, b.TryRetain())
	assert.EqualValues(t, 2, b.Strong())

	b.Release()
	require.True(t, b.Release())
	assert.False(t, b.TryRetain(), "strong count must never leave zero")
	assert.EqualValues(t, 0, b.Strong())
}

func TestCorruptionPanics(t *testing.T) {
	t.Run("release below zero", func(t *testing.T) {
		b := newBlock(true)
		b.Release()
		assert.Panics(t, func() { b.Release() })
	})
	t.Run("retain from zero", func(t *testing.T) {
		b := newBlock(true)
		b.Release()
		assert.Panics(t, func() { b.Retain() })
	})
	t.Run("weak below zero", func(t *testing.T) {
		b := newBlock(true)
		b.ReleaseWeak()
		assert.Panics(t, func() { b.ReleaseWeak() })
	})
	t.Run("unchecked", func(t *testing.T) {
		b := newBlock(false)
		b.Release()
		assert.NotPanics(t, func() { b.Release() })
		assert.EqualValues(t, 0, b.Strong())
	})
}

// TestConcurrentRetainRelease checks that exactly one releaser observes zero.
func TestConcurrentRetainRelease(t *testing.T) {
	b := newBlock(true)
	workers := runtime.GOMAXPROCS(0) * 4
	const perWorker = 1000

	for i := 0; i < workers*perWorker; i++ {
		b.Retain()
	}

	var zeros atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if b.Release() {
					zeros.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, b.Strong())
	assert.Zero(t, zeros.Load())
	assert.True(t, b.Release())
}

// TestTryRetainRacesFinalRelease hammers TryRetain against the last Release:
// once zero is observed no TryRetain may succeed.
func TestTryRetainRacesFinalRelease(t *testing.T) {
	for round := 0; round < 200; round++ {
		b := newBlock(true)
		b.RetainWeak()

		var dead atomic.Bool
		var resurrected atomic.Int32
		var wg sync.WaitGroup
		lockers := runtime.GOMAXPROCS(0)
		wg.Add(lockers + 1)

		for i := 0; i < lockers; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					if b.TryRetain() {
						if dead.Load() {
							resurrected.Add(1)
						}
						if b.Release() {
							dead.Store(true)
						}
					}
				}
			}()
		}
		go func() {
			defer wg.Done()
			if b.Release() {
				dead.Store(true)
			}
		}()
		wg.Wait()

		require.Zero(t, resurrected.Load(), "round %d resurrected a dead block", round)
		require.True(t, dead.Load())
		require.False(t, b.TryRetain())
	}
}
