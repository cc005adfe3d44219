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

package arc_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/arc"
)

func TestUnique_Empty(t *testing.T) {
	var u arc.Unique[int]
	assert.Nil(t, u.Get())
	assert.Nil(t, u.Release())
	assert.NoError(t, u.Drop())
}

func TestUnique_MoveTransfersOnce(t *testing.T) {
	r := &resource{}
	u := arc.NewUnique(r)

	m := u.Move()
	assert.Nil(t, u.Get())
	assert.Same(t, r, m.Get())

	require.NoError(t, u.Drop())
	assert.Zero(t, r.destroyed.Load(), "dropping a moved-from handle is a no-op")

	require.NoError(t, m.Drop())
	require.NoError(t, m.Drop())
	assert.EqualValues(t, 1, r.destroyed.Load())
}

func TestUnique_MoveFrom(t *testing.T) {
	old, next := &resource{}, &resource{}
	u := arc.NewUnique(old)
	o := arc.NewUnique(next)

	require.NoError(t, u.MoveFrom(o))
	assert.EqualValues(t, 1, old.destroyed.Load())
	assert.Same(t, next, u.Get())
	assert.Nil(t, o.Get())

	require.NoError(t, u.MoveFrom(u))
	assert.Same(t, next, u.Get())
	assert.Zero(t, next.destroyed.Load())
}

func TestUnique_ResetReleaseSwap(t *testing.T) {
	a, b := &resource{id: 1}, &resource{id: 2}
	u := arc.NewUnique(a)

	require.NoError(t, u.Reset(b))
	assert.EqualValues(t, 1, a.destroyed.Load())
	assert.Same(t, b, u.Get())

	o := arc.MakeUnique(session{id: 3})
	x := arc.NewUnique(b)
	_ = u.Release()
	x.Swap(u)
	assert.Nil(t, x.Get())
	assert.Same(t, b, u.Get())
	assert.Equal(t, 3, o.Value().id)
	assert.Zero(t, b.destroyed.Load())
}

func TestUnique_DeleterError(t *testing.T) {
	boom := errors.New("close failed")
	u := arc.NewUniqueWithDeleter(new(int), func(*int) error { return boom })
	assert.Equal(t, boom, u.Reset(nil))
	assert.NoError(t, u.Drop())
}

func TestUnique_Share(t *testing.T) {
	calls := 0
	u := arc.NewUniqueWithDeleter(new(int), func(*int) error {
		calls++
		return nil
	})
	p := u.Get()

	s := u.Share()
	assert.Nil(t, u.Get())
	assert.Same(t, p, s.Get())
	assert.EqualValues(t, 1, s.UseCount())

	c := s.Clone()
	s.Drop()
	assert.Zero(t, calls)
	c.Drop()
	assert.Equal(t, 1, calls)

	var empty arc.Unique[int]
	assert.Nil(t, empty.Share().Get())
}
