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

// Package reclaim defers payload disposal to an owner goroutine.
//
// Some payloads must be torn down on a particular goroutine (a locked OS
// thread owning a C context, an event loop owning a socket). Wrapping their
// deleter with Deleter makes the last Drop enqueue the disposal instead of
// running it; the owner runs queued disposals with Drain.
package reclaim

import (
	"context"
	"sync"

	"github.com/eapache/queue"
	"github.com/pkg/errors"

	"dirpx.dev/arc"
)

// Queue is a FIFO of pending disposals, safe for concurrent use.
type Queue struct {
	mu sync.Mutex
	q  *queue.Queue
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{q: queue.New()}
}

// Len returns the number of pending disposals.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.Length()
}

func (q *Queue) push(fn func() error) {
	q.mu.Lock()
	q.q.Add(fn)
	q.mu.Unlock()
}

func (q *Queue) pop() (func() error, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.q.Length() == 0 {
		return nil, false
	}
	return q.q.Remove().(func() error), true
}

// Drain runs pending disposals in the order they were queued on the calling
// goroutine, until the queue is empty or ctx is done. Disposals queued
// while draining are run too. It returns how many ran; the error is
// ctx.Err() if draining stopped early, otherwise the first deleter error.
func (q *Queue) Drain(ctx context.Context) (int, error) {
	var (
		n     int
		first error
	)
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		fn, ok := q.pop()
		if !ok {
			return n, first
		}
		n++
		if err := fn(); err != nil && first == nil {
			first = errors.Wrap(err, "reclaim: deferred dispose")
		}
	}
}

// Deleter wraps d so that disposing of a payload enqueues d on q instead of
// running it. A nil d selects arc.DefaultDeleter. The wrapped deleter always
// succeeds; d's error surfaces from Drain.
func Deleter[T any](q *Queue, d arc.Deleter[T]) arc.Deleter[T] {
	if d == nil {
		d = arc.DefaultDeleter[T]
	}
	return func(p *T) error {
		q.push(func() error { return d(p) })
		return nil
	}
}
