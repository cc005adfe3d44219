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

// Package observer provides ready-made apis.Observer implementations.
package observer

import (
	"github.com/toolkits/pkg/logger"

	"dirpx.dev/arc/apis"
)

// Nop ignores every notification. Embed it to implement only some hooks.
type Nop struct{}

var _ apis.Observer = Nop{}

func (Nop) BlockAllocated(apis.Entry)         {}
func (Nop) PayloadDisposed(apis.Entry, error) {}
func (Nop) BlockFreed(apis.Entry)             {}
func (Nop) LockFailed(apis.Entry)             {}

// Multi returns an observer that forwards every notification to each of obs
// in order. Nil observers are skipped; with none left it returns Nop.
func Multi(obs ...apis.Observer) apis.Observer {
	out := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return Nop{}
	case 1:
		return out[0]
	}
	return out
}

type multi []apis.Observer

func (m multi) BlockAllocated(e apis.Entry) {
	for _, o := range m {
		o.BlockAllocated(e)
	}
}

func (m multi) PayloadDisposed(e apis.Entry, err error) {
	for _, o := range m {
		o.PayloadDisposed(e, err)
	}
}

func (m multi) BlockFreed(e apis.Entry) {
	for _, o := range m {
		o.BlockFreed(e)
	}
}

func (m multi) LockFailed(e apis.Entry) {
	for _, o := range m {
		o.LockFailed(e)
	}
}

// Logger writes block lifecycle events to the toolkits logger: allocation,
// disposal and free at debug level, lock failures as warnings and deleter
// failures as errors.
type Logger struct {
	// Lifecycle enables the debug-level lifecycle lines. Failures are
	// always logged.
	Lifecycle bool
}

var _ apis.Observer = Logger{}

// NewLogger returns a Logger that logs failures only.
func NewLogger() Logger {
	return Logger{}
}

func (l Logger) BlockAllocated(e apis.Entry) {
	if l.Lifecycle {
		logger.Debugf("arc: %s allocated", e)
	}
}

func (l Logger) PayloadDisposed(e apis.Entry, err error) {
	if err != nil {
		logger.Errorf("arc: %s dispose failed: %v", e, err)
		return
	}
	if l.Lifecycle {
		logger.Debugf("arc: %s disposed", e)
	}
}

func (l Logger) BlockFreed(e apis.Entry) {
	if l.Lifecycle {
		logger.Debugf("arc: %s freed", e)
	}
}

func (Logger) LockFailed(e apis.Entry) {
	logger.Warningf("arc: %s lock failed, payload already disposed", e)
}
