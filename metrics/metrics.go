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

// Package metrics exports control block lifecycle counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/arc/apis"
)

const namespace = "arc"

// Observer is an apis.Observer that counts lifecycle events per payload
// type. Entries without a resolved name are counted under their Go type.
type Observer struct {
	allocated     *prometheus.CounterVec
	freed         *prometheus.CounterVec
	disposed      *prometheus.CounterVec
	disposeErrors *prometheus.CounterVec
	lockFailures  *prometheus.CounterVec
	live          *prometheus.GaugeVec
}

var _ apis.Observer = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg.
// Registration errors (usually a second observer on the same registry)
// are returned.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		allocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_allocated_total",
			Help:      "Number of control blocks allocated.",
		}, []string{"type"}),
		freed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_freed_total",
			Help:      "Number of control blocks freed.",
		}, []string{"type"}),
		disposed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_disposed_total",
			Help:      "Number of payloads disposed of by their deleter.",
		}, []string{"type"}),
		disposeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispose_errors_total",
			Help:      "Number of deleters that returned an error.",
		}, []string{"type"}),
		lockFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lock_failures_total",
			Help:      "Number of weak handle locks that found the payload gone.",
		}, []string{"type"}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_blocks",
			Help:      "Number of control blocks allocated and not yet freed.",
		}, []string{"type"}),
	}

	for _, c := range []prometheus.Collector{
		o.allocated, o.freed, o.disposed, o.disposeErrors, o.lockFailures, o.live,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MustNewObserver is NewObserver that panics on registration errors.
func MustNewObserver(reg prometheus.Registerer) *Observer {
	o, err := NewObserver(reg)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Observer) BlockAllocated(e apis.Entry) {
	t := label(e)
	o.allocated.WithLabelValues(t).Inc()
	o.live.WithLabelValues(t).Inc()
}

func (o *Observer) PayloadDisposed(e apis.Entry, err error) {
	t := label(e)
	o.disposed.WithLabelValues(t).Inc()
	if err != nil {
		o.disposeErrors.WithLabelValues(t).Inc()
	}
}

func (o *Observer) BlockFreed(e apis.Entry) {
	t := label(e)
	o.freed.WithLabelValues(t).Inc()
	o.live.WithLabelValues(t).Dec()
}

func (o *Observer) LockFailed(e apis.Entry) {
	o.lockFailures.WithLabelValues(label(e)).Inc()
}

func label(e apis.Entry) string {
	switch {
	case e.Name != "":
		return e.Name
	case e.Type != nil:
		return e.Type.String()
	}
	return "unknown"
}
