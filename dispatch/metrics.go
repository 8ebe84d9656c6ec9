// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package dispatch

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	callbacks  prometheus.Counter
	panics     prometheus.Counter
	queueDepth prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		callbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "appbase",
			Subsystem: "dispatch",
			Name:      "callbacks_total",
			Help:      "Number of callbacks run by the dispatch queue.",
		}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "appbase",
			Subsystem: "dispatch",
			Name:      "callback_panics_total",
			Help:      "Number of callbacks that panicked.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "appbase",
			Subsystem: "dispatch",
			Name:      "queue_depth",
			Help:      "Number of callbacks waiting to run.",
		}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.callbacks, m.panics, m.queueDepth} {
		if err := reg.Register(c); err != nil {
			return errors.Wrap(err, "register dispatch metrics")
		}
	}
	return nil
}
