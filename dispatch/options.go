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
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultCapacity is the number of callbacks a Queue buffers before Post
// blocks.
const DefaultCapacity = 256

// Option configures a Queue.
type Option interface {
	apply(*Queue)
}

type optionFunc func(*Queue)

func (f optionFunc) apply(q *Queue) { f(q) }

// WithLogger sets the logger used to report panicking callbacks.
func WithLogger(log *zap.Logger) Option {
	return optionFunc(func(q *Queue) {
		q.log = log
	})
}

// WithCapacity sets the size of the callback buffer. Values below 1 are
// ignored.
func WithCapacity(n int) Option {
	return optionFunc(func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	})
}

// WithRegisterer registers the Queue's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return optionFunc(func(q *Queue) {
		q.registerer = reg
	})
}
