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
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ErrShutdown is returned by Post once the Queue has been shut down.
var ErrShutdown = errors.New("dispatch queue is shut down")

// Callback is a unit of work run by a Queue.
type Callback func()

// Queue is the default Runtime. It is safe for concurrent use.
type Queue struct {
	log        *zap.Logger
	capacity   int
	registerer prometheus.Registerer

	callbacks chan Callback
	done      chan struct{}
	once      sync.Once
	metrics   *metrics
}

var _ Runtime = (*Queue)(nil)

// New builds a Queue. It returns an error only if metrics could not be
// registered.
func New(opts ...Option) (*Queue, error) {
	q := &Queue{
		log:      zap.NewNop(),
		capacity: DefaultCapacity,
		done:     make(chan struct{}),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt.apply(q)
	}
	q.callbacks = make(chan Callback, q.capacity)

	if q.registerer != nil {
		if err := q.metrics.register(q.registerer); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Post enqueues cb, blocking while the buffer is full. It returns
// ErrShutdown if the Queue is shut down before cb is accepted.
func (q *Queue) Post(cb Callback) error {
	if cb == nil {
		return nil
	}
	if q.IsShutdown() {
		return ErrShutdown
	}
	select {
	case q.callbacks <- cb:
		q.metrics.queueDepth.Inc()
		return nil
	case <-q.done:
		return ErrShutdown
	}
}

// Spin runs callbacks on the calling goroutine until Shutdown is called.
func (q *Queue) Spin() {
	q.work(context.Background())
}

// NewAsyncSpinner returns a Spinner running callbacks on n goroutines. n
// below 1 is treated as 1.
func (q *Queue) NewAsyncSpinner(n int) Spinner {
	if n < 1 {
		n = 1
	}
	return &AsyncSpinner{q: q, n: n}
}

// WaitForShutdown blocks until Shutdown is called.
func (q *Queue) WaitForShutdown() {
	<-q.done
}

// Shutdown stops the Queue. Callbacks still buffered are dropped.
func (q *Queue) Shutdown() {
	q.once.Do(func() {
		close(q.done)
	})
}

// IsShutdown reports whether Shutdown has been called.
func (q *Queue) IsShutdown() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

func (q *Queue) work(ctx context.Context) {
	for {
		// Shutdown wins over pending callbacks.
		select {
		case <-q.done:
			return
		case <-ctx.Done():
			return
		default:
		}

		select {
		case <-q.done:
			return
		case <-ctx.Done():
			return
		case cb := <-q.callbacks:
			q.metrics.queueDepth.Dec()
			q.call(cb)
		}
	}
}

func (q *Queue) call(cb Callback) {
	defer func() {
		if r := recover(); r != nil {
			q.metrics.panics.Inc()
			q.log.Error("callback panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	q.metrics.callbacks.Inc()
	cb()
}
