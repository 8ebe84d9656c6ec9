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
	"sync"

	"golang.org/x/sync/errgroup"
)

// AsyncSpinner runs a Queue's callbacks on a fixed number of goroutines.
type AsyncSpinner struct {
	q *Queue
	n int

	mu     sync.Mutex
	group  *errgroup.Group
	cancel context.CancelFunc
}

var _ Spinner = (*AsyncSpinner)(nil)

// Workers reports the number of goroutines the spinner runs.
func (s *AsyncSpinner) Workers() int { return s.n }

// Start launches the workers. Calls after the first are no-ops.
func (s *AsyncSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.group != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.n; i++ {
		g.Go(func() error {
			s.q.work(ctx)
			return nil
		})
	}
	s.group, s.cancel = g, cancel
}

// Stop halts the workers and waits for in-flight callbacks to return. It is
// safe to call Stop on a spinner that was never started.
func (s *AsyncSpinner) Stop() {
	s.mu.Lock()
	g, cancel := s.group, s.cancel
	s.mu.Unlock()

	if g == nil {
		return
	}
	cancel()
	_ = g.Wait()
}
