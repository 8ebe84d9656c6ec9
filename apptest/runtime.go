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

package apptest

import (
	"sync"

	"go.uber.org/appbase/dispatch"
)

// Runtime is a dispatch.Runtime that runs no callbacks. Spin and
// WaitForShutdown block until the first Shutdown; every Shutdown call is
// counted.
type Runtime struct {
	// OnSpin runs when Spin is called or an async spinner is started,
	// before blocking.
	OnSpin func()

	once sync.Once
	done chan struct{}

	mu        sync.Mutex
	shutdowns int
	spins     int
	spinners  []*Spinner
}

var _ dispatch.Runtime = (*Runtime)(nil)

// NewRuntime builds a Runtime.
func NewRuntime() *Runtime {
	return &Runtime{done: make(chan struct{})}
}

// Spin blocks until Shutdown.
func (r *Runtime) Spin() {
	r.mu.Lock()
	r.spins++
	r.mu.Unlock()

	if r.OnSpin != nil {
		r.OnSpin()
	}
	<-r.done
}

// NewAsyncSpinner records and returns a Spinner for n workers.
func (r *Runtime) NewAsyncSpinner(n int) dispatch.Spinner {
	s := &Spinner{Workers: n, rt: r}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.spinners = append(r.spinners, s)
	return s
}

// WaitForShutdown blocks until Shutdown.
func (r *Runtime) WaitForShutdown() {
	<-r.done
}

// Shutdown counts the request and unblocks Spin and WaitForShutdown.
func (r *Runtime) Shutdown() {
	r.mu.Lock()
	r.shutdowns++
	r.mu.Unlock()

	r.once.Do(func() { close(r.done) })
}

// Done is closed after the first Shutdown.
func (r *Runtime) Done() <-chan struct{} { return r.done }

// Shutdowns returns the number of Shutdown calls.
func (r *Runtime) Shutdowns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shutdowns
}

// Spins returns the number of Spin calls.
func (r *Runtime) Spins() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spins
}

// Spinners returns the spinners handed out by NewAsyncSpinner.
func (r *Runtime) Spinners() []*Spinner {
	r.mu.Lock()
	defer r.mu.Unlock()

	spinners := make([]*Spinner, len(r.spinners))
	copy(spinners, r.spinners)
	return spinners
}

// Spinner is the dispatch.Spinner returned by Runtime.
type Spinner struct {
	Workers int

	rt *Runtime

	mu      sync.Mutex
	started int
	stopped int
}

// Start records the call.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started++
	s.mu.Unlock()

	if s.rt.OnSpin != nil {
		s.rt.OnSpin()
	}
}

// Stop records the call.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped++
}

// Started returns the number of Start calls.
func (s *Spinner) Started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Stopped returns the number of Stop calls.
func (s *Spinner) Stopped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
