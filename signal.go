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

package appbase

import (
	"os"
	"os/signal"

	"go.uber.org/appbase/appevent"
)

// HandleSignal is the Runner's signal handler. Every signal is logged. The
// interrupt signal requests shutdown the first time it arrives; later
// deliveries and other signals change nothing.
func (r *Runner) HandleSignal(sig os.Signal) {
	r.events.LogEvent(&appevent.SignalReceived{Signal: sig})
	if sig != r.interrupt {
		return
	}
	r.requestShutdown(sig)
}

// RequestShutdown asks the dispatch runtime to stop, unblocking Run. It
// reports false if shutdown had already been requested.
func (r *Runner) RequestShutdown() bool {
	return r.requestShutdown(nil)
}

// IsShutdownRequested reports whether the shutdown latch is set.
func (r *Runner) IsShutdownRequested() bool {
	return r.stopping.Load()
}

func (r *Runner) requestShutdown(sig os.Signal) bool {
	if !r.stopping.CompareAndSwap(false, true) {
		return false
	}
	r.events.LogEvent(&appevent.ShutdownRequested{Signal: sig})
	r.runtime.Shutdown()
	return true
}

// relaySignals forwards OS signals to HandleSignal until the returned
// function is called.
func (r *Runner) relaySignals() (stop func()) {
	sigs := append([]os.Signal{r.interrupt}, r.observed...)
	c := make(chan os.Signal, len(sigs))
	signal.Notify(c, sigs...)

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			select {
			case sig := <-c:
				r.HandleSignal(sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(c)
		close(done)
		<-exited
	}
}
