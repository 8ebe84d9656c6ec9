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

// Runtime is the event loop a Runner delegates to.
type Runtime interface {
	// Spin runs callbacks on the calling goroutine until Shutdown is called.
	Spin()

	// NewAsyncSpinner returns a Spinner that will run callbacks on n
	// goroutines once started.
	NewAsyncSpinner(n int) Spinner

	// WaitForShutdown blocks until Shutdown is called.
	WaitForShutdown()

	// Shutdown asks the runtime to stop. Calling it more than once has no
	// additional effect.
	Shutdown()
}

// Spinner runs callbacks on a pool of goroutines.
type Spinner interface {
	// Start launches the workers and returns immediately.
	Start()

	// Stop halts the workers and waits for them to return.
	Stop()
}
