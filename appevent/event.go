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

package appevent

import "os"

// Event defines an event emitted by a Runner.
type Event interface {
	event() // Only appevent can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*InitFailed) event()        {}
func (*StartFailed) event()       {}
func (*Dispatching) event()       {}
func (*FlagsExported) event()     {}
func (*SignalReceived) event()    {}
func (*ShutdownRequested) event() {}
func (*Stopping) event()          {}
func (*Exited) event()            {}

// InitFailed is emitted when the application's Init returns an error.
type InitFailed struct {
	// Name is the name of the application.
	Name string
	Err  error
}

// StartFailed is emitted when the application's Start returns an error.
type StartFailed struct {
	Name string
	Err  error
}

// Dispatching is emitted right before the Runner hands control to the
// dispatch runtime.
type Dispatching struct {
	Name string

	// Workers is the number of goroutines running callbacks. A value of 1
	// means callbacks run on the Runner's own goroutine.
	Workers int
}

// FlagsExported is emitted after the flag snapshot has been written.
type FlagsExported struct {
	Path  string
	Count int
	// Err is set if writing or closing the file failed part way.
	Err error
}

// SignalReceived is emitted for every signal delivered to the Runner,
// including signals it ignores.
type SignalReceived struct{ Signal os.Signal }

// ShutdownRequested is emitted once, when the shutdown latch is set.
type ShutdownRequested struct {
	// Signal is nil if the shutdown was requested programmatically.
	Signal os.Signal
}

// Stopping is emitted before the application's Stop is called.
type Stopping struct{ Name string }

// Exited is emitted after a full lifecycle completes.
type Exited struct{ Name string }
