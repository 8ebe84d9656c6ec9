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

	"go.uber.org/appbase"
)

// Lifecycle methods recorded by App.
const (
	Init  = "Init"
	Start = "Start"
	Stop  = "Stop"
)

// App is an appbase.Application that records the order of its lifecycle
// calls. The zero value succeeds at everything and is named "test".
type App struct {
	AppName  string
	InitErr  error
	StartErr error

	// Hooks run inside the matching lifecycle method, before it returns.
	OnInit  func()
	OnStart func()
	OnStop  func()

	mu    sync.Mutex
	calls []string
}

var _ appbase.Application = (*App)(nil)

// Name returns AppName, or "test" if it is empty.
func (a *App) Name() string {
	if a.AppName == "" {
		return "test"
	}
	return a.AppName
}

// Init records the call and returns InitErr.
func (a *App) Init() error {
	a.record(Init, a.OnInit)
	return a.InitErr
}

// Start records the call and returns StartErr.
func (a *App) Start() error {
	a.record(Start, a.OnStart)
	return a.StartErr
}

// Stop records the call.
func (a *App) Stop() {
	a.record(Stop, a.OnStop)
}

// Calls returns the lifecycle methods called so far, in order.
func (a *App) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	calls := make([]string, len(a.calls))
	copy(calls, a.calls)
	return calls
}

// Count returns how many times method was called.
func (a *App) Count(method string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	var n int
	for _, c := range a.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (a *App) record(method string, hook func()) {
	a.mu.Lock()
	a.calls = append(a.calls, method)
	a.mu.Unlock()

	if hook != nil {
		hook()
	}
}
