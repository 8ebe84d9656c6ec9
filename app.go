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
	"sync/atomic"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go.uber.org/appbase/appevent"
	"go.uber.org/appbase/dispatch"
)

// Exit codes returned by Runner.Run.
const (
	ExitOK          = 0
	ExitInitFailed  = -1
	ExitStartFailed = -2
)

// Application is implemented by the program a Runner drives.
//
// Init and Start report failure by returning an error. Start must release
// anything it acquired before failing: Stop is only called after a
// successful Start.
type Application interface {
	// Name identifies the application in logs and names its flag file.
	Name() string
	// Init performs one-time setup.
	Init() error
	// Start begins the application's ongoing work, typically by posting
	// callbacks to the dispatch runtime.
	Start() error
	// Stop releases what Init and Start acquired.
	Stop()
}

// Runner drives an Application through Init, Start, the dispatch loop and
// Stop.
type Runner struct {
	app Application

	threads   int
	logDir    string
	flags     *pflag.FlagSet
	log       *zap.Logger
	events    appevent.Logger
	runtime   dispatch.Runtime
	interrupt os.Signal
	observed  []os.Signal
	relay     bool

	state    atomic.Int32
	stopping atomic.Bool
}

// New builds a Runner for app.
func New(app Application, opts ...Option) *Runner {
	r := &Runner{
		app:       app,
		threads:   1,
		flags:     pflag.CommandLine,
		interrupt: os.Interrupt,
		relay:     true,
	}

	var deferred []Option
	for _, opt := range opts {
		// Thread counts are validated against the final logger.
		if _, ok := opt.(callbackThreadsOption); ok {
			deferred = append(deferred, opt)
			continue
		}
		opt.apply(r)
	}

	if r.log == nil {
		log, err := zap.NewProduction()
		if err != nil {
			log = zap.NewNop()
		}
		r.log = log
	}
	if r.events == nil {
		r.events = &appevent.ZapLogger{Logger: r.log}
	}
	if r.runtime == nil {
		// New only fails when registering metrics, and none are registered
		// here.
		q, _ := dispatch.New(dispatch.WithLogger(r.log))
		r.runtime = q
	}

	for _, opt := range deferred {
		opt.apply(r)
	}
	return r
}

// Name returns the application's name.
func (r *Runner) Name() string { return r.app.Name() }

// State reports where the Runner is in its lifecycle.
func (r *Runner) State() State { return State(r.state.Load()) }

func (r *Runner) setState(s State) { r.state.Store(int32(s)) }

// SetCallbackThreadNumber sets the number of goroutines that run dispatch
// callbacks. n must be at least 1; anything less is a fatal error.
func (r *Runner) SetCallbackThreadNumber(n int) {
	if n < 1 {
		r.log.Fatal("callback thread number must be at least 1", zap.Int("threads", n))
		return
	}
	r.threads = n
}

// CallbackThreadNumber returns the configured number of callback goroutines.
func (r *Runner) CallbackThreadNumber() int { return r.threads }

// Run drives the application through its lifecycle and returns a process
// exit code: ExitInitFailed if Init fails, ExitStartFailed if Start fails
// and ExitOK once the application has stopped after a shutdown request.
func (r *Runner) Run() int {
	if r.relay {
		defer r.relaySignals()()
	}

	r.setState(Initializing)
	if err := r.app.Init(); err != nil {
		r.setState(Failed)
		r.events.LogEvent(&appevent.InitFailed{Name: r.Name(), Err: err})
		return ExitInitFailed
	}

	var spinner dispatch.Spinner
	if r.threads > 1 {
		spinner = r.runtime.NewAsyncSpinner(r.threads)
		defer spinner.Stop()
	}

	if err := r.app.Start(); err != nil {
		r.setState(Failed)
		r.events.LogEvent(&appevent.StartFailed{Name: r.Name(), Err: err})
		return ExitStartFailed
	}
	r.setState(Started)

	r.ExportFlags()

	r.setState(Running)
	r.events.LogEvent(&appevent.Dispatching{Name: r.Name(), Workers: r.threads})
	if spinner != nil {
		spinner.Start()
	} else {
		r.runtime.Spin()
	}
	r.runtime.WaitForShutdown()

	r.setState(Stopping)
	r.events.LogEvent(&appevent.Stopping{Name: r.Name()})
	r.app.Stop()

	r.setState(Stopped)
	r.events.LogEvent(&appevent.Exited{Name: r.Name()})
	return ExitOK
}
