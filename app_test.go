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

package appbase_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go.uber.org/appbase"
	"go.uber.org/appbase/appevent"
	"go.uber.org/appbase/apptest"
	"go.uber.org/appbase/dispatch"
)

// newRunner builds a Runner isolated from process-wide state: its own flag
// set, a temporary log directory and no OS signal relay.
func newRunner(t *testing.T, app appbase.Application, rt dispatch.Runtime, opts ...appbase.Option) *appbase.Runner {
	t.Helper()

	fs := pflag.NewFlagSet(t.Name(), pflag.ContinueOnError)
	fs.SortFlags = false

	base := []appbase.Option{
		appbase.Logger(apptest.NewLogger(t)),
		appbase.Runtime(rt),
		appbase.LogDir(t.TempDir()),
		appbase.Flags(fs),
		appbase.WithoutSignalRelay(),
	}
	return appbase.New(app, append(base, opts...)...)
}

func runAsync(r *appbase.Runner) <-chan int {
	c := make(chan int, 1)
	go func() { c <- r.Run() }()
	return c
}

func awaitExit(t *testing.T, c <-chan int) int {
	t.Helper()

	select {
	case code := <-c:
		return code
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return 0
	}
}

func TestRunInitFailure(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	rt := apptest.NewRuntime()
	app := &apptest.App{AppName: "planner", InitErr: errors.New("no map")}
	r := newRunner(t, app, rt,
		appbase.CallbackThreads(4),
		appbase.EventLogger(&appevent.ZapLogger{Logger: zap.New(core)}),
	)

	assert.Equal(t, appbase.ExitInitFailed, r.Run())
	assert.Equal(t, []string{apptest.Init}, app.Calls())
	assert.Equal(t, appbase.Failed, r.State())
	assert.Empty(t, rt.Spinners(), "spinner requested before Init succeeded")
	assert.Zero(t, rt.Spins())
	assert.NoFileExists(t, r.FlagsPath())

	entries := logs.FilterMessage("init failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]interface{}{
		"app":   "planner",
		"error": "no map",
	}, entries[0].ContextMap())
}

func TestRunStartFailure(t *testing.T) {
	t.Parallel()

	t.Run("SingleThreaded", func(t *testing.T) {
		t.Parallel()

		core, logs := observer.New(zap.DebugLevel)
		rt := apptest.NewRuntime()
		app := &apptest.App{AppName: "planner", StartErr: errors.New("no route")}
		r := newRunner(t, app, rt,
			appbase.EventLogger(&appevent.ZapLogger{Logger: zap.New(core)}),
		)

		assert.Equal(t, appbase.ExitStartFailed, r.Run())
		assert.Equal(t, []string{apptest.Init, apptest.Start}, app.Calls())
		assert.Equal(t, appbase.Failed, r.State())
		assert.Zero(t, rt.Spins())
		assert.NoFileExists(t, r.FlagsPath())
		assert.Equal(t, 1, logs.FilterMessage("start failed").Len())
	})

	t.Run("ReleasesSpinner", func(t *testing.T) {
		t.Parallel()

		rt := apptest.NewRuntime()
		app := &apptest.App{StartErr: errors.New("no route")}
		r := newRunner(t, app, rt, appbase.CallbackThreads(4))

		assert.Equal(t, appbase.ExitStartFailed, r.Run())
		assert.Zero(t, app.Count(apptest.Stop))

		spinners := rt.Spinners()
		require.Len(t, spinners, 1)
		assert.Equal(t, 4, spinners[0].Workers)
		assert.Zero(t, spinners[0].Started(), "spinner started after Start failed")
		assert.Equal(t, 1, spinners[0].Stopped(), "spinner not released")
	})
}

func TestRunSingleThreaded(t *testing.T) {
	t.Parallel()

	rt := apptest.NewRuntime()
	app := &apptest.App{AppName: "planner"}
	r := newRunner(t, app, rt)

	var exportedBeforeSpin bool
	rt.OnSpin = func() {
		_, err := os.Stat(r.FlagsPath())
		exportedBeforeSpin = err == nil
		assert.Equal(t, appbase.Running, r.State())
		r.HandleSignal(os.Interrupt)
	}

	assert.Equal(t, appbase.ExitOK, r.Run())
	assert.True(t, exportedBeforeSpin, "flags were not exported before dispatching")
	assert.Equal(t, []string{apptest.Init, apptest.Start, apptest.Stop}, app.Calls())
	assert.Equal(t, 1, rt.Spins())
	assert.Empty(t, rt.Spinners())
	assert.Equal(t, 1, rt.Shutdowns())
	assert.Equal(t, appbase.Stopped, r.State())
}

func TestRunMultiThreaded(t *testing.T) {
	t.Parallel()

	rt := apptest.NewRuntime()
	app := &apptest.App{}
	r := newRunner(t, app, rt, appbase.CallbackThreads(3))

	spinning := make(chan struct{})
	rt.OnSpin = func() { close(spinning) }

	exit := runAsync(r)
	<-spinning
	assert.Zero(t, app.Count(apptest.Stop), "Stop called before shutdown")

	r.HandleSignal(os.Interrupt)
	assert.Equal(t, appbase.ExitOK, awaitExit(t, exit))

	assert.Equal(t, 1, app.Count(apptest.Stop))
	assert.Zero(t, rt.Spins(), "single-threaded loop used with 3 workers")

	spinners := rt.Spinners()
	require.Len(t, spinners, 1)
	assert.Equal(t, 3, spinners[0].Workers)
	assert.Equal(t, 1, spinners[0].Started())
	assert.Equal(t, 1, spinners[0].Stopped())
}

func TestRunEvents(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	rt := apptest.NewRuntime()
	app := &apptest.App{AppName: "planner"}
	r := newRunner(t, app, rt,
		appbase.EventLogger(&appevent.ZapLogger{Logger: zap.New(core)}),
	)
	rt.OnSpin = func() { r.HandleSignal(os.Interrupt) }

	require.Equal(t, appbase.ExitOK, r.Run())

	var messages []string
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{
		"flags exported",
		"dispatching",
		"received signal",
		"shutdown requested",
		"stopping",
		"exited",
	}, messages)
}

func TestRunWithDispatchQueue(t *testing.T) {
	t.Parallel()

	for _, threads := range []int{1, 4} {
		threads := threads
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			t.Parallel()

			q, err := dispatch.New(dispatch.WithLogger(zap.NewNop()))
			require.NoError(t, err)

			var (
				r     *appbase.Runner
				count atomic.Int32
			)
			app := &apptest.App{
				OnStart: func() {
					for i := 0; i < 10; i++ {
						assert.NoError(t, q.Post(func() {
							if count.Add(1) == 10 {
								r.RequestShutdown()
							}
						}))
					}
				},
			}
			r = newRunner(t, app, q, appbase.CallbackThreads(threads))

			assert.Equal(t, appbase.ExitOK, awaitExit(t, runAsync(r)))
			assert.Equal(t, int32(10), count.Load())
			assert.Equal(t, 1, app.Count(apptest.Stop))
			assert.True(t, q.IsShutdown())
		})
	}
}

func TestRunRelaysSignals(t *testing.T) {
	t.Parallel()

	// The relay goroutine must be gone once Run returns; goleak checks.
	rt := apptest.NewRuntime()
	app := &apptest.App{}
	r := appbase.New(app,
		appbase.Logger(apptest.NewLogger(t)),
		appbase.Runtime(rt),
		appbase.LogDir(t.TempDir()),
		appbase.Flags(pflag.NewFlagSet("relay", pflag.ContinueOnError)),
	)
	rt.OnSpin = func() { assert.True(t, r.RequestShutdown()) }

	assert.Equal(t, appbase.ExitOK, r.Run())
}

func TestSetCallbackThreadNumber(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()

		r := newRunner(t, &apptest.App{}, apptest.NewRuntime())
		assert.Equal(t, 1, r.CallbackThreadNumber(), "default")
		for _, n := range []int{1, 2, 8, 64} {
			r.SetCallbackThreadNumber(n)
			assert.Equal(t, n, r.CallbackThreadNumber())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{0, -1} {
			r := newRunner(t, &apptest.App{}, apptest.NewRuntime())
			assert.Panics(t, func() { r.SetCallbackThreadNumber(n) }, "n=%d", n)
			assert.Equal(t, 1, r.CallbackThreadNumber(), "value changed after fatal error")
		}
	})

	t.Run("Option", func(t *testing.T) {
		t.Parallel()

		r := newRunner(t, &apptest.App{}, apptest.NewRuntime(), appbase.CallbackThreads(5))
		assert.Equal(t, 5, r.CallbackThreadNumber())

		assert.Panics(t, func() {
			newRunner(t, &apptest.App{}, apptest.NewRuntime(), appbase.CallbackThreads(0))
		})
	})
}

func TestRunnerDefaults(t *testing.T) {
	t.Parallel()

	r := appbase.New(&apptest.App{AppName: "planner"}, appbase.Logger(zap.NewNop()))
	assert.Equal(t, "planner", r.Name())
	assert.Equal(t, appbase.NotStarted, r.State())
	assert.Equal(t, 1, r.CallbackThreadNumber())
	assert.False(t, r.IsShutdownRequested())
	assert.Equal(t, filepath.Join(r.LogDir(), "planner.flags"), r.FlagsPath())
}
