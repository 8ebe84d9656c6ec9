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
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go.uber.org/appbase"
	"go.uber.org/appbase/apptest"
)

type lifecycleContext struct {
	dir     string
	app     *apptest.App
	rt      *apptest.Runtime
	flags   *pflag.FlagSet
	threads int

	runner  *appbase.Runner
	exit    <-chan int
	code    int
	exited  bool
	running chan struct{}
}

func (c *lifecycleContext) reset() error {
	dir, err := os.MkdirTemp("", "appbase-bdd")
	if err != nil {
		return err
	}
	fs := pflag.NewFlagSet("bdd", pflag.ContinueOnError)
	fs.SortFlags = false

	*c = lifecycleContext{
		dir:     dir,
		app:     &apptest.App{},
		rt:      apptest.NewRuntime(),
		flags:   fs,
		threads: 1,
		running: make(chan struct{}),
	}
	return nil
}

func (c *lifecycleContext) anApplicationNamed(name string) error {
	c.app.AppName = name
	return nil
}

func (c *lifecycleContext) initFailsWith(msg string) error {
	c.app.InitErr = errors.New(msg)
	return nil
}

func (c *lifecycleContext) startFailsWith(msg string) error {
	c.app.StartErr = errors.New(msg)
	return nil
}

func (c *lifecycleContext) callbackThreads(n int) error {
	c.threads = n
	return nil
}

func (c *lifecycleContext) theFlags(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		name, typ, def, current, usage := row.Cells[0].Value, row.Cells[1].Value,
			row.Cells[2].Value, row.Cells[3].Value, row.Cells[4].Value

		switch typ {
		case "float64":
			v, err := strconv.ParseFloat(def, 64)
			if err != nil {
				return err
			}
			c.flags.Float64(name, v, usage)
		case "bool":
			v, err := strconv.ParseBool(def)
			if err != nil {
				return err
			}
			c.flags.Bool(name, v, usage)
		default:
			c.flags.String(name, def, usage)
		}
		if err := c.flags.Set(name, current); err != nil {
			return err
		}
	}
	return nil
}

func (c *lifecycleContext) start() {
	c.runner = appbase.New(c.app,
		appbase.Logger(zap.NewNop()),
		appbase.Runtime(c.rt),
		appbase.LogDir(c.dir),
		appbase.Flags(c.flags),
		appbase.CallbackThreads(c.threads),
		appbase.WithoutSignalRelay(),
	)
	running := c.running
	c.rt.OnSpin = func() { close(running) }

	exit := make(chan int, 1)
	go func() { exit <- c.runner.Run() }()
	c.exit = exit
}

func (c *lifecycleContext) await() error {
	if c.exited {
		return nil
	}
	select {
	case c.code = <-c.exit:
		c.exited = true
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("application did not exit")
	}
}

func (c *lifecycleContext) theApplicationRunsToCompletion() error {
	c.start()
	return c.await()
}

func (c *lifecycleContext) theApplicationIsRunning() error {
	c.start()
	select {
	case <-c.running:
		return nil
	case code := <-c.exit:
		c.code, c.exited = code, true
		return errors.Errorf("application exited with %d before dispatching", code)
	case <-time.After(5 * time.Second):
		return errors.New("application is not dispatching")
	}
}

func (c *lifecycleContext) theApplicationRunsUntilInterrupted() error {
	if err := c.theApplicationIsRunning(); err != nil {
		return err
	}
	return c.anInterruptSignalIsDelivered()
}

func (c *lifecycleContext) anInterruptSignalIsDelivered() error {
	c.runner.HandleSignal(os.Interrupt)
	return nil
}

func (c *lifecycleContext) aTerminateSignalIsDelivered() error {
	c.runner.HandleSignal(syscall.SIGTERM)
	return nil
}

func (c *lifecycleContext) theExitCodeIs(want int) error {
	if err := c.await(); err != nil {
		return err
	}
	if c.code != want {
		return errors.Errorf("exit code %d, want %d", c.code, want)
	}
	return nil
}

func (c *lifecycleContext) theLifecycleCallsAre(want string) error {
	if err := c.await(); err != nil {
		return err
	}
	got := strings.Join(c.app.Calls(), ", ")
	if got != want {
		return errors.Errorf("lifecycle calls %q, want %q", got, want)
	}
	return nil
}

func (c *lifecycleContext) noFlagFileIsWritten() error {
	if _, err := os.Stat(c.runner.FlagsPath()); !os.IsNotExist(err) {
		return errors.Errorf("flag file %s exists", c.runner.FlagsPath())
	}
	return nil
}

func (c *lifecycleContext) theDispatchRuntimeReceivedShutdownRequests(want int) error {
	if got := c.rt.Shutdowns(); got != want {
		return errors.Errorf("%d shutdown requests, want %d", got, want)
	}
	return nil
}

func (c *lifecycleContext) shutdownHasNotBeenRequested() error {
	if c.runner.IsShutdownRequested() || c.rt.Shutdowns() != 0 {
		return errors.New("shutdown was requested")
	}
	return nil
}

func (c *lifecycleContext) theFlagFileContains(want *godog.DocString) error {
	if err := c.await(); err != nil {
		return err
	}
	got, err := os.ReadFile(c.runner.FlagsPath())
	if err != nil {
		return err
	}
	// Doc strings drop the final newline.
	if string(got) != want.Content+"\n" {
		return fmt.Errorf("flag file:\n%s\nwant:\n%s", got, want.Content)
	}
	return nil
}

func initializeLifecycleScenario(ctx *godog.ScenarioContext) {
	c := &lifecycleContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if c.runner != nil && !c.exited {
			c.runner.RequestShutdown()
			_ = c.await()
		}
		return ctx, os.RemoveAll(c.dir)
	})

	ctx.Step(`^an application named "([^"]*)"$`, c.anApplicationNamed)
	ctx.Step(`^Init fails with "([^"]*)"$`, c.initFailsWith)
	ctx.Step(`^Start fails with "([^"]*)"$`, c.startFailsWith)
	ctx.Step(`^(\d+) callback threads$`, c.callbackThreads)
	ctx.Step(`^the flags:$`, c.theFlags)

	ctx.Step(`^the application runs to completion$`, c.theApplicationRunsToCompletion)
	ctx.Step(`^the application is running$`, c.theApplicationIsRunning)
	ctx.Step(`^the application runs until interrupted$`, c.theApplicationRunsUntilInterrupted)
	ctx.Step(`^an interrupt signal is delivered$`, c.anInterruptSignalIsDelivered)
	ctx.Step(`^a terminate signal is delivered$`, c.aTerminateSignalIsDelivered)

	ctx.Step(`^the exit code is (-?\d+)$`, c.theExitCodeIs)
	ctx.Step(`^the lifecycle calls are "([^"]*)"$`, c.theLifecycleCallsAre)
	ctx.Step(`^no flag file is written$`, c.noFlagFileIsWritten)
	ctx.Step(`^the dispatch runtime received (\d+) shutdown requests?$`, c.theDispatchRuntimeReceivedShutdownRequests)
	ctx.Step(`^shutdown has not been requested$`, c.shutdownHasNotBeenRequested)
	ctx.Step(`^the flag file contains:$`, c.theFlagFileContains)
}

func TestLifecycleFeature(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeLifecycleScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/lifecycle.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
