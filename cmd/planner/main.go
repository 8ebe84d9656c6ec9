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

// Command planner is a small appbase application. It posts a planning
// cycle to its dispatch queue every period until interrupted, and writes
// its flags to <log_dir>/planner.flags once started.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"go.uber.org/appbase"
	"go.uber.org/appbase/dispatch"
)

type config struct {
	MaxSpeed        float64
	Debug           bool
	Period          time.Duration
	CallbackThreads int
	FlagFile        string
}

// exitCode carries a non-zero lifecycle exit code out of cobra.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit code %d", int(c)) }

func newRootCommand() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Run the planner until interrupted",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.FlagFile != "" {
				if err := appbase.LoadFlagFile(cmd.Flags(), cfg.FlagFile); err != nil {
					return err
				}
			}
			code, err := run(cmd.Flags(), &cfg)
			if err != nil {
				return err
			}
			if code != appbase.ExitOK {
				return exitCode(code)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.Float64Var(&cfg.MaxSpeed, "max_speed", 30, "cap speed")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug")
	fs.DurationVar(&cfg.Period, "period", 100*time.Millisecond, "time between planning cycles")
	fs.IntVar(&cfg.CallbackThreads, "callback_threads", 1, "goroutines running dispatch callbacks")
	fs.StringVar(&cfg.FlagFile, "flagfile", "", "YAML file of flag values to load before starting")
	appbase.RegisterFlags(fs)

	return cmd
}

// run assembles the planner and drives it to completion.
func run(fs *pflag.FlagSet, cfg *config) (int, error) {
	c := dig.New()
	for _, ctor := range []interface{}{
		func() *config { return cfg },
		func() *pflag.FlagSet { return fs },
		prometheus.NewRegistry,
		newLogger,
		newQueue,
		newPlanner,
		newRunner,
	} {
		if err := c.Provide(ctor); err != nil {
			return 0, errors.Wrap(err, "provide")
		}
	}

	var code int
	err := c.Invoke(func(r *appbase.Runner, log *zap.Logger, reg *prometheus.Registry) {
		defer log.Sync() //nolint:errcheck
		code = r.Run()
		logMetrics(log, reg)
	})
	return code, err
}

func newLogger(cfg *config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newQueue(log *zap.Logger, reg *prometheus.Registry) (*dispatch.Queue, error) {
	return dispatch.New(dispatch.WithLogger(log), dispatch.WithRegisterer(reg))
}

func newRunner(cfg *config, fs *pflag.FlagSet, log *zap.Logger, q *dispatch.Queue, p *planner) *appbase.Runner {
	return appbase.New(p,
		appbase.Logger(log),
		appbase.Flags(fs),
		appbase.Runtime(q),
		appbase.CallbackThreads(cfg.CallbackThreads),
	)
}

func logMetrics(log *zap.Logger, reg prometheus.Gatherer) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn("gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				log.Info("metric", zap.String("name", mf.GetName()), zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				log.Info("metric", zap.String("name", mf.GetName()), zap.Float64("value", m.GetGauge().GetValue()))
			}
		}
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, "planner:", err)
		os.Exit(1)
	}
}
