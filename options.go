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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go.uber.org/appbase/appevent"
	"go.uber.org/appbase/dispatch"
)

// An Option configures a Runner.
type Option interface {
	fmt.Stringer

	apply(*Runner)
}

// CallbackThreads sets the number of goroutines that run dispatch
// callbacks, as SetCallbackThreadNumber does.
func CallbackThreads(n int) Option {
	return callbackThreadsOption(n)
}

type callbackThreadsOption int

func (o callbackThreadsOption) apply(r *Runner) {
	r.SetCallbackThreadNumber(int(o))
}

func (o callbackThreadsOption) String() string {
	return fmt.Sprintf("appbase.CallbackThreads(%d)", int(o))
}

// LogDir sets the directory the flag snapshot is written to. Without it the
// Runner uses the log_dir flag, falling back to os.TempDir.
func LogDir(dir string) Option {
	return logDirOption(dir)
}

type logDirOption string

func (o logDirOption) apply(r *Runner) { r.logDir = string(o) }

func (o logDirOption) String() string {
	return fmt.Sprintf("appbase.LogDir(%q)", string(o))
}

// Flags sets the registry whose flags are exported. Defaults to
// pflag.CommandLine.
func Flags(fs *pflag.FlagSet) Option {
	return flagsOption{fs}
}

type flagsOption struct{ fs *pflag.FlagSet }

func (o flagsOption) apply(r *Runner) { r.flags = o.fs }

func (o flagsOption) String() string {
	return fmt.Sprintf("appbase.Flags(%p)", o.fs)
}

// Logger sets the logger used for fatal errors and, unless EventLogger is
// also given, for lifecycle events.
func Logger(log *zap.Logger) Option {
	return loggerOption{log}
}

type loggerOption struct{ log *zap.Logger }

func (o loggerOption) apply(r *Runner) { r.log = o.log }

func (o loggerOption) String() string { return "appbase.Logger(...)" }

// EventLogger sets the logger that receives lifecycle events.
func EventLogger(l appevent.Logger) Option {
	return eventLoggerOption{l}
}

type eventLoggerOption struct{ l appevent.Logger }

func (o eventLoggerOption) apply(r *Runner) { r.events = o.l }

func (o eventLoggerOption) String() string {
	return fmt.Sprintf("appbase.EventLogger(%T)", o.l)
}

// Runtime sets the dispatch runtime. Applications that post callbacks should
// pass the same runtime here.
func Runtime(rt dispatch.Runtime) Option {
	return runtimeOption{rt}
}

type runtimeOption struct{ rt dispatch.Runtime }

func (o runtimeOption) apply(r *Runner) { r.runtime = o.rt }

func (o runtimeOption) String() string {
	return fmt.Sprintf("appbase.Runtime(%T)", o.rt)
}

// InterruptSignal changes the signal that triggers shutdown. Defaults to
// os.Interrupt.
func InterruptSignal(sig os.Signal) Option {
	return interruptOption{sig}
}

type interruptOption struct{ sig os.Signal }

func (o interruptOption) apply(r *Runner) { r.interrupt = o.sig }

func (o interruptOption) String() string {
	return fmt.Sprintf("appbase.InterruptSignal(%v)", o.sig)
}

// ObserveSignals relays additional signals to the Runner. They are logged
// but do not trigger shutdown.
func ObserveSignals(sigs ...os.Signal) Option {
	return observeOption(sigs)
}

type observeOption []os.Signal

func (o observeOption) apply(r *Runner) { r.observed = append(r.observed, o...) }

func (o observeOption) String() string {
	items := make([]string, len(o))
	for i, sig := range o {
		items[i] = sig.String()
	}
	return fmt.Sprintf("appbase.ObserveSignals(%s)", strings.Join(items, ", "))
}

// WithoutSignalRelay stops Run from subscribing to OS signals. Shutdown must
// then be requested through HandleSignal or RequestShutdown.
func WithoutSignalRelay() Option {
	return noRelayOption{}
}

type noRelayOption struct{}

func (noRelayOption) apply(r *Runner) { r.relay = false }

func (noRelayOption) String() string { return "appbase.WithoutSignalRelay()" }
