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

import (
	"fmt"
	"io"
)

// ConsoleLogger is an event logger that attempts to write human-readable
// messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[App] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *InitFailed:
		l.logf("ERROR\t\t%s Init failed: %v", e.Name, e.Err)
	case *StartFailed:
		l.logf("ERROR\t\t%s Start failed: %v", e.Name, e.Err)
	case *Dispatching:
		l.logf("DISPATCH\t%s (workers: %d)", e.Name, e.Workers)
	case *FlagsExported:
		if e.Err != nil {
			l.logf("ERROR\t\tFlags exported to %s incompletely: %v", e.Path, e.Err)
		} else {
			l.logf("FLAGS\t\t%d exported to %s", e.Count, e.Path)
		}
	case *SignalReceived:
		l.logf("SIGNAL\t\t%s", signalName(e.Signal))
	case *ShutdownRequested:
		if e.Signal != nil {
			l.logf("SHUTDOWN\t%s", signalName(e.Signal))
		} else {
			l.logf("SHUTDOWN")
		}
	case *Stopping:
		l.logf("STOPPING\t%s", e.Name)
	case *Exited:
		l.logf("%s exited.", e.Name)
	}
}
