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
	"strings"

	"go.uber.org/zap"
)

// ZapLogger is an event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *InitFailed:
		l.Logger.Error("init failed", zap.String("app", e.Name), zap.Error(e.Err))
	case *StartFailed:
		l.Logger.Error("start failed", zap.String("app", e.Name), zap.Error(e.Err))
	case *Dispatching:
		l.Logger.Info("dispatching",
			zap.String("app", e.Name),
			zap.Int("workers", e.Workers),
		)
	case *FlagsExported:
		if e.Err != nil {
			l.Logger.Error("flag export incomplete",
				zap.String("path", e.Path),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Info("flags exported",
				zap.String("path", e.Path),
				zap.Int("count", e.Count),
			)
		}
	case *SignalReceived:
		l.Logger.Info("received signal", zap.String("signal", signalName(e.Signal)))
	case *ShutdownRequested:
		if e.Signal != nil {
			l.Logger.Info("shutdown requested", zap.String("signal", signalName(e.Signal)))
		} else {
			l.Logger.Info("shutdown requested")
		}
	case *Stopping:
		l.Logger.Info("stopping", zap.String("app", e.Name))
	case *Exited:
		l.Logger.Info("exited", zap.String("app", e.Name))
	}
}

func signalName(sig interface{ String() string }) string {
	return strings.ToUpper(sig.String())
}
