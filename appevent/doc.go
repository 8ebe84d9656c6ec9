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

// Package appevent defines the events a Runner emits while it drives an
// application through its lifecycle, and the loggers that record them.
//
// By default a Runner logs events with [ZapLogger] on top of the Runner's
// own *zap.Logger. Use appbase.EventLogger to install another
// implementation of [Logger], such as [ConsoleLogger] during development.
//
// [Event] is a union type. Custom loggers handle it with a type switch:
//
//	func (l *MyLogger) LogEvent(e appevent.Event) {
//		switch e := e.(type) {
//		case *appevent.InitFailed:
//			// ...
//		// ...
//		}
//	}
package appevent
