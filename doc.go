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

// Package appbase is a minimal lifecycle base for long-running processes.
//
// An application implements [Application]: a Name and three hooks, Init,
// Start and Stop. A [Runner] drives it:
//
//	r := appbase.New(app, appbase.Runtime(queue), appbase.CallbackThreads(4))
//	os.Exit(r.Run())
//
// Run calls Init, then Start, writes every registered flag to
// <log_dir>/<Name>.flags, and hands control to the dispatch runtime until
// shutdown is requested, after which it calls Stop. A failing Init returns
// ExitInitFailed and a failing Start returns ExitStartFailed; Stop is not
// called in either case, so Start must clean up after itself when it fails.
//
// # Shutdown
//
// While Run executes, the Runner listens for the interrupt signal. The first
// interrupt sets a latch and asks the dispatch runtime to stop; later ones
// are ignored, as are other signals. Embedders can bypass the OS entirely
// with [Runner.RequestShutdown].
//
// # Flags
//
// Flags come from a *pflag.FlagSet, pflag.CommandLine by default. Use
// [RegisterFlags] to add log_dir, and [LoadFlagFile] to apply values from a
// YAML file before running.
package appbase
