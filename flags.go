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
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go.uber.org/appbase/appevent"
)

// LogDirFlag is the name of the flag RegisterFlags adds.
const LogDirFlag = "log_dir"

// RegisterFlags adds the flags a Runner reads to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(LogDirFlag, "", "directory for log and flag files; defaults to the system temp directory")
}

// LogDir returns the directory ExportFlags writes to.
func (r *Runner) LogDir() string {
	if r.logDir != "" {
		return r.logDir
	}
	if f := r.flags.Lookup(LogDirFlag); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return os.TempDir()
}

// FlagsPath returns the path of the flag snapshot: <log_dir>/<Name>.flags.
func (r *Runner) FlagsPath() string {
	return filepath.Join(r.LogDir(), r.Name()+".flags")
}

// ExportFlags writes every registered flag to FlagsPath. Failing to create
// the file is fatal; later write errors are only logged.
func (r *Runner) ExportFlags() {
	path := r.FlagsPath()
	f, err := os.Create(path)
	if err != nil {
		r.log.Fatal("cannot open file", zap.String("path", path), zap.Error(err))
		return
	}

	n, err := WriteFlags(f, r.flags)
	err = multierr.Append(err, f.Close())
	r.events.LogEvent(&appevent.FlagsExported{Path: path, Count: n, Err: err})
}

// WriteFlags writes fs in its iteration order, one block per flag:
//
//	# <type>, default=<default>
//	# <description>
//	--<name>=<current>
//
// Blocks are separated by a blank line. It returns the number of flags
// written.
func WriteFlags(w io.Writer, fs *pflag.FlagSet) (n int, err error) {
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "# %s, default=%s\n# %s\n--%s=%s\n\n",
			f.Value.Type(), f.DefValue, f.Usage, f.Name, f.Value.String())
		if err == nil {
			n++
		}
	})
	return n, err
}
