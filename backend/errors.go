// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"github.com/cpmech/gosl/io"
)

// RunError indicates that the external solver process could not be started
// or finished unsuccessfully. The input deck was written; the failure is in
// the invocation itself.
type RunError struct {
	Backend  string // backend name
	Cmd      string // command line that was attempted
	ExitCode int    // exit code; -1 when the process could not start
	LogFile  string // path of the captured solver log, if any
	Err      error  // underlying error
}

// Error returns a message describing the failed invocation
func (o *RunError) Error() string {
	if o.ExitCode < 0 {
		return io.Sf("backend %q: cannot run %q: %v", o.Backend, o.Cmd, o.Err)
	}
	msg := io.Sf("backend %q: %q exited with code %d", o.Backend, o.Cmd, o.ExitCode)
	if o.LogFile != "" {
		msg += io.Sf(" (log: %s)", o.LogFile)
	}
	return msg
}

// Unwrap returns the underlying error
func (o *RunError) Unwrap() error { return o.Err }

// ParseError indicates that the solver ran but its output files could not be
// interpreted: missing files, truncated tables, or unexpected records.
type ParseError struct {
	Backend string // backend name
	File    string // output file being read
	Line    int    // line number, when applicable (0 otherwise)
	Msg     string // what was wrong
	Err     error  // underlying error, if any
}

// Error returns a message describing the malformed output
func (o *ParseError) Error() string {
	if o.Line > 0 {
		return io.Sf("backend %q: cannot parse %s:%d: %s", o.Backend, o.File, o.Line, o.Msg)
	}
	return io.Sf("backend %q: cannot parse %s: %s", o.Backend, o.File, o.Msg)
}

// Unwrap returns the underlying error
func (o *ParseError) Unwrap() error { return o.Err }
