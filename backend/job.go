// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/io"
)

// Job describes one invocation of an external solver executable
type Job struct {
	Backend string   // backend name, for error reporting
	Exe     string   // executable name or path
	Args    []string // command line arguments
	Dir     string   // working directory
	LogName string   // name of the log file capturing stdout+stderr
	Env     []string // extra environment entries, "KEY=VALUE"
}

// cmdline formats the command for error messages
func (o *Job) cmdline() string {
	return strings.TrimSpace(o.Exe + " " + strings.Join(o.Args, " "))
}

// Run executes the job, streaming the solver's stdout and stderr into the
// log file. Failures to start and nonzero exit codes both come back as
// *RunError.
func (o *Job) Run(ctx context.Context) error {
	exe, err := exec.LookPath(o.Exe)
	if err != nil {
		return &RunError{Backend: o.Backend, Cmd: o.cmdline(), ExitCode: -1, Err: err}
	}
	logfn := filepath.Join(o.Dir, o.LogName)
	logfile, err := os.Create(logfn)
	if err != nil {
		return &RunError{Backend: o.Backend, Cmd: o.cmdline(), ExitCode: -1, Err: err}
	}
	defer logfile.Close()
	cmd := exec.CommandContext(ctx, exe, o.Args...)
	cmd.Dir = o.Dir
	cmd.Stdout = logfile
	cmd.Stderr = logfile
	if len(o.Env) > 0 {
		cmd.Env = append(os.Environ(), o.Env...)
	}
	if err := cmd.Run(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return &RunError{Backend: o.Backend, Cmd: o.cmdline(), ExitCode: ee.ExitCode(), LogFile: logfn, Err: err}
		}
		return &RunError{Backend: o.Backend, Cmd: o.cmdline(), ExitCode: -1, LogFile: logfn, Err: err}
	}
	io.Pf("%s: done (log: %s)\n", o.Backend, logfn)
	return nil
}
