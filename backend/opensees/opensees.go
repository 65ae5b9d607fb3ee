// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opensees implements the OpenSees solver backend. Problems are
// written as a Tcl script with node recorders, the OpenSees interpreter is
// run on it, and the recorder output files are read back into results.
package opensees

import (
	"context"

	"github.com/fea2/compas-fea2/backend"
)

// Name is the registered name of this backend
const Name = "opensees"

// Runner drives the OpenSees interpreter
type Runner struct {
	Exe     string             // executable; default "OpenSees"
	jobname string             // job file name key, set by WriteInput
	num     *backend.Numbering // global numbering, set by WriteInput
	pat     int                // running tag of timeSeries/pattern pairs
}

func init() {
	backend.Register(Name, func() backend.Runner {
		return &Runner{Exe: "OpenSees"}
	})
}

// Name returns the registered name of this backend
func (o *Runner) Name() string { return Name }

// SetExe overrides the solver executable
func (o *Runner) SetExe(exe string) { o.Exe = exe }

// Run invokes the interpreter on the script previously written to dir
func (o *Runner) Run(ctx context.Context, dir string) error {
	job := backend.Job{
		Backend: Name,
		Exe:     o.Exe,
		Args:    []string{o.jobname + ".tcl"},
		Dir:     dir,
		LogName: o.jobname + ".log",
	}
	return job.Run(ctx)
}
