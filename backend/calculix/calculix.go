// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calculix implements the CalculiX solver backend. Problems are
// written as a single .inp input deck, the ccx executable is run on it, and
// the printed .dat output file is read back into results.
package calculix

import (
	"context"

	"github.com/fea2/compas-fea2/backend"
)

// Name is the registered name of this backend
const Name = "calculix"

// Runner drives the ccx executable
type Runner struct {
	Exe     string             // executable; default "ccx"
	jobname string             // job file name key, set by WriteInput
	num     *backend.Numbering // global numbering, set by WriteInput
}

func init() {
	backend.Register(Name, func() backend.Runner {
		return &Runner{Exe: "ccx"}
	})
}

// Name returns the registered name of this backend
func (o *Runner) Name() string { return Name }

// SetExe overrides the solver executable
func (o *Runner) SetExe(exe string) { o.Exe = exe }

// Run invokes ccx on the input deck previously written to dir
func (o *Runner) Run(ctx context.Context, dir string) error {
	job := backend.Job{
		Backend: Name,
		Exe:     o.Exe,
		Args:    []string{"-i", o.jobname},
		Dir:     dir,
		LogName: o.jobname + ".log",
	}
	return job.Run(ctx)
}
