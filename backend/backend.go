// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend defines the contract between problems and external finite
// element solvers. A Runner translates a problem into the solver's native
// input files, invokes the solver executable, and reads the native output
// back into results. Concrete runners register themselves by name.
package backend

import (
	"context"
	"os"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/problem"
	"github.com/fea2/compas-fea2/results"
)

// Runner is implemented by each solver backend
type Runner interface {

	// Name returns the registered name of this backend
	Name() string

	// WriteInput writes the solver's native input files for p into dir.
	// The problem must have been validated already.
	WriteInput(p *problem.Problem, dir string) error

	// Run invokes the solver on the input files previously written to dir.
	// A failed invocation is reported as *RunError.
	Run(ctx context.Context, dir string) error

	// ReadResults reads the solver's native output files from dir.
	// Malformed output is reported as *ParseError.
	ReadResults(p *problem.Problem, dir string) (*results.Results, error)
}

// allocators holds the registered backend factories
var allocators = map[string]func() Runner{}

// Register registers one backend factory. It panics on duplicated names
// since registration happens during init.
func Register(name string, alloc func() Runner) {
	if _, ok := allocators[name]; ok {
		chk.Panic("backend %q is already registered", name)
	}
	allocators[name] = alloc
}

// New allocates a registered backend by name
func New(name string) (Runner, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("backend %q is not available; registered backends: %v", name, Names())
	}
	return alloc(), nil
}

// Names returns the sorted names of all registered backends
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Analyse validates p, writes the input files of the named backend into the
// problem's output directory, runs the solver and reads the results back.
func Analyse(ctx context.Context, p *problem.Problem, backendName string) (*results.Results, error) {
	run, err := New(backendName)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dir := p.OutDir()
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, chk.Err("cannot create output directory %q: %v", dir, err)
	}
	if err := run.WriteInput(p, dir); err != nil {
		return nil, err
	}
	if err := run.Run(ctx, dir); err != nil {
		return nil, err
	}
	return run.ReadResults(p, dir)
}
