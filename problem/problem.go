// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package problem wraps a model with the analysis configuration: ordered
// steps, load patterns, amplitude functions and output requests. A problem is
// a backend-neutral description of what to solve; the backends translate it
// into solver-specific input.
package problem

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"

	"github.com/fea2/compas-fea2/model"
)

// Problem holds a model plus the analysis configuration
type Problem struct {

	// input
	Name   string       `json:"name"`             // name of problem; used as job file name key
	Desc   string       `json:"desc,omitempty"`   // description
	Key    string       `json:"key,omitempty"`    // unique identifier
	Model  *model.Model `json:"model"`            // the structural definition
	Funcs  FuncsData    `json:"funcs,omitempty"`  // amplitude functions
	Steps  []*Step      `json:"steps"`            // ordered analysis steps
	Combos []*Combo     `json:"combos,omitempty"` // combinations of step results
	DirOut string       `json:"dirout,omitempty"` // working directory; default is /tmp/fea2/<name>
}

// New returns a new problem wrapping a model
func New(name string, m *model.Model) *Problem {
	return &Problem{Name: name, Key: uuid.NewString(), Model: m}
}

// AddStep appends a step. Duplicate names are rejected.
func (o *Problem) AddStep(stp *Step) (err error) {
	if o.FindStep(stp.Name) != nil {
		return chk.Err("problem %q has step %q already", o.Name, stp.Name)
	}
	o.Steps = append(o.Steps, stp)
	return
}

// FindStep returns a step by name. Returns nil if not found.
func (o *Problem) FindStep(name string) *Step {
	for _, stp := range o.Steps {
		if stp.Name == name {
			return stp
		}
	}
	return nil
}

// OutDir returns the working directory for job files and results
func (o *Problem) OutDir() string {
	if o.DirOut != "" {
		return o.DirOut
	}
	return filepath.Join("/tmp/fea2", o.Name)
}

// Validate checks the problem and its model for dangling references and
// invalid definitions. It must succeed before any backend is invoked, so a
// wrong model is reported before job files are written or a process spawned.
func (o *Problem) Validate() (err error) {
	if o.Name == "" {
		return chk.Err("problems must be named")
	}
	if o.Model == nil {
		return chk.Err("problem %q has no model", o.Name)
	}
	err = o.Model.Validate()
	if err != nil {
		return chk.Err("problem %q: model is invalid:\n%v", o.Name, err)
	}
	if len(o.Steps) == 0 {
		return chk.Err("problem %q has no steps", o.Name)
	}
	seen := make(map[string]bool)
	for _, stp := range o.Steps {
		if seen[stp.Name] {
			return chk.Err("problem %q has step %q twice", o.Name, stp.Name)
		}
		seen[stp.Name] = true
		err = stp.check(o.Model, o.Funcs)
		if err != nil {
			return chk.Err("problem %q: %v", o.Name, err)
		}
	}
	for _, cmb := range o.Combos {
		err = cmb.check(o)
		if err != nil {
			return chk.Err("problem %q: %v", o.Name, err)
		}
	}
	return
}

// WriteJSON writes the problem, model included, to a JSON file
func (o *Problem) WriteJSON(fn string) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return chk.Err("cannot marshal problem %q:\n%v", o.Name, err)
	}
	io.WriteStringToFileD(filepath.Dir(fn), filepath.Base(fn), io.Sf("%s\n", b))
	return
}

// ReadJSON reads a problem from a JSON file and rebuilds all derived data
func ReadJSON(fn string) (o *Problem, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read problem file %q", fn)
	}
	o = new(Problem)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal problem file %q:\n%v", fn, err)
	}
	if o.Model != nil {
		err = o.Model.Init()
		if err != nil {
			return nil, err
		}
	}
	return
}

// Summary returns formatted information about this problem
func (o *Problem) Summary() string {
	l := io.Sf("problem %q with %d step(s):\n", o.Name, len(o.Steps))
	for i, stp := range o.Steps {
		l += io.Sf("  %d: %q [%s] nloads=%d ndisps=%d\n", i, stp.Name, stp.Kind(), len(stp.Loads), len(stp.Disps))
	}
	return l
}
