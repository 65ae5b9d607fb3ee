// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/model"
)

// StaticData holds the incrementation control of a static step
type StaticData struct {
	Nincs   int     `json:"nincs"`            // number of increments
	MaxIncs int     `json:"maxincs"`          // maximum number of increments
	IniInc  float64 `json:"iniinc"`           // initial increment size as fraction of step time
	MinInc  float64 `json:"mininc"`           // minimum increment size
	MaxInc  float64 `json:"maxinc"`           // maximum increment size
	Nlgeom  bool    `json:"nlgeom,omitempty"` // account for geometric nonlinearity
}

// SetDefault sets default values
func (o *StaticData) SetDefault() {
	o.Nincs = 1
	o.MaxIncs = 100
	o.IniInc = 1
	o.MinInc = 1e-5
	o.MaxInc = 1
}

// DynamicData holds the time integration control of a dynamic step
type DynamicData struct {
	Tf    float64 `json:"tf"`              // final time
	Dt    float64 `json:"dt"`              // time step size
	Alpha float64 `json:"alpha,omitempty"` // mass-proportional damping coefficient
	Beta  float64 `json:"beta,omitempty"`  // stiffness-proportional damping coefficient
}

// SetDefault sets default values
func (o *DynamicData) SetDefault() {
	o.Tf = 1
	o.Dt = 0.01
}

// ModalData holds the control of a modal (frequency extraction) step
type ModalData struct {
	Nmodes int `json:"nmodes"` // number of modes to extract
}

// SetDefault sets default values
func (o *ModalData) SetDefault() {
	o.Nmodes = 6
}

// BucklingData holds the control of a linear buckling step
type BucklingData struct {
	Nmodes int `json:"nmodes"` // number of buckling modes to extract
}

// SetDefault sets default values
func (o *BucklingData) SetDefault() {
	o.Nmodes = 4
}

// Step holds one analysis step: what is applied (loads, prescribed
// displacements) and what is asked of the solver (procedure control, output
// requests). Exactly one of the procedure sub-structures must be set.
type Step struct {

	// main
	Name string `json:"name"` // name of step; unique within problem
	Desc string `json:"desc,omitempty"`

	// procedure; exactly one must be non-nil
	Static   *StaticData   `json:"static,omitempty"`   // static procedure
	Dynamic  *DynamicData  `json:"dynamic,omitempty"`  // implicit dynamic procedure
	Modal    *ModalData    `json:"modal,omitempty"`    // frequency extraction
	Buckling *BucklingData `json:"buckling,omitempty"` // linear buckling

	// conditions
	Loads []*Load           `json:"loads,omitempty"` // loads applied during this step
	Disps []*PrescribedDisp `json:"disps,omitempty"` // prescribed displacements

	// output requests
	Fields []*FieldOutput   `json:"fields,omitempty"` // field output requests
	Hists  []*HistoryOutput `json:"hists,omitempty"`  // history output requests
}

// Kind returns the procedure kind of this step: "static", "dynamic", "modal"
// or "buckling"
func (o *Step) Kind() string {
	switch {
	case o.Static != nil:
		return "static"
	case o.Dynamic != nil:
		return "dynamic"
	case o.Modal != nil:
		return "modal"
	case o.Buckling != nil:
		return "buckling"
	}
	return ""
}

// NewStaticStep returns a step with a static procedure and default control
func NewStaticStep(name string) *Step {
	o := &Step{Name: name, Static: new(StaticData)}
	o.Static.SetDefault()
	return o
}

// NewDynamicStep returns a step with an implicit dynamic procedure and
// default control
func NewDynamicStep(name string) *Step {
	o := &Step{Name: name, Dynamic: new(DynamicData)}
	o.Dynamic.SetDefault()
	return o
}

// NewModalStep returns a frequency extraction step with default control
func NewModalStep(name string) *Step {
	o := &Step{Name: name, Modal: new(ModalData)}
	o.Modal.SetDefault()
	return o
}

// NewBucklingStep returns a linear buckling step with default control
func NewBucklingStep(name string) *Step {
	o := &Step{Name: name, Buckling: new(BucklingData)}
	o.Buckling.SetDefault()
	return o
}

// check verifies the step against the model and the functions database
func (o *Step) check(m *model.Model, funcs FuncsData) (err error) {
	if o.Name == "" {
		return chk.Err("steps must be named")
	}
	n := 0
	for _, set := range []bool{o.Static != nil, o.Dynamic != nil, o.Modal != nil, o.Buckling != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return chk.Err("step %q must define exactly one procedure. %d given", o.Name, n)
	}
	for _, load := range o.Loads {
		if err = load.check(m, funcs); err != nil {
			return chk.Err("step %q: %v", o.Name, err)
		}
	}
	for _, disp := range o.Disps {
		if err = disp.check(m, funcs); err != nil {
			return chk.Err("step %q: %v", o.Name, err)
		}
	}
	for _, f := range o.Fields {
		if err = f.check(m); err != nil {
			return chk.Err("step %q: %v", o.Name, err)
		}
	}
	for _, h := range o.Hists {
		if err = h.check(m); err != nil {
			return chk.Err("step %q: %v", o.Name, err)
		}
	}
	return
}
