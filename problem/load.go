// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/fea2/compas-fea2/model"
)

// LoadKeys holds the keys of all load components: three forces followed by
// three moments
var LoadKeys = []string{"fx", "fy", "fz", "mx", "my", "mz"}

// Load applies forces to a set of nodes or to a nodes group. The magnitude of
// each component is scaled in time by the named amplitude function.
type Load struct {
	Name  string    `json:"name"`            // name of load
	Type  string    `json:"type"`            // "node", "gravity", "prestress" or "harmonic"
	Keys  []string  `json:"keys,omitempty"`  // node/harmonic: load component keys
	Vals  []float64 `json:"vals,omitempty"`  // node/harmonic: load component values
	G     []float64 `json:"g,omitempty"`     // gravity: [3] acceleration vector. ex: [0, 0, -9.81]
	Sigma float64   `json:"sigma,omitempty"` // prestress: initial axial stress
	Freq  float64   `json:"freq,omitempty"`  // harmonic: excitation frequency
	Part  string    `json:"part,omitempty"`  // name of part holding the targets
	Nodes []int     `json:"nodes,omitempty"` // node ids within part
	Elems []int     `json:"elems,omitempty"` // prestress: element ids within part
	Group string    `json:"group,omitempty"` // alternative: name of group
	Fcn   string    `json:"fcn,omitempty"`   // name of amplitude function; "one" if empty
}

// loadTypes holds all valid load types
var loadTypes = []string{"node", "gravity", "prestress", "harmonic"}

// Value returns the load value for a component key
func (o *Load) Value(key string) float64 {
	idx := utl.StrIndexSmall(o.Keys, key)
	if idx < 0 || idx >= len(o.Vals) {
		return 0
	}
	return o.Vals[idx]
}

// check verifies the load against the model and the functions database
func (o *Load) check(m *model.Model, funcs FuncsData) (err error) {
	if utl.StrIndexSmall(loadTypes, o.Type) < 0 {
		return chk.Err("load %q has unknown type %q", o.Name, o.Type)
	}
	_, err = funcs.Get(o.Fcn)
	if err != nil {
		return chk.Err("load %q: %v", o.Name, err)
	}
	switch o.Type {
	case "node", "harmonic":
		if o.Type == "harmonic" && o.Freq <= 0 {
			return chk.Err("harmonic load %q must have a positive excitation frequency. freq=%g given", o.Name, o.Freq)
		}
		if len(o.Keys) == 0 || len(o.Keys) != len(o.Vals) {
			return chk.Err("load %q has %d keys and %d values", o.Name, len(o.Keys), len(o.Vals))
		}
		for _, key := range o.Keys {
			if utl.StrIndexSmall(LoadKeys, key) < 0 {
				return chk.Err("load %q has unknown component key %q", o.Name, key)
			}
		}
		_, _, err = m.ResolveNodeSet(o.Part, o.Nodes, o.Group)
		if err != nil {
			return chk.Err("load %q: %v", o.Name, err)
		}
	case "gravity":
		if len(o.G) != 3 {
			return chk.Err("gravity load %q must have a 3-component acceleration vector", o.Name)
		}
	case "prestress":
		prt := m.GetPart(o.Part)
		if prt == nil {
			return chk.Err("load %q references missing part %q", o.Name, o.Part)
		}
		for _, id := range o.Elems {
			if prt.GetElem(id) == nil {
				return chk.Err("load %q references missing element %d of part %q", o.Name, id, o.Part)
			}
		}
	}
	return
}

// PrescribedDisp prescribes displacement histories on a set of nodes during a
// step; e.g. a support settlement
type PrescribedDisp struct {
	Name  string    `json:"name"`            // name of prescription
	Keys  []string  `json:"keys"`            // dof keys
	Vals  []float64 `json:"vals"`            // target values
	Part  string    `json:"part,omitempty"`  // name of part holding the nodes
	Nodes []int     `json:"nodes,omitempty"` // node ids within part
	Group string    `json:"group,omitempty"` // alternative: name of nodes group
	Fcn   string    `json:"fcn,omitempty"`   // name of amplitude function; "one" if empty
}

// check verifies the prescription against the model and the functions database
func (o *PrescribedDisp) check(m *model.Model, funcs FuncsData) (err error) {
	if len(o.Keys) == 0 || len(o.Keys) != len(o.Vals) {
		return chk.Err("prescribed displacement %q has %d keys and %d values", o.Name, len(o.Keys), len(o.Vals))
	}
	for _, key := range o.Keys {
		if utl.StrIndexSmall(model.DofKeys, key) < 0 {
			return chk.Err("prescribed displacement %q has unknown dof key %q", o.Name, key)
		}
	}
	_, err = funcs.Get(o.Fcn)
	if err != nil {
		return chk.Err("prescribed displacement %q: %v", o.Name, err)
	}
	_, _, err = m.ResolveNodeSet(o.Part, o.Nodes, o.Group)
	if err != nil {
		return chk.Err("prescribed displacement %q: %v", o.Name, err)
	}
	return
}
