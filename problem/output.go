// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/fea2/compas-fea2/model"
)

// FieldKeys holds the keys of all field outputs a backend may be asked for:
// displacements, reaction forces, stresses, strains, section forces and
// velocities/accelerations for dynamic steps
var FieldKeys = []string{"u", "rf", "s", "e", "sf", "v", "a"}

// FieldOutput requests a nodal or elemental field to be recorded during a step
type FieldOutput struct {
	Name  string   `json:"name"`            // name of output request
	Keys  []string `json:"keys"`            // requested field keys. ex: ["u", "rf"]
	On    string   `json:"on"`              // "nodes" or "elems"
	Part  string   `json:"part,omitempty"`  // restrict to one part; empty means whole model
	Group string   `json:"group,omitempty"` // restrict to one group
}

// check verifies the output request against the model
func (o *FieldOutput) check(m *model.Model) (err error) {
	if o.On != "nodes" && o.On != "elems" {
		return chk.Err("field output %q must be on \"nodes\" or \"elems\". %q given", o.Name, o.On)
	}
	for _, key := range o.Keys {
		if utl.StrIndexSmall(FieldKeys, key) < 0 {
			return chk.Err("field output %q has unknown key %q", o.Name, key)
		}
	}
	if o.Part != "" && m.GetPart(o.Part) == nil {
		return chk.Err("field output %q references missing part %q", o.Name, o.Part)
	}
	if o.Group != "" && m.GetGroup(o.Group) == nil {
		return chk.Err("field output %q references missing group %q", o.Name, o.Group)
	}
	return
}

// HistoryOutput requests a scalar time series at one node and dof during a step
type HistoryOutput struct {
	Name string `json:"name"` // name of output request
	Key  string `json:"key"`  // field key. ex: "u"
	Part string `json:"part"` // name of part holding the node
	Node int    `json:"node"` // node id within part
	Dof  string `json:"dof"`  // dof key. ex: "uy"
}

// check verifies the output request against the model
func (o *HistoryOutput) check(m *model.Model) (err error) {
	if utl.StrIndexSmall(FieldKeys, o.Key) < 0 {
		return chk.Err("history output %q has unknown key %q", o.Name, o.Key)
	}
	if utl.StrIndexSmall(model.DofKeys, o.Dof) < 0 {
		return chk.Err("history output %q has unknown dof %q", o.Name, o.Dof)
	}
	prt := m.GetPart(o.Part)
	if prt == nil {
		return chk.Err("history output %q references missing part %q", o.Name, o.Part)
	}
	if prt.GetNode(o.Node) == nil {
		return chk.Err("history output %q references missing node %d of part %q", o.Name, o.Node, o.Part)
	}
	return
}
