// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// NodeRef addresses one node of one part
type NodeRef struct {
	Part string `json:"part"` // name of part
	Node int    `json:"node"` // node id within part
}

// String returns a one-line representation of this reference
func (o NodeRef) String() string {
	return io.Sf("%s.%d", o.Part, o.Node)
}

// Constraint couples the kinematics of a master node with slave nodes.
// Constraints are the only legal way to connect parts: element connectivity
// never crosses part boundaries.
type Constraint struct {
	Name   string    `json:"name"`           // name of constraint
	Type   string    `json:"type"`           // "tie-mpc", "beam-mpc" or "tie"
	Master NodeRef   `json:"master"`         // master (retained) node
	Slaves []NodeRef `json:"slaves"`         // slave (constrained) nodes
	Dofs   []string  `json:"dofs,omitempty"` // coupled dof keys; empty means all six
	Tol    float64   `json:"tol,omitempty"`  // tie: position tolerance for surface adjustment
}

// constraintTypes holds all valid constraint types
var constraintTypes = []string{"tie-mpc", "beam-mpc", "tie"}

// CoupledDofs returns the coupled dof keys; all six when none are listed
func (o *Constraint) CoupledDofs() []string {
	if len(o.Dofs) == 0 {
		return DofKeys
	}
	return o.Dofs
}

// check verifies the constraint against the model
func (o *Constraint) check(m *Model) (err error) {
	if utl.StrIndexSmall(constraintTypes, o.Type) < 0 {
		return chk.Err("constraint %q has unknown type %q", o.Name, o.Type)
	}
	if len(o.Slaves) == 0 {
		return chk.Err("constraint %q has no slave nodes", o.Name)
	}
	refs := append([]NodeRef{o.Master}, o.Slaves...)
	for _, ref := range refs {
		prt := m.GetPart(ref.Part)
		if prt == nil {
			return chk.Err("constraint %q references missing part %q", o.Name, ref.Part)
		}
		if prt.GetNode(ref.Node) == nil {
			return chk.Err("constraint %q references missing node %v", o.Name, ref)
		}
	}
	for _, key := range o.Dofs {
		if utl.StrIndexSmall(DofKeys, key) < 0 {
			return chk.Err("constraint %q has unknown dof key %q", o.Name, key)
		}
	}
	return
}

// Release decouples degrees of freedom at one end of a line element;
// e.g. a pin at the end of a beam
type Release struct {
	Name string   `json:"name"`           // name of release
	Type string   `json:"type"`           // "pin" or "slider"
	Part string   `json:"part"`           // name of part holding the element
	Elem int      `json:"elem"`           // element id
	End  int      `json:"end"`            // element end: 0 or 1
	Dofs []string `json:"dofs,omitempty"` // released dof keys; defaults per type
}

// releaseDofs maps release types to default released dof keys
var releaseDofs = map[string][]string{
	"pin":    {"rx", "ry", "rz"},
	"slider": {"ux", "uy"},
}

// ReleasedDofs returns the released dof keys
func (o *Release) ReleasedDofs() []string {
	if len(o.Dofs) > 0 {
		return o.Dofs
	}
	return releaseDofs[o.Type]
}

// check verifies the release against the model
func (o *Release) check(m *Model) (err error) {
	if _, ok := releaseDofs[o.Type]; !ok {
		return chk.Err("release %q has unknown type %q", o.Name, o.Type)
	}
	if o.End != 0 && o.End != 1 {
		return chk.Err("release %q has invalid end %d", o.Name, o.End)
	}
	prt := m.GetPart(o.Part)
	if prt == nil {
		return chk.Err("release %q references missing part %q", o.Name, o.Part)
	}
	ele := prt.GetElem(o.Elem)
	if ele == nil {
		return chk.Err("release %q references missing element %d of part %q", o.Name, o.Elem, o.Part)
	}
	et, err := GetEType(ele.Type)
	if err != nil {
		return
	}
	if et.Geo != "line" {
		return chk.Err("release %q targets %s element %d which is not a line element", o.Name, ele.Type, ele.Id)
	}
	return
}
