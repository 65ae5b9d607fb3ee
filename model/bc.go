// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// bcTypes maps the name of a predefined boundary condition type to the dof
// keys it blocks. Roller conditions free the named direction(s) and block the
// remaining translations.
var bcTypes = map[string][]string{
	"fix":       {"ux", "uy", "uz", "rx", "ry", "rz"},
	"pin":       {"ux", "uy", "uz"},
	"fix-x":     {"ux"},
	"fix-y":     {"uy"},
	"fix-z":     {"uz"},
	"clamp-xx":  {"ux", "uy", "uz", "rx"},
	"clamp-yy":  {"ux", "uy", "uz", "ry"},
	"clamp-zz":  {"ux", "uy", "uz", "rz"},
	"roller-x":  {"uy", "uz"},
	"roller-y":  {"ux", "uz"},
	"roller-z":  {"ux", "uy"},
	"roller-xy": {"uz"},
	"roller-yz": {"ux"},
	"roller-xz": {"uy"},
}

// EssentialBc prescribes degrees of freedom on a set of nodes or on a nodes
// group. Predefined types block dofs at zero; the "general" type prescribes
// the listed dof keys with the given values.
type EssentialBc struct {
	Name  string    `json:"name"`            // name of boundary condition
	Type  string    `json:"type"`            // predefined type or "general"
	Keys  []string  `json:"keys,omitempty"`  // general: dof keys
	Vals  []float64 `json:"vals,omitempty"`  // general: prescribed values; zeros if absent
	Part  string    `json:"part,omitempty"`  // name of part holding the nodes
	Nodes []int     `json:"nodes,omitempty"` // node ids within part
	Group string    `json:"group,omitempty"` // alternative: name of nodes group
}

// DofKeysBlocked returns the dof keys prescribed by this boundary condition
func (o *EssentialBc) DofKeysBlocked() (keys []string, err error) {
	if o.Type == "general" {
		return o.Keys, nil
	}
	keys, ok := bcTypes[o.Type]
	if !ok {
		err = chk.Err("boundary condition %q has unknown type %q", o.Name, o.Type)
	}
	return
}

// Value returns the prescribed value for a dof key. Predefined types always
// prescribe zero.
func (o *EssentialBc) Value(key string) float64 {
	if o.Type != "general" || len(o.Vals) == 0 {
		return 0
	}
	idx := utl.StrIndexSmall(o.Keys, key)
	if idx < 0 || idx >= len(o.Vals) {
		return 0
	}
	return o.Vals[idx]
}

// check verifies the boundary condition against the model
func (o *EssentialBc) check(m *Model) (err error) {
	keys, err := o.DofKeysBlocked()
	if err != nil {
		return
	}
	for _, key := range keys {
		if utl.StrIndexSmall(DofKeys, key) < 0 {
			return chk.Err("boundary condition %q has unknown dof key %q", o.Name, key)
		}
	}
	if o.Type == "general" && len(o.Vals) > 0 && len(o.Vals) != len(o.Keys) {
		return chk.Err("boundary condition %q has %d values for %d keys", o.Name, len(o.Vals), len(o.Keys))
	}
	return m.checkNodeSet(o.Name, o.Part, o.Nodes, o.Group)
}

// IniCondition prescribes an initial field on a set of nodes or elements;
// e.g. temperature, stress or velocity at the beginning of the analysis
type IniCondition struct {
	Name  string    `json:"name"`            // name of initial condition
	Type  string    `json:"type"`            // "temperature", "stress" or "velocity"
	Vals  []float64 `json:"vals"`            // field values
	Part  string    `json:"part,omitempty"`  // name of part holding the targets
	Nodes []int     `json:"nodes,omitempty"` // node ids (temperature, velocity)
	Elems []int     `json:"elems,omitempty"` // element ids (stress)
	Group string    `json:"group,omitempty"` // alternative: name of group
}

// iniTypes holds all valid initial condition types
var iniTypes = []string{"temperature", "stress", "velocity"}

// check verifies the initial condition against the model
func (o *IniCondition) check(m *Model) (err error) {
	if utl.StrIndexSmall(iniTypes, o.Type) < 0 {
		return chk.Err("initial condition %q has unknown type %q", o.Name, o.Type)
	}
	if len(o.Vals) == 0 {
		return chk.Err("initial condition %q has no values", o.Name)
	}
	if len(o.Elems) > 0 {
		prt := m.GetPart(o.Part)
		if prt == nil {
			return chk.Err("initial condition %q references missing part %q", o.Name, o.Part)
		}
		for _, id := range o.Elems {
			if prt.GetElem(id) == nil {
				return chk.Err("initial condition %q references missing element %d of part %q", o.Name, id, o.Part)
			}
		}
		return
	}
	return m.checkNodeSet(o.Name, o.Part, o.Nodes, o.Group)
}
