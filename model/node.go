// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// DofKeys holds the keys of all six degrees of freedom of a node:
// three translations followed by three rotations
var DofKeys = []string{"ux", "uy", "uz", "rx", "ry", "rz"}

// Node holds a point in 3D space together with the activation state of its
// degrees of freedom and an optional lumped mass. Nodes are the fundamental
// addressable unit referenced by elements, loads and boundary conditions.
type Node struct {

	// input
	Id    int       `json:"id"`              // identifier; unique within part
	C     []float64 `json:"c"`               // [3] coordinates
	Inact []string  `json:"inact,omitempty"` // inactive dof keys; empty means all six dofs are active
	Mass  float64   `json:"mass,omitempty"`  // lumped mass; 0 means no mass assigned
}

// NewNode returns a new node with all six degrees of freedom active
func NewNode(id int, x, y, z float64) *Node {
	return &Node{Id: id, C: []float64{x, y, z}}
}

// X returns the x coordinate
func (o *Node) X() float64 { return o.C[0] }

// Y returns the y coordinate
func (o *Node) Y() float64 { return o.C[1] }

// Z returns the z coordinate
func (o *Node) Z() float64 { return o.C[2] }

// Active tells whether the degree of freedom corresponding to key is active
func (o *Node) Active(key string) bool {
	return utl.StrIndexSmall(o.Inact, key) < 0
}

// Deactivate switches off a degree of freedom; e.g. "rz"
func (o *Node) Deactivate(key string) (err error) {
	if utl.StrIndexSmall(DofKeys, key) < 0 {
		return chk.Err("unknown dof key %q", key)
	}
	if o.Active(key) {
		o.Inact = append(o.Inact, key)
	}
	return
}

// Activate switches a degree of freedom back on
func (o *Node) Activate(key string) {
	idx := utl.StrIndexSmall(o.Inact, key)
	if idx >= 0 {
		o.Inact = append(o.Inact[:idx], o.Inact[idx+1:]...)
	}
}

// check verifies the node definition
func (o *Node) check() (err error) {
	if len(o.C) != 3 {
		return chk.Err("node %d must have 3 coordinates. %d given", o.Id, len(o.C))
	}
	for _, key := range o.Inact {
		if utl.StrIndexSmall(DofKeys, key) < 0 {
			return chk.Err("node %d has unknown dof key %q", o.Id, key)
		}
	}
	return
}

// String returns a one-line representation of this node
func (o *Node) String() string {
	return io.Sf("node %d @ [%g, %g, %g]", o.Id, o.C[0], o.C[1], o.C[2])
}
