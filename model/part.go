// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Part is a named sub-assembly owning nodes and elements. Element connectivity
// must resolve within the part; coupling across parts is expressed only through
// constraints. A rigid part behaves as a single rigid body governed by its
// reference node.
type Part struct {

	// input
	Name    string  `json:"name"`              // name of part; unique within model
	Rigid   bool    `json:"rigid,omitempty"`   // part behaves as a single rigid body
	RefNode int     `json:"refnode,omitempty"` // rigid parts: id of reference node
	Nodes   []*Node `json:"nodes"`             // all nodes
	Elems   []*Elem `json:"elems"`             // all elements

	// derived
	Xmin, Xmax float64 // x extents
	Ymin, Ymax float64 // y extents
	Zmin, Zmax float64 // z extents

	nid2idx map[int]int // maps node id to index in Nodes
	eid2idx map[int]int // maps element id to index in Elems
}

// NewPart returns a new empty deformable part
func NewPart(name string) *Part {
	return &Part{Name: name, nid2idx: make(map[int]int), eid2idx: make(map[int]int)}
}

// NewRigidPart returns a new empty rigid part. The reference node must be
// added later with AddNode.
func NewRigidPart(name string, refnode int) *Part {
	o := NewPart(name)
	o.Rigid = true
	o.RefNode = refnode
	return o
}

// AddNode adds a node to this part. Duplicate ids are rejected.
func (o *Part) AddNode(nod *Node) (err error) {
	err = nod.check()
	if err != nil {
		return chk.Err("part %q: %v", o.Name, err)
	}
	if _, ok := o.nid2idx[nod.Id]; ok {
		return chk.Err("part %q has node %d already", o.Name, nod.Id)
	}
	o.nid2idx[nod.Id] = len(o.Nodes)
	o.Nodes = append(o.Nodes, nod)
	o.updateExtents(nod)
	return
}

// AddElem adds an element to this part. Duplicate ids and references to nodes
// not owned by this part are rejected; therefore cross-part connectivity
// cannot be built with elements.
func (o *Part) AddElem(ele *Elem) (err error) {
	err = ele.check()
	if err != nil {
		return chk.Err("part %q: %v", o.Name, err)
	}
	if _, ok := o.eid2idx[ele.Id]; ok {
		return chk.Err("part %q has element %d already", o.Name, ele.Id)
	}
	for _, v := range ele.Verts {
		if _, ok := o.nid2idx[v]; !ok {
			return chk.Err("element %d of part %q references node %d which does not belong to this part", ele.Id, o.Name, v)
		}
	}
	o.eid2idx[ele.Id] = len(o.Elems)
	o.Elems = append(o.Elems, ele)
	return
}

// GetNode returns a node by id. Returns nil if not found.
func (o *Part) GetNode(id int) *Node {
	if idx, ok := o.nid2idx[id]; ok {
		return o.Nodes[idx]
	}
	return nil
}

// GetElem returns an element by id. Returns nil if not found.
func (o *Part) GetElem(id int) *Elem {
	if idx, ok := o.eid2idx[id]; ok {
		return o.Elems[idx]
	}
	return nil
}

// HasNodes tells whether all given node ids belong to this part
func (o *Part) HasNodes(ids []int) bool {
	for _, id := range ids {
		if _, ok := o.nid2idx[id]; !ok {
			return false
		}
	}
	return true
}

// initDerived rebuilds the derived maps and extents; e.g. after decoding from JSON
func (o *Part) initDerived() (err error) {
	o.nid2idx = make(map[int]int)
	o.eid2idx = make(map[int]int)
	nodes, elems := o.Nodes, o.Elems
	o.Nodes, o.Elems = nil, nil
	for _, nod := range nodes {
		err = o.AddNode(nod)
		if err != nil {
			return
		}
	}
	for _, ele := range elems {
		err = o.AddElem(ele)
		if err != nil {
			return
		}
	}
	if o.Rigid {
		if o.GetNode(o.RefNode) == nil {
			return chk.Err("rigid part %q references missing node %d", o.Name, o.RefNode)
		}
	}
	return
}

// updateExtents updates the part extents with the coordinates of one node
func (o *Part) updateExtents(nod *Node) {
	if len(o.Nodes) == 1 {
		o.Xmin, o.Xmax = nod.C[0], nod.C[0]
		o.Ymin, o.Ymax = nod.C[1], nod.C[1]
		o.Zmin, o.Zmax = nod.C[2], nod.C[2]
		return
	}
	o.Xmin, o.Xmax = utl.Min(o.Xmin, nod.C[0]), utl.Max(o.Xmax, nod.C[0])
	o.Ymin, o.Ymax = utl.Min(o.Ymin, nod.C[1]), utl.Max(o.Ymax, nod.C[1])
	o.Zmin, o.Zmax = utl.Min(o.Zmin, nod.C[2]), utl.Max(o.Zmax, nod.C[2])
}
