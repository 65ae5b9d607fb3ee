// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// EType holds fixed information about one element type
type EType struct {
	Name   string // type name. ex: "beam", "shell", "hex8"
	Geo    string // geometry class: "point", "line", "surface", "volume"
	Nverts int    // required number of vertices; 0 means any number >= 1
	Rot    bool   // element carries rotational dofs
}

// etypes holds all available element types
var etypes = make(map[string]*EType)

// AddEType registers a new element type
func AddEType(et *EType) {
	if _, ok := etypes[et.Name]; ok {
		chk.Panic("cannot add element type %q because it exists already", et.Name)
	}
	etypes[et.Name] = et
}

// GetEType returns information about an element type
func GetEType(name string) (et *EType, err error) {
	et, ok := etypes[name]
	if !ok {
		err = chk.Err("element type %q is not available", name)
	}
	return
}

// ETypes returns the names of all available element types
func ETypes() (names []string) {
	for name := range etypes {
		names = append(names, name)
	}
	return
}

func init() {
	for _, et := range []*EType{
		{"mass", "point", 1, false},
		{"spring", "line", 2, true},
		{"link", "line", 2, false},
		{"beam", "line", 2, true},
		{"truss", "line", 2, false},
		{"strut", "line", 2, false},
		{"tie", "line", 2, false},
		{"shell", "surface", 0, true},
		{"membrane", "surface", 0, false},
		{"tet4", "volume", 4, false},
		{"tet10", "volume", 10, false},
		{"hex8", "volume", 8, false},
		{"hex20", "volume", 20, false},
	} {
		AddEType(et)
	}
}

// Elem connects an ordered set of nodes of one part and references exactly one
// section by name. The section, in turn, references a material; both are shared
// by many elements.
type Elem struct {

	// input
	Id    int    `json:"id"`    // identifier; unique within part
	Type  string `json:"type"`  // type name; must exist in the element type database
	Verts []int  `json:"verts"` // ids of connected nodes; all must belong to the same part
	Sec   string `json:"sec"`   // name of section
}

// NewElem returns a new element. The node ids in verts are not resolved here;
// resolution happens when the element is added to a part.
func NewElem(id int, etype string, verts []int, sec string) (o *Elem, err error) {
	o = &Elem{Id: id, Type: etype, Verts: verts, Sec: sec}
	err = o.check()
	if err != nil {
		return nil, err
	}
	return
}

// check verifies the element definition against its type
func (o *Elem) check() (err error) {
	et, err := GetEType(o.Type)
	if err != nil {
		return
	}
	if et.Nverts > 0 && len(o.Verts) != et.Nverts {
		return chk.Err("%s element %d must have %d vertices. %d given", o.Type, o.Id, et.Nverts, len(o.Verts))
	}
	if et.Nverts == 0 && len(o.Verts) < 3 {
		return chk.Err("%s element %d must have at least 3 vertices. %d given", o.Type, o.Id, len(o.Verts))
	}
	seen := make(map[int]bool)
	for _, v := range o.Verts {
		if seen[v] {
			return chk.Err("%s element %d references node %d twice", o.Type, o.Id, v)
		}
		seen[v] = true
	}
	if o.Sec == "" && o.Type != "mass" {
		return chk.Err("%s element %d must reference a section", o.Type, o.Id)
	}
	return
}

// String returns a one-line representation of this element
func (o *Elem) String() string {
	return io.Sf("%s element %d verts=%v sec=%q", o.Type, o.Id, o.Verts, o.Sec)
}
