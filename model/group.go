// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// FaceRef addresses one face of an element by the element id and the local
// face index within the element
type FaceRef struct {
	Elem  int `json:"elem"`  // element id
	Local int `json:"local"` // local face index
}

// Group is a named, reusable set of nodes, elements, faces or parts used for
// bulk assignment of conditions and output requests
type Group struct {
	Name  string    `json:"name"`            // name of group; unique within model
	Kind  string    `json:"kind"`            // "nodes", "elems", "faces" or "parts"
	Part  string    `json:"part,omitempty"`  // nodes/elems/faces: name of owning part
	Ids   []int     `json:"ids,omitempty"`   // nodes/elems: ids within part
	Faces []FaceRef `json:"faces,omitempty"` // faces: element faces within part
	Parts []string  `json:"parts,omitempty"` // parts: part names
}

// groupKinds holds all valid group kinds
var groupKinds = []string{"nodes", "elems", "faces", "parts"}

// check verifies the group definition against the model
func (o *Group) check(m *Model) (err error) {
	if utl.StrIndexSmall(groupKinds, o.Kind) < 0 {
		return chk.Err("group %q has unknown kind %q", o.Name, o.Kind)
	}
	if o.Kind == "parts" {
		for _, name := range o.Parts {
			if m.GetPart(name) == nil {
				return chk.Err("group %q references missing part %q", o.Name, name)
			}
		}
		return
	}
	prt := m.GetPart(o.Part)
	if prt == nil {
		return chk.Err("group %q references missing part %q", o.Name, o.Part)
	}
	switch o.Kind {
	case "nodes":
		for _, id := range o.Ids {
			if prt.GetNode(id) == nil {
				return chk.Err("group %q references missing node %d of part %q", o.Name, id, o.Part)
			}
		}
	case "elems":
		for _, id := range o.Ids {
			if prt.GetElem(id) == nil {
				return chk.Err("group %q references missing element %d of part %q", o.Name, id, o.Part)
			}
		}
	case "faces":
		for _, f := range o.Faces {
			if prt.GetElem(f.Elem) == nil {
				return chk.Err("group %q references missing element %d of part %q", o.Name, f.Elem, o.Part)
			}
		}
	}
	return
}
