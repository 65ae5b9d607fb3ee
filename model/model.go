// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model implements the backend-agnostic structural definition: parts
// with nodes and elements, materials, sections, boundary and initial
// conditions, constraints, releases and groups. The model is pure data plus
// validation; the numerical treatment is delegated to the solver backends.
package model

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"

	"github.com/fea2/compas-fea2/mat"
	"github.com/fea2/compas-fea2/sec"
)

// Model is the top-level container of the structural definition. All entities
// are constructed and attached before a problem is built; once handed to a
// backend for solving, the model is treated as immutable input.
type Model struct {

	// input
	Name        string          `json:"name"`                  // name of model
	Desc        string          `json:"desc,omitempty"`        // description
	Author      string          `json:"author,omitempty"`      // author
	Key         string          `json:"key,omitempty"`         // unique identifier
	Parts       []*Part         `json:"parts"`                 // ordered parts
	Mats        mat.Db          `json:"mats"`                  // materials database
	Secs        sec.Db          `json:"secs"`                  // sections database
	Bcs         []*EssentialBc  `json:"bcs,omitempty"`         // boundary conditions
	Ics         []*IniCondition `json:"ics,omitempty"`         // initial conditions
	Constraints []*Constraint   `json:"constraints,omitempty"` // inter-part couplings
	Releases    []*Release      `json:"releases,omitempty"`    // beam-end releases
	Groups      []*Group        `json:"groups,omitempty"`      // named sets

	// derived
	pname2idx map[string]int // maps part name to index in Parts
}

// New returns a new empty model with a fresh unique key
func New(name string) *Model {
	return &Model{Name: name, Key: uuid.NewString(), pname2idx: make(map[string]int)}
}

// AddPart adds a part to this model. Duplicate names are rejected.
func (o *Model) AddPart(prt *Part) (err error) {
	if o.pname2idx == nil {
		o.pname2idx = make(map[string]int)
	}
	if prt.Name == "" {
		return chk.Err("model %q: parts must be named", o.Name)
	}
	if _, ok := o.pname2idx[prt.Name]; ok {
		return chk.Err("model %q has part %q already", o.Name, prt.Name)
	}
	o.pname2idx[prt.Name] = len(o.Parts)
	o.Parts = append(o.Parts, prt)
	return
}

// GetPart returns a part by name. Returns nil if not found.
func (o *Model) GetPart(name string) *Part {
	if idx, ok := o.pname2idx[name]; ok {
		return o.Parts[idx]
	}
	return nil
}

// GetGroup returns a group by name. Returns nil if not found.
func (o *Model) GetGroup(name string) *Group {
	for _, g := range o.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// checkNodeSet verifies that a named node set (explicit part.nodes or a nodes
// group) resolves within the model
func (o *Model) checkNodeSet(owner, part string, nodes []int, group string) (err error) {
	if group != "" {
		g := o.GetGroup(group)
		if g == nil {
			return chk.Err("%q references missing group %q", owner, group)
		}
		if g.Kind != "nodes" {
			return chk.Err("%q references group %q which is not a nodes group", owner, group)
		}
		return
	}
	prt := o.GetPart(part)
	if prt == nil {
		return chk.Err("%q references missing part %q", owner, part)
	}
	if len(nodes) == 0 {
		return chk.Err("%q has no target nodes", owner)
	}
	for _, id := range nodes {
		if prt.GetNode(id) == nil {
			return chk.Err("%q references missing node %d of part %q", owner, id, part)
		}
	}
	return
}

// ResolveNodeSet returns the part and node ids targeted by a node set
// specification, resolving groups
func (o *Model) ResolveNodeSet(part string, nodes []int, group string) (prt *Part, ids []int, err error) {
	if group != "" {
		g := o.GetGroup(group)
		if g == nil || g.Kind != "nodes" {
			return nil, nil, chk.Err("cannot resolve nodes group %q", group)
		}
		part, nodes = g.Part, g.Ids
	}
	prt = o.GetPart(part)
	if prt == nil {
		return nil, nil, chk.Err("cannot resolve part %q", part)
	}
	return prt, nodes, nil
}

// Validate checks the model for dangling references, duplicate identifiers and
// invalid definitions. It must succeed before any backend is invoked.
func (o *Model) Validate() (err error) {
	if len(o.Parts) == 0 {
		return chk.Err("model %q has no parts", o.Name)
	}
	for _, prt := range o.Parts {
		if prt.Rigid && prt.GetNode(prt.RefNode) == nil {
			return chk.Err("rigid part %q references missing node %d", prt.Name, prt.RefNode)
		}
		for _, ele := range prt.Elems {
			if ele.Sec == "" {
				continue
			}
			s := o.Secs.Get(ele.Sec)
			if s == nil {
				return chk.Err("element %d of part %q references missing section %q", ele.Id, prt.Name, ele.Sec)
			}
			if o.Mats.Get(s.Mat) == nil {
				return chk.Err("section %q references missing material %q", s.Name, s.Mat)
			}
		}
	}
	for _, g := range o.Groups {
		if err = g.check(o); err != nil {
			return
		}
	}
	for _, bc := range o.Bcs {
		if err = bc.check(o); err != nil {
			return
		}
	}
	for _, ic := range o.Ics {
		if err = ic.check(o); err != nil {
			return
		}
	}
	for _, c := range o.Constraints {
		if err = c.check(o); err != nil {
			return
		}
	}
	for _, r := range o.Releases {
		if err = r.check(o); err != nil {
			return
		}
	}
	return
}

// Volume returns the total volume of the model: solids by geometry, surface
// elements by area times section thickness, line elements by length times
// section area
func (o *Model) Volume() (vol float64, err error) {
	for _, prt := range o.Parts {
		for _, ele := range prt.Elems {
			et, err := GetEType(ele.Type)
			if err != nil {
				return 0, err
			}
			switch et.Geo {
			case "volume":
				v, err := prt.ElemVolume(ele)
				if err != nil {
					return 0, err
				}
				vol += v
			case "surface":
				a, err := prt.ElemArea(ele)
				if err != nil {
					return 0, err
				}
				t, err := o.Secs.Thickness(ele.Sec)
				if err != nil {
					return 0, err
				}
				vol += a * t
			case "line":
				if ele.Type == "spring" || ele.Type == "link" {
					continue
				}
				l, err := prt.ElemLength(ele)
				if err != nil {
					return 0, err
				}
				a, err := o.Secs.Area(ele.Sec)
				if err != nil {
					return 0, err
				}
				vol += l * a
			}
		}
	}
	return
}

// Init rebuilds all derived data; e.g. after decoding from JSON
func (o *Model) Init() (err error) {
	o.pname2idx = make(map[string]int)
	parts := o.Parts
	o.Parts = nil
	for _, prt := range parts {
		err = prt.initDerived()
		if err != nil {
			return
		}
		err = o.AddPart(prt)
		if err != nil {
			return
		}
	}
	err = o.Mats.Init()
	if err != nil {
		return
	}
	return o.Secs.Init()
}

// WriteJSON writes the model to a JSON file
func (o *Model) WriteJSON(fn string) (err error) {
	b, err := o.ToJSON()
	if err != nil {
		return
	}
	io.WriteStringToFileD(filepath.Dir(fn), filepath.Base(fn), io.Sf("%s\n", b))
	return
}

// ReadJSON reads a model from a JSON file and rebuilds all derived data
func ReadJSON(fn string) (o *Model, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read model file %q", fn)
	}
	o = new(Model)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal model file %q:\n%v", fn, err)
	}
	err = o.Init()
	if err != nil {
		return nil, err
	}
	return
}

// FromJSON decodes a model from raw JSON data and rebuilds all derived data
func FromJSON(b []byte) (o *Model, err error) {
	o = new(Model)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal model:\n%v", err)
	}
	err = o.Init()
	if err != nil {
		return nil, err
	}
	return
}

// ToJSON encodes the model as raw JSON data
func (o *Model) ToJSON() (b []byte, err error) {
	b, err = json.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, chk.Err("cannot marshal model %q:\n%v", o.Name, err)
	}
	return
}
