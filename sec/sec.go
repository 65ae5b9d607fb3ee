// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sec implements the database of element sections. A section bundles
// the geometric properties assigned to elements and references one material by
// name; both material and section are shared by many elements and never owned
// by a single one.
package sec

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/dbf"
)

// Props holds the derived geometric properties of a section
type Props struct {
	A   float64 // cross-sectional area (line sections)
	Ixx float64 // second moment of area about the local x axis
	Iyy float64 // second moment of area about the local y axis
	J   float64 // torsion constant
	Th  float64 // thickness (surface sections)
	Kx  float64 // spring sections: axial stiffness
	Ky  float64 // spring sections: shear stiffness y
	Kz  float64 // spring sections: shear stiffness z
	M   float64 // mass sections: lumped mass
}

// calculators maps section kinds to property calculators
var calculators = make(map[string]func(prms dbf.Params) (*Props, error))

// AddKind registers a new section kind
func AddKind(kind string, calc func(prms dbf.Params) (*Props, error)) {
	if _, ok := calculators[kind]; ok {
		chk.Panic("cannot add section kind %q because it exists already", kind)
	}
	calculators[kind] = calc
}

// Section holds one section definition
type Section struct {

	// input
	Name string     `json:"name"` // name of section; unique within database
	Kind string     `json:"kind"` // kind of section. ex: "rect", "shell", "solid"
	Mat  string     `json:"mat"`  // name of material
	Prms dbf.Params `json:"prms"` // kind-specific parameters

	// derived
	Props *Props `json:"-"` // computed geometric properties
}

// Init computes the derived properties of this section
func (o *Section) Init() (err error) {
	calc, ok := calculators[o.Kind]
	if !ok {
		return chk.Err("section kind %q is not available", o.Kind)
	}
	o.Props, err = calc(o.Prms)
	if err != nil {
		return chk.Err("cannot initialise section %q:\n%v", o.Name, err)
	}
	if o.Mat == "" {
		return chk.Err("section %q must reference a material", o.Name)
	}
	return
}

// SecsData holds sections
type SecsData []*Section

// Db implements a database of sections keyed by name
type Db struct {

	// input
	Sections SecsData `json:"sections"` // all sections

	// derived
	byname map[string]*Section // maps name to section
}

// Init initialises all sections and builds the name index. Duplicate names
// are rejected.
func (o *Db) Init() (err error) {
	o.byname = make(map[string]*Section)
	for _, s := range o.Sections {
		if _, ok := o.byname[s.Name]; ok {
			return chk.Err("section %q is defined twice", s.Name)
		}
		err = s.Init()
		if err != nil {
			return
		}
		o.byname[s.Name] = s
	}
	return
}

// Add appends a section and initialises it
func (o *Db) Add(s *Section) (err error) {
	if o.byname == nil {
		o.byname = make(map[string]*Section)
	}
	if _, ok := o.byname[s.Name]; ok {
		return chk.Err("section %q is defined twice", s.Name)
	}
	err = s.Init()
	if err != nil {
		return
	}
	o.Sections = append(o.Sections, s)
	o.byname[s.Name] = s
	return
}

// Get returns a section by name. Returns nil if not found.
func (o *Db) Get(name string) *Section {
	return o.byname[name]
}

// Area returns the cross-sectional area of a section
func (o *Db) Area(name string) (float64, error) {
	s := o.Get(name)
	if s == nil {
		return 0, chk.Err("section %q is not in the database", name)
	}
	return s.Props.A, nil
}

// Thickness returns the thickness of a surface section
func (o *Db) Thickness(name string) (float64, error) {
	s := o.Get(name)
	if s == nil {
		return 0, chk.Err("section %q is not in the database", name)
	}
	return s.Props.Th, nil
}

// ReadSec reads a sections database from a JSON file
func ReadSec(fn string) (sdb *Db, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read sections file %q", fn)
	}
	sdb = new(Db)
	err = json.Unmarshal(b, sdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal sections file %q:\n%v", fn, err)
	}
	err = sdb.Init()
	if err != nil {
		return nil, err
	}
	return
}
