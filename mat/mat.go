// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mat implements the database of constitutive material models.
// Materials are parametric property bundles shared by reference across many
// elements; the actual numerical treatment of each law is delegated to the
// external solver backends.
package mat

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/dbf"
)

// Model defines the interface for material models
type Model interface {
	Init(prms dbf.Params) error // initialises model with parameters
	GetPrms() dbf.Params        // gets (an example of) parameters
	GetRho() float64            // returns density
}

// allocators holds all available model allocators
var allocators = make(map[string]func() Model)

// New returns a new material model from the factory
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("material model %q is not available", name)
	}
	return allocator(), nil
}

// Material holds one material definition: a named reference to a model plus
// its parameters
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material; unique within database
	Model string     `json:"model"` // name of model. ex: "elast-iso", "elast-plastic"
	Prms  dbf.Params `json:"prms"`  // model parameters

	// derived
	Mdl Model `json:"-"` // initialised model instance
}

// Init allocates and initialises the model instance
func (o *Material) Init() (err error) {
	o.Mdl, err = New(o.Model)
	if err != nil {
		return chk.Err("material %q: %v", o.Name, err)
	}
	err = o.Mdl.Init(o.Prms)
	if err != nil {
		return chk.Err("cannot initialise model of material %q:\n%v", o.Name, err)
	}
	return
}

// MatsData holds materials
type MatsData []*Material

// Db implements a database of materials keyed by name
type Db struct {

	// input
	Materials MatsData `json:"materials"` // all materials

	// derived
	byname map[string]*Material // maps name to material
}

// Init initialises all materials and builds the name index. Duplicate names
// are rejected.
func (o *Db) Init() (err error) {
	o.byname = make(map[string]*Material)
	for _, m := range o.Materials {
		if _, ok := o.byname[m.Name]; ok {
			return chk.Err("material %q is defined twice", m.Name)
		}
		err = m.Init()
		if err != nil {
			return
		}
		o.byname[m.Name] = m
	}
	return
}

// Add appends a material and initialises it
func (o *Db) Add(m *Material) (err error) {
	if o.byname == nil {
		o.byname = make(map[string]*Material)
	}
	if _, ok := o.byname[m.Name]; ok {
		return chk.Err("material %q is defined twice", m.Name)
	}
	err = m.Init()
	if err != nil {
		return
	}
	o.Materials = append(o.Materials, m)
	o.byname[m.Name] = m
	return
}

// Get returns a material by name. Returns nil if not found.
func (o *Db) Get(name string) *Material {
	return o.byname[name]
}

// ReadMat reads a materials database from a JSON file
func ReadMat(fn string) (mdb *Db, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read materials file %q", fn)
	}
	mdb = new(Db)
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q:\n%v", fn, err)
	}
	err = mdb.Init()
	if err != nil {
		return nil, err
	}
	return
}
