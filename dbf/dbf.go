// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbf implements databases of named scalar parameters used to define
// material models, section profiles and amplitude functions. Parameters are
// decoded straight from JSON and connected to struct fields by name.
package dbf

import (
	"github.com/cpmech/gosl/io"
)

// P holds one named parameter
type P struct {
	N string  `json:"n"`           // name of parameter. ex: "E", "nu", "rho"
	V float64 `json:"v"`           // value of parameter
	U string  `json:"u,omitempty"` // unit; informative only
}

// Params holds a set of parameters
type Params []*P

// Find returns a parameter by name. Returns nil if not found.
func (o Params) Find(name string) *P {
	for _, p := range o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// Connect copies the value of the named parameter into v. The target is left
// untouched when the parameter is absent, so callers may preset defaults
// before connecting. The usage text documents the receiving quantity.
func (o Params) Connect(v *float64, name, usage string) (found bool) {
	p := o.Find(name)
	if p == nil {
		return false
	}
	*v = p.V
	return true
}

// GetValues returns the values of a set of parameters and flags telling which
// of them were present
func (o Params) GetValues(names []string) (values []float64, found []bool) {
	values = make([]float64, len(names))
	found = make([]bool, len(names))
	for i, name := range names {
		if p := o.Find(name); p != nil {
			values[i] = p.V
			found[i] = true
		}
	}
	return
}

// String returns a one-line representation of the parameter set
func (o Params) String() string {
	l := ""
	for i, p := range o {
		if i > 0 {
			l += " "
		}
		l += io.Sf("%s=%g", p.N, p.V)
	}
	return l
}
