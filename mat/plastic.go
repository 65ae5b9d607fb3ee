// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/dbf"
)

// ElastPlastic implements elastic perfectly-plastic / linear hardening
// materials based on a von Mises yield surface
type ElastPlastic struct {

	// parameters
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	Rho float64 // density
	Fy  float64 // yield stress
	H   float64 // hardening modulus; 0 means perfectly plastic

	// derived
	G float64 // shear modulus
}

// add model to factory
func init() {
	allocators["elast-plastic"] = func() Model { return new(ElastPlastic) }
}

// Init initialises this structure
func (o *ElastPlastic) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.E, "E", "E parameter. ElastPlastic model")
	prms.Connect(&o.Nu, "nu", "nu parameter. ElastPlastic model")
	prms.Connect(&o.Rho, "rho", "rho parameter. ElastPlastic model")
	prms.Connect(&o.Fy, "fy", "fy parameter. ElastPlastic model")
	prms.Connect(&o.H, "H", "H parameter. ElastPlastic model")
	if o.E <= 0 {
		return chk.Err("E must be positive. E=%g is invalid", o.E)
	}
	if o.Fy <= 0 {
		return chk.Err("fy must be positive. fy=%g is invalid", o.Fy)
	}
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}

// GetPrms gets (an example of) parameters
func (o *ElastPlastic) GetPrms() dbf.Params {
	return dbf.Params{
		{N: "E", V: o.E},
		{N: "nu", V: o.Nu},
		{N: "rho", V: o.Rho},
		{N: "fy", V: o.Fy},
		{N: "H", V: o.H},
	}
}

// GetRho returns density
func (o *ElastPlastic) GetRho() float64 { return o.Rho }
