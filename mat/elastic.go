// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/dbf"
)

// ElastIso implements linear elastic isotropic materials
type ElastIso struct {

	// parameters
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	Rho float64 // density

	// derived
	G   float64 // shear modulus
	Lam float64 // Lamé's first parameter
}

// add model to factory
func init() {
	allocators["elast-iso"] = func() Model { return new(ElastIso) }
}

// Init initialises this structure
func (o *ElastIso) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.E, "E", "E parameter. ElastIso model")
	prms.Connect(&o.Nu, "nu", "nu parameter. ElastIso model")
	prms.Connect(&o.Rho, "rho", "rho parameter. ElastIso model")
	if o.E <= 0 {
		return chk.Err("E must be positive. E=%g is invalid", o.E)
	}
	if o.Nu < 0 || o.Nu >= 0.5 {
		return chk.Err("nu must be in [0, 0.5). nu=%g is invalid", o.Nu)
	}
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	o.Lam = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	return
}

// GetPrms gets (an example of) parameters
func (o *ElastIso) GetPrms() dbf.Params {
	return dbf.Params{
		{N: "E", V: o.E},
		{N: "nu", V: o.Nu},
		{N: "rho", V: o.Rho},
	}
}

// GetRho returns density
func (o *ElastIso) GetRho() float64 { return o.Rho }

// ElastOrtho implements linear elastic orthotropic materials
type ElastOrtho struct {

	// parameters
	Ex, Ey, Ez    float64 // Young's moduli
	Vxy, Vyz, Vzx float64 // Poisson's coefficients
	Gxy, Gyz, Gzx float64 // shear moduli
	Rho           float64 // density
}

// add model to factory
func init() {
	allocators["elast-ortho"] = func() Model { return new(ElastOrtho) }
}

// Init initialises this structure
func (o *ElastOrtho) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.Ex, "Ex", "Ex parameter. ElastOrtho model")
	prms.Connect(&o.Ey, "Ey", "Ey parameter. ElastOrtho model")
	prms.Connect(&o.Ez, "Ez", "Ez parameter. ElastOrtho model")
	prms.Connect(&o.Vxy, "vxy", "vxy parameter. ElastOrtho model")
	prms.Connect(&o.Vyz, "vyz", "vyz parameter. ElastOrtho model")
	prms.Connect(&o.Vzx, "vzx", "vzx parameter. ElastOrtho model")
	prms.Connect(&o.Gxy, "Gxy", "Gxy parameter. ElastOrtho model")
	prms.Connect(&o.Gyz, "Gyz", "Gyz parameter. ElastOrtho model")
	prms.Connect(&o.Gzx, "Gzx", "Gzx parameter. ElastOrtho model")
	prms.Connect(&o.Rho, "rho", "rho parameter. ElastOrtho model")
	if o.Ex <= 0 || o.Ey <= 0 || o.Ez <= 0 {
		return chk.Err("Young's moduli must be positive. Ex=%g, Ey=%g, Ez=%g are invalid", o.Ex, o.Ey, o.Ez)
	}
	return
}

// GetPrms gets (an example of) parameters
func (o *ElastOrtho) GetPrms() dbf.Params {
	return dbf.Params{
		{N: "Ex", V: o.Ex}, {N: "Ey", V: o.Ey}, {N: "Ez", V: o.Ez},
		{N: "vxy", V: o.Vxy}, {N: "vyz", V: o.Vyz}, {N: "vzx", V: o.Vzx},
		{N: "Gxy", V: o.Gxy}, {N: "Gyz", V: o.Gyz}, {N: "Gzx", V: o.Gzx},
		{N: "rho", V: o.Rho},
	}
}

// GetRho returns density
func (o *ElastOrtho) GetRho() float64 { return o.Rho }
