// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/dbf"
)

// Stiff implements a practically rigid elastic material: a plain isotropic
// law with the Young's modulus magnified by a large factor
type Stiff struct {
	ElastIso
	Factor float64 // magnification factor for E
}

// add model to factory
func init() {
	allocators["stiff"] = func() Model { return &Stiff{Factor: 1e6} }
}

// Init initialises this structure
func (o *Stiff) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.Factor, "factor", "factor parameter. Stiff model")
	err = o.ElastIso.Init(prms)
	if err != nil {
		return
	}
	o.E *= o.Factor
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}

// Concrete implements concrete with compressive strength derived stiffness
type Concrete struct {

	// parameters
	Fck float64 // characteristic compressive strength
	Nu  float64 // Poisson's coefficient
	Rho float64 // density
	E   float64 // Young's modulus; estimated from fck when not given
}

// add model to factory
func init() {
	allocators["concrete"] = func() Model { return new(Concrete) }
}

// Init initialises this structure
func (o *Concrete) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.Fck, "fck", "fck parameter. Concrete model")
	prms.Connect(&o.Nu, "nu", "nu parameter. Concrete model")
	prms.Connect(&o.Rho, "rho", "rho parameter. Concrete model")
	prms.Connect(&o.E, "E", "E parameter. Concrete model")
	if o.Fck <= 0 {
		return chk.Err("fck must be positive. fck=%g is invalid", o.Fck)
	}
	if o.E <= 0 {
		// secant modulus per EN 1992-1-1 Table 3.1 with fcm = fck + 8 MPa [Pa]
		o.E = 22e9 * math.Pow((o.Fck/1e6+8.0)/10.0, 0.3)
	}
	return
}

// GetPrms gets (an example of) parameters
func (o *Concrete) GetPrms() dbf.Params {
	return dbf.Params{
		{N: "fck", V: o.Fck},
		{N: "nu", V: o.Nu},
		{N: "rho", V: o.Rho},
		{N: "E", V: o.E},
	}
}

// GetRho returns density
func (o *Concrete) GetRho() float64 { return o.Rho }

// Timber implements structural timber as an orthotropic elastic material.
// The grain runs along the y-axis: E0mean applies parallel to the grain and
// E90mean perpendicular to it. Characteristic strengths are carried along for
// capacity checks but do not enter the elastic law.
type Timber struct {
	ElastOrtho

	// parameters
	E0m  float64 // mean modulus of elasticity parallel to the grain
	E90m float64 // mean modulus of elasticity perpendicular to the grain
	Gm   float64 // mean shear modulus
	Vlt  float64 // Poisson's coefficient longitudinal/transverse
	Vtt  float64 // Poisson's coefficient transverse/transverse
	Fmk  float64 // characteristic bending strength
	Ft0k float64 // characteristic tensile strength parallel to the grain
	Fc0k float64 // characteristic compressive strength parallel to the grain
	Fvk  float64 // characteristic shear strength
}

// add model to factory
func init() {
	allocators["timber"] = func() Model { return new(Timber) }
}

// Init initialises this structure
func (o *Timber) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.E0m, "E0m", "E0m parameter. Timber model")
	prms.Connect(&o.E90m, "E90m", "E90m parameter. Timber model")
	prms.Connect(&o.Gm, "Gm", "Gm parameter. Timber model")
	prms.Connect(&o.Vlt, "vlt", "vlt parameter. Timber model")
	prms.Connect(&o.Vtt, "vtt", "vtt parameter. Timber model")
	prms.Connect(&o.Fmk, "fmk", "fmk parameter. Timber model")
	prms.Connect(&o.Ft0k, "ft0k", "ft0k parameter. Timber model")
	prms.Connect(&o.Fc0k, "fc0k", "fc0k parameter. Timber model")
	prms.Connect(&o.Fvk, "fvk", "fvk parameter. Timber model")
	prms.Connect(&o.Rho, "rho", "rho parameter. Timber model")
	if o.E0m <= 0 || o.E90m <= 0 || o.Gm <= 0 {
		return chk.Err("timber moduli must be positive. E0m=%g, E90m=%g, Gm=%g are invalid", o.E0m, o.E90m, o.Gm)
	}
	o.Ex, o.Ey, o.Ez = o.E90m, o.E0m, o.E90m
	o.Vxy = o.Vlt * o.E90m / o.E0m
	o.Vyz = o.Vlt
	o.Vzx = o.Vtt
	o.Gxy, o.Gyz, o.Gzx = o.Gm, o.Gm, o.Gm
	return
}

// GetPrms gets (an example of) parameters
func (o *Timber) GetPrms() dbf.Params {
	return dbf.Params{
		{N: "E0m", V: o.E0m}, {N: "E90m", V: o.E90m}, {N: "Gm", V: o.Gm},
		{N: "vlt", V: o.Vlt}, {N: "vtt", V: o.Vtt},
		{N: "fmk", V: o.Fmk}, {N: "ft0k", V: o.Ft0k}, {N: "fc0k", V: o.Fc0k}, {N: "fvk", V: o.Fvk},
		{N: "rho", V: o.Rho},
	}
}

// User implements user-defined materials handled by a solver subroutine.
// The parameters are passed through to the backend untouched.
type User struct {
	Rho  float64    // density
	Prms dbf.Params // raw parameters for the subroutine
}

// add model to factory
func init() {
	allocators["user"] = func() Model { return new(User) }
}

// Init initialises this structure
func (o *User) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.Rho, "rho", "rho parameter. User model")
	o.Prms = prms
	return
}

// GetPrms gets (an example of) parameters
func (o *User) GetPrms() dbf.Params { return o.Prms }

// GetRho returns density
func (o *User) GetRho() float64 { return o.Rho }
