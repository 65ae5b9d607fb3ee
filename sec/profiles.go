// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sec

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/fea2/compas-fea2/dbf"
)

// rectJ returns the torsion constant of a solid rectangle with sides a >= t
func rectJ(a, t float64) float64 {
	r := t / a
	return a * t * t * t * (1.0/3.0 - 0.21*r*(1.0-math.Pow(r, 4)/12.0))
}

func init() {

	// solid rectangle: width b, height h
	AddKind("rect", func(prms dbf.Params) (*Props, error) {
		var b, h float64
		prms.Connect(&b, "b", "b parameter. rect section")
		prms.Connect(&h, "h", "h parameter. rect section")
		if b <= 0 || h <= 0 {
			return nil, chk.Err("rect section must have positive b and h. b=%g, h=%g are invalid", b, h)
		}
		return &Props{
			A:   b * h,
			Ixx: b * h * h * h / 12.0,
			Iyy: h * b * b * b / 12.0,
			J:   rectJ(utl.Max(b, h), utl.Min(b, h)),
		}, nil
	})

	// solid circle: diameter d
	AddKind("circ", func(prms dbf.Params) (*Props, error) {
		var d float64
		prms.Connect(&d, "d", "d parameter. circ section")
		if d <= 0 {
			return nil, chk.Err("circ section must have positive d. d=%g is invalid", d)
		}
		i := math.Pi * math.Pow(d, 4) / 64.0
		return &Props{A: math.Pi * d * d / 4.0, Ixx: i, Iyy: i, J: 2.0 * i}, nil
	})

	// hollow circle: outer diameter d, wall thickness t
	AddKind("pipe", func(prms dbf.Params) (*Props, error) {
		var d, t float64
		prms.Connect(&d, "d", "d parameter. pipe section")
		prms.Connect(&t, "t", "t parameter. pipe section")
		if d <= 0 || t <= 0 || 2.0*t >= d {
			return nil, chk.Err("pipe section must have positive d and t with 2t < d. d=%g, t=%g are invalid", d, t)
		}
		ro, ri := d/2.0, d/2.0-t
		i := math.Pi * (math.Pow(ro, 4) - math.Pow(ri, 4)) / 4.0
		return &Props{A: math.Pi * (ro*ro - ri*ri), Ixx: i, Iyy: i, J: 2.0 * i}, nil
	})

	// hollow rectangle: width b, height h, web tw, flange tf
	AddKind("box", func(prms dbf.Params) (*Props, error) {
		var b, h, tw, tf float64
		prms.Connect(&b, "b", "b parameter. box section")
		prms.Connect(&h, "h", "h parameter. box section")
		prms.Connect(&tw, "tw", "tw parameter. box section")
		prms.Connect(&tf, "tf", "tf parameter. box section")
		if b <= 0 || h <= 0 || tw <= 0 || tf <= 0 || 2.0*tw >= b || 2.0*tf >= h {
			return nil, chk.Err("box section dimensions are invalid. b=%g, h=%g, tw=%g, tf=%g", b, h, tw, tf)
		}
		bi, hi := b-2.0*tw, h-2.0*tf
		return &Props{
			A:   b*h - bi*hi,
			Ixx: (b*h*h*h - bi*hi*hi*hi) / 12.0,
			Iyy: (h*b*b*b - hi*bi*bi*bi) / 12.0,
			J:   2.0 * tw * tf * (b - tw) * (b - tw) * (h - tf) * (h - tf) / (b*tw + h*tf - tw*tw - tf*tf),
		}, nil
	})

	// I/H profile: width b, height h, web tw, flange tf
	AddKind("isec", func(prms dbf.Params) (*Props, error) {
		var b, h, tw, tf float64
		prms.Connect(&b, "b", "b parameter. isec section")
		prms.Connect(&h, "h", "h parameter. isec section")
		prms.Connect(&tw, "tw", "tw parameter. isec section")
		prms.Connect(&tf, "tf", "tf parameter. isec section")
		if b <= 0 || h <= 0 || tw <= 0 || tf <= 0 || tw >= b || 2.0*tf >= h {
			return nil, chk.Err("isec section dimensions are invalid. b=%g, h=%g, tw=%g, tf=%g", b, h, tw, tf)
		}
		hw := h - 2.0*tf
		return &Props{
			A:   2.0*b*tf + hw*tw,
			Ixx: (b*h*h*h - (b-tw)*hw*hw*hw) / 12.0,
			Iyy: (2.0*tf*b*b*b + hw*tw*tw*tw) / 12.0,
			J:   (2.0*b*tf*tf*tf + (h-tf)*tw*tw*tw) / 3.0,
		}, nil
	})

	// L profile: legs b and h, thickness t
	AddKind("angle", func(prms dbf.Params) (*Props, error) {
		var b, h, t float64
		prms.Connect(&b, "b", "b parameter. angle section")
		prms.Connect(&h, "h", "h parameter. angle section")
		prms.Connect(&t, "t", "t parameter. angle section")
		if b <= 0 || h <= 0 || t <= 0 || t >= b || t >= h {
			return nil, chk.Err("angle section dimensions are invalid. b=%g, h=%g, t=%g", b, h, t)
		}
		return &Props{
			A:   t * (b + h - t),
			Ixx: (t*h*h*h + (b-t)*t*t*t) / 12.0,
			Iyy: (t*b*b*b + (h-t)*t*t*t) / 12.0,
			J:   (b + h - t) * t * t * t / 3.0,
		}, nil
	})

	// properties given directly; e.g. imported from a profiles table
	AddKind("generic", func(prms dbf.Params) (*Props, error) {
		p := new(Props)
		prms.Connect(&p.A, "A", "A parameter. generic section")
		prms.Connect(&p.Ixx, "Ixx", "Ixx parameter. generic section")
		prms.Connect(&p.Iyy, "Iyy", "Iyy parameter. generic section")
		prms.Connect(&p.J, "J", "J parameter. generic section")
		if p.A <= 0 {
			return nil, chk.Err("generic section must have positive A. A=%g is invalid", p.A)
		}
		return p, nil
	})

	// truss/strut/tie bars: area only
	AddKind("truss", func(prms dbf.Params) (*Props, error) {
		p := new(Props)
		prms.Connect(&p.A, "A", "A parameter. truss section")
		if p.A <= 0 {
			return nil, chk.Err("truss section must have positive A. A=%g is invalid", p.A)
		}
		return p, nil
	})

	// shell: thickness
	AddKind("shell", func(prms dbf.Params) (*Props, error) {
		p := new(Props)
		prms.Connect(&p.Th, "t", "t parameter. shell section")
		if p.Th <= 0 {
			return nil, chk.Err("shell section must have positive t. t=%g is invalid", p.Th)
		}
		return p, nil
	})

	// membrane: thickness, no bending
	AddKind("membrane", func(prms dbf.Params) (*Props, error) {
		p := new(Props)
		prms.Connect(&p.Th, "t", "t parameter. membrane section")
		if p.Th <= 0 {
			return nil, chk.Err("membrane section must have positive t. t=%g is invalid", p.Th)
		}
		return p, nil
	})

	// continuum elements: all properties come from the material
	AddKind("solid", func(prms dbf.Params) (*Props, error) {
		return new(Props), nil
	})

	// springs: direct stiffnesses
	AddKind("spring", func(prms dbf.Params) (*Props, error) {
		p := new(Props)
		prms.Connect(&p.Kx, "kx", "kx parameter. spring section")
		prms.Connect(&p.Ky, "ky", "ky parameter. spring section")
		prms.Connect(&p.Kz, "kz", "kz parameter. spring section")
		if p.Kx <= 0 && p.Ky <= 0 && p.Kz <= 0 {
			return nil, chk.Err("spring section must have at least one positive stiffness")
		}
		return p, nil
	})

	// point masses
	AddKind("mass", func(prms dbf.Params) (*Props, error) {
		p := new(Props)
		prms.Connect(&p.M, "m", "m parameter. mass section")
		if p.M <= 0 {
			return nil, chk.Err("mass section must have positive m. m=%g is invalid", p.M)
		}
		return p, nil
	})
}
