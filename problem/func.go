// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/fea2/compas-fea2/dbf"
)

// TimeFunc defines a scalar amplitude function of time. The space argument is
// accepted for forward compatibility with spatially varying amplitudes and is
// ignored by all current implementations.
type TimeFunc interface {
	Init(prms dbf.Params) error       // initialises function with parameters
	F(t float64, x []float64) float64 // evaluates the amplitude at time t
}

// funcAllocators holds all available time function allocators
var funcAllocators = map[string]func() TimeFunc{
	"cte":  func() TimeFunc { return &Cte{C: 1} },
	"lin":  func() TimeFunc { return new(Lin) },
	"rmp":  func() TimeFunc { return new(Rmp) },
	"cos":  func() TimeFunc { return &Cos{A: 1} },
	"zero": func() TimeFunc { return new(zeroFunc) },
}

// newTimeFunc returns an initialised time function of the given type
func newTimeFunc(typ string, prms dbf.Params) (fcn TimeFunc, err error) {
	allocator, ok := funcAllocators[typ]
	if !ok {
		return nil, chk.Err("time function type %q is not available", typ)
	}
	fcn = allocator()
	err = fcn.Init(prms)
	if err != nil {
		return nil, err
	}
	return
}

// Cte implements a constant amplitude: f(t) = c
type Cte struct {
	C float64 // constant value
}

// Init initialises this structure
func (o *Cte) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.C, "c", "constant value. Cte function")
	return
}

// F evaluates the amplitude
func (o *Cte) F(t float64, x []float64) float64 { return o.C }

// Lin implements a linear ramp through the origin: f(t) = m * (t - ta)
type Lin struct {
	M  float64 // slope
	Ta float64 // left endpoint
}

// Init initialises this structure
func (o *Lin) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.M, "m", "slope. Lin function")
	prms.Connect(&o.Ta, "ta", "left endpoint. Lin function")
	return
}

// F evaluates the amplitude
func (o *Lin) F(t float64, x []float64) float64 { return o.M * (t - o.Ta) }

// Rmp implements a ramp from ca to cb over [ta, tb], constant outside
type Rmp struct {
	Ca, Cb float64 // values at the endpoints
	Ta, Tb float64 // endpoints; tb defaults to 1
}

// Init initialises this structure
func (o *Rmp) Init(prms dbf.Params) (err error) {
	o.Cb, o.Tb = 1, 1
	prms.Connect(&o.Ca, "ca", "initial value. Rmp function")
	prms.Connect(&o.Cb, "cb", "final value. Rmp function")
	prms.Connect(&o.Ta, "ta", "start time. Rmp function")
	prms.Connect(&o.Tb, "tb", "end time. Rmp function")
	if o.Tb <= o.Ta {
		return chk.Err("ramp interval is empty: ta=%g tb=%g", o.Ta, o.Tb)
	}
	return
}

// F evaluates the amplitude
func (o *Rmp) F(t float64, x []float64) float64 {
	if t <= o.Ta {
		return o.Ca
	}
	if t >= o.Tb {
		return o.Cb
	}
	return o.Ca + (o.Cb-o.Ca)*(t-o.Ta)/(o.Tb-o.Ta)
}

// Cos implements a cosine amplitude: f(t) = a * cos(b*t) + c
type Cos struct {
	A, B, C float64
}

// Init initialises this structure
func (o *Cos) Init(prms dbf.Params) (err error) {
	prms.Connect(&o.A, "a", "amplitude. Cos function")
	prms.Connect(&o.B, "b", "angular frequency. Cos function")
	prms.Connect(&o.C, "c", "offset. Cos function")
	return
}

// F evaluates the amplitude
func (o *Cos) F(t float64, x []float64) float64 { return o.A*math.Cos(o.B*t) + o.C }

// zeroFunc implements the identically zero amplitude
type zeroFunc struct{}

func (o *zeroFunc) Init(prms dbf.Params) error       { return nil }
func (o *zeroFunc) F(t float64, x []float64) float64 { return 0 }

// FuncData holds the definition of one amplitude function of time
type FuncData struct {
	Name string     `json:"name"` // name of function. ex: ramp, pulse
	Type string     `json:"type"` // type of function. ex: cte, lin, rmp, cos
	Prms dbf.Params `json:"prms"` // parameters
}

// FuncsData holds all amplitude functions of a problem
type FuncsData []*FuncData

// Get returns an initialised amplitude function by name. The names "zero" and
// "none" always resolve to the zero function; "one" and the empty name
// resolve to a unit constant.
func (o FuncsData) Get(name string) (fcn TimeFunc, err error) {
	if name == "zero" || name == "none" {
		return new(zeroFunc), nil
	}
	if name == "one" || name == "" {
		return newTimeFunc("cte", dbf.Params{{N: "c", V: 1}})
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err = newTimeFunc(f.Type, f.Prms)
			if err != nil {
				err = chk.Err("amplitude %q is broken:\n%v", name, err)
			}
			return
		}
	}
	err = chk.Err("there is no amplitude named %q", name)
	return
}

// String prints one function
func (o FuncData) String() string {
	return io.Sf("amplitude %q type=%q prms=[%v]", o.Name, o.Type, o.Prms)
}
