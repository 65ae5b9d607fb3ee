// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbf

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01. find, connect and get values")

	prms := Params{
		{N: "E", V: 210e9},
		{N: "nu", V: 0.3},
	}

	if prms.Find("E") == nil {
		tst.Errorf("cannot find parameter E\n")
		return
	}
	if prms.Find("rho") != nil {
		tst.Errorf("Find must return nil for missing parameter\n")
		return
	}

	E, nu, rho := 0.0, 0.0, 7850.0
	prms.Connect(&E, "E", "Young's modulus")
	prms.Connect(&nu, "nu", "Poisson's coefficient")
	prms.Connect(&rho, "rho", "density")
	chk.Float64(tst, "E", 1e-15, E, 210e9)
	chk.Float64(tst, "nu", 1e-15, nu, 0.3)
	chk.Float64(tst, "rho (default kept)", 1e-15, rho, 7850)

	vals, found := prms.GetValues([]string{"E", "rho"})
	chk.Array(tst, "values", 1e-15, vals, []float64{210e9, 0})
	if !found[0] || found[1] {
		tst.Errorf("found flags are wrong: %v\n", found)
		return
	}
}

func Test_params02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params02. json round trip")

	b := []byte(`[{"n": "b", "v": 0.2}, {"n": "h", "v": 0.4}]`)
	var prms Params
	err := json.Unmarshal(b, &prms)
	if err != nil {
		tst.Errorf("cannot unmarshal parameters: %v\n", err)
		return
	}
	h := 0.0
	prms.Connect(&h, "h", "height")
	chk.Float64(tst, "h", 1e-15, h, 0.4)
}
