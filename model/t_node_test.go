// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_node01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("node01. coordinates and dof defaults")

	nod := NewNode(1, 1.0, 2.0, 3.0)
	io.Pforan("%v\n", nod)
	chk.Float64(tst, "x", 1e-17, nod.X(), 1.0)
	chk.Float64(tst, "y", 1e-17, nod.Y(), 2.0)
	chk.Float64(tst, "z", 1e-17, nod.Z(), 3.0)
	chk.Array(tst, "c", 1e-17, nod.C, []float64{1.0, 2.0, 3.0})

	// all six dofs active by default, no mass
	for _, key := range DofKeys {
		if !nod.Active(key) {
			tst.Errorf("dof %q must be active on a fresh node\n", key)
			return
		}
	}
	chk.Float64(tst, "mass", 1e-17, nod.Mass, 0)
}

func Test_node02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("node02. dof activation switches")

	nod := NewNode(7, 0, 0, 0)
	err := nod.Deactivate("rz")
	if err != nil {
		tst.Errorf("Deactivate failed: %v\n", err)
		return
	}
	if nod.Active("rz") {
		tst.Errorf("rz must be inactive after Deactivate\n")
		return
	}
	if !nod.Active("ux") {
		tst.Errorf("ux must remain active\n")
		return
	}

	// deactivating twice keeps a single entry
	nod.Deactivate("rz")
	chk.Ints(tst, "len(inact)", []int{len(nod.Inact)}, []int{1})

	nod.Activate("rz")
	if !nod.Active("rz") {
		tst.Errorf("rz must be active after Activate\n")
		return
	}

	// unknown keys are rejected
	err = nod.Deactivate("tt")
	if err == nil {
		tst.Errorf("Deactivate must fail with unknown dof key\n")
		return
	}
	io.Pf("%v\n", err)
}
