// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/fea2/compas-fea2/dbf"
	"github.com/fea2/compas-fea2/mat"
	"github.com/fea2/compas-fea2/sec"
)

// buildBox returns a model with a single part holding one hex8 element of
// size 1x1x1 plus a steel-like material and a solid section
func buildBox(tst *testing.T) *Model {
	m := New("box")
	prt := NewPart("cube")
	coords := [][]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for i, c := range coords {
		if err := prt.AddNode(NewNode(i+1, c[0], c[1], c[2])); err != nil {
			tst.Fatalf("AddNode failed: %v", err)
		}
	}
	ele, err := NewElem(1, "hex8", []int{1, 2, 3, 4, 5, 6, 7, 8}, "block")
	if err != nil {
		tst.Fatalf("NewElem failed: %v", err)
	}
	if err := prt.AddElem(ele); err != nil {
		tst.Fatalf("AddElem failed: %v", err)
	}
	if err := m.AddPart(prt); err != nil {
		tst.Fatalf("AddPart failed: %v", err)
	}
	err = m.Mats.Add(&mat.Material{Name: "steel", Model: "elast-iso",
		Prms: dbf.Params{{N: "E", V: 210e9}, {N: "nu", V: 0.3}, {N: "rho", V: 7850}}})
	if err != nil {
		tst.Fatalf("cannot add material: %v", err)
	}
	err = m.Secs.Add(&sec.Section{Name: "block", Kind: "solid", Mat: "steel"})
	if err != nil {
		tst.Fatalf("cannot add section: %v", err)
	}
	return m
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. validation and volume")

	m := buildBox(tst)
	err := m.Validate()
	if err != nil {
		tst.Errorf("Validate failed: %v\n", err)
		return
	}

	vol, err := m.Volume()
	if err != nil {
		tst.Errorf("Volume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "volume", 1e-14, vol, 1.0)

	prt := m.GetPart("cube")
	chk.Float64(tst, "xmax", 1e-17, prt.Xmax, 1.0)
	chk.Float64(tst, "zmin", 1e-17, prt.Zmin, 0.0)
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. referential integrity within parts")

	prt := NewPart("frame")
	prt.AddNode(NewNode(1, 0, 0, 0))
	prt.AddNode(NewNode(2, 1, 0, 0))

	// duplicate node id
	err := prt.AddNode(NewNode(1, 2, 0, 0))
	if err == nil {
		tst.Errorf("AddNode must fail with duplicate id\n")
		return
	}
	io.Pf("%v\n", err)

	// dangling node reference
	ele, err := NewElem(1, "truss", []int{1, 3}, "bar")
	if err != nil {
		tst.Errorf("NewElem failed: %v\n", err)
		return
	}
	err = prt.AddElem(ele)
	if err == nil {
		tst.Errorf("AddElem must reject elements referencing nodes of other parts\n")
		return
	}
	io.Pf("%v\n", err)

	// wrong number of vertices
	_, err = NewElem(2, "beam", []int{1, 2, 1}, "bar")
	if err == nil {
		tst.Errorf("NewElem must reject beams with 3 vertices\n")
		return
	}
	io.Pf("%v\n", err)
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. json round trip")

	m := buildBox(tst)
	m.Bcs = append(m.Bcs, &EssentialBc{Name: "base", Type: "fix", Part: "cube", Nodes: []int{1, 2, 3, 4}})
	m.Groups = append(m.Groups, &Group{Name: "top", Kind: "nodes", Part: "cube", Ids: []int{5, 6, 7, 8}})
	err := m.Validate()
	if err != nil {
		tst.Errorf("Validate failed: %v\n", err)
		return
	}

	b, err := m.ToJSON()
	if err != nil {
		tst.Errorf("ToJSON failed: %v\n", err)
		return
	}

	m2, err := FromJSON(b)
	if err != nil {
		tst.Errorf("FromJSON failed: %v\n", err)
		return
	}
	err = m2.Validate()
	if err != nil {
		tst.Errorf("Validate of decoded model failed: %v\n", err)
		return
	}

	chk.String(tst, m2.Name, m.Name)
	chk.String(tst, m2.Key, m.Key)
	chk.Ints(tst, "nparts", []int{len(m2.Parts)}, []int{len(m.Parts)})
	chk.Ints(tst, "nnodes", []int{len(m2.Parts[0].Nodes)}, []int{len(m.Parts[0].Nodes)})
	chk.Array(tst, "node1.c", 1e-17, m2.Parts[0].GetNode(1).C, m.Parts[0].GetNode(1).C)

	v1, _ := m.Volume()
	v2, err := m2.Volume()
	if err != nil {
		tst.Errorf("Volume of decoded model failed: %v\n", err)
		return
	}
	chk.Float64(tst, "volume round trip", 1e-14, v2, v1)

	// material models are rebuilt after decoding
	if m2.Mats.Get("steel") == nil || m2.Mats.Get("steel").Mdl == nil {
		tst.Errorf("material model must be rebuilt after decoding\n")
		return
	}
	chk.Float64(tst, "rho", 1e-17, m2.Mats.Get("steel").Mdl.GetRho(), 7850)
}

func Test_model04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model04. constraints couple parts")

	m := New("coupled")
	for _, name := range []string{"left", "right"} {
		prt := NewPart(name)
		prt.AddNode(NewNode(1, 0, 0, 0))
		prt.AddNode(NewNode(2, 1, 0, 0))
		ele, _ := NewElem(1, "truss", []int{1, 2}, "bar")
		prt.AddElem(ele)
		m.AddPart(prt)
	}
	m.Mats.Add(&mat.Material{Name: "alu", Model: "elast-iso",
		Prms: dbf.Params{{N: "E", V: 70e9}, {N: "nu", V: 0.33}, {N: "rho", V: 2700}}})
	m.Secs.Add(&sec.Section{Name: "bar", Kind: "truss", Mat: "alu",
		Prms: dbf.Params{{N: "A", V: 0.01}}})

	m.Constraints = append(m.Constraints, &Constraint{
		Name:   "link",
		Type:   "tie-mpc",
		Master: NodeRef{"left", 2},
		Slaves: []NodeRef{{"right", 1}},
	})
	err := m.Validate()
	if err != nil {
		tst.Errorf("Validate failed: %v\n", err)
		return
	}

	// dangling constraint reference
	m.Constraints[0].Slaves[0].Node = 9
	err = m.Validate()
	if err == nil {
		tst.Errorf("Validate must fail with dangling constraint reference\n")
		return
	}
	io.Pf("%v\n", err)
}
