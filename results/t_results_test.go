// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/model"
)

func Test_field01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field01. field queries")

	fld := NewField("nodes", []string{"ux", "uy", "uz"})
	fld.Set("beam", 1, []float64{0, 0, 0})
	fld.Set("beam", 2, []float64{0.1, -0.2, 0.3})
	fld.Set("beam", 3, []float64{0.05, -0.5, 0.1})

	v, err := fld.Value("beam", 2, "uy")
	if err != nil {
		tst.Errorf("Value failed: %v\n", err)
		return
	}
	chk.Float64(tst, "uy @ beam.2", 1e-15, v, -0.2)

	ent, maxabs, err := fld.MaxAbs("uy")
	if err != nil {
		tst.Errorf("MaxAbs failed: %v\n", err)
		return
	}
	chk.String(tst, ent, "beam.3")
	chk.Float64(tst, "max |uy|", 1e-15, maxabs, 0.5)

	if _, err := fld.Value("beam", 9, "ux"); err == nil {
		tst.Errorf("Value with unknown node should have failed\n")
		return
	}
	if _, err := fld.Value("beam", 2, "temp"); err == nil {
		tst.Errorf("Value with unknown component should have failed\n")
		return
	}
}

func Test_reaction01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reaction01. total reaction")

	sr := NewStepResults()
	rf := NewField("nodes", []string{"rfx", "rfy", "rfz"})
	rf.Set("beam", 1, []float64{1, 2, 3})
	rf.Set("beam", 4, []float64{-0.5, 1, 0})
	sr.Fields["rf"] = rf

	sum, err := sr.TotalReaction()
	if err != nil {
		tst.Errorf("TotalReaction failed: %v\n", err)
		return
	}
	chk.Array(tst, "sum rf", 1e-15, sum, []float64{0.5, 3, 3})
}

func Test_combine01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("combine01. linear superposition of steps")

	res := New()
	for i, sname := range []string{"dead", "live"} {
		sr := res.AddStep(sname)
		u := NewField("nodes", []string{"ux", "uy", "uz"})
		u.Set("beam", 1, []float64{0, 0, float64(i + 1)})
		u.Set("beam", 2, []float64{0.1, 0, 2 * float64(i+1)})
		sr.Fields["u"] = u
	}

	sr, err := res.Combine("uls", map[string]float64{"dead": 1.35, "live": 1.5})
	if err != nil {
		tst.Errorf("Combine failed: %v\n", err)
		return
	}
	chk.Array(tst, "uz combined @ beam.1", 1e-15, sr.Fields["u"].Get("beam", 1), []float64{0, 0, 1.35*1 + 1.5*2})
	chk.Array(tst, "uz combined @ beam.2", 1e-15, sr.Fields["u"].Get("beam", 2), []float64{0.1*1.35 + 0.1*1.5, 0, 1.35*2 + 1.5*4})

	if _, err := res.Combine("uls", map[string]float64{"dead": 1}); err == nil {
		tst.Errorf("Combine with existing name should have failed\n")
		return
	}
	if _, err := res.Combine("bad", map[string]float64{"wind": 1.5}); err == nil {
		tst.Errorf("Combine with unknown step should have failed\n")
		return
	}
}

func Test_db01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("db01. save and load results database")

	res := New()
	sr := res.AddStep("static")
	u := NewField("nodes", []string{"ux", "uy", "uz"})
	u.Set("beam", 1, []float64{0, 0, 0})
	u.Set("beam", 2, []float64{0.01, 0, -0.02})
	sr.Fields["u"] = u
	rf := NewField("nodes", []string{"rfx", "rfy", "rfz"})
	rf.Set("beam", 1, []float64{0, 0, 100})
	sr.Fields["rf"] = rf
	sr.Hists["tip-uz"] = &Series{Times: []float64{0, 0.5, 1}, Vals: []float64{0, -0.01, -0.02}}

	srm := res.AddStep("modal")
	srm.Freqs = []float64{12.5, 48.1, 110.9}

	fn := filepath.Join(tst.TempDir(), "results.db")
	db, err := OpenDb(fn)
	if err != nil {
		tst.Errorf("OpenDb failed: %v\n", err)
		return
	}
	defer db.Close()
	if err := db.Save(res); err != nil {
		tst.Errorf("Save failed: %v\n", err)
		return
	}

	got, err := db.Load()
	if err != nil {
		tst.Errorf("Load failed: %v\n", err)
		return
	}
	chk.Ints(tst, "number of steps", []int{len(got.Order)}, []int{2})
	chk.String(tst, got.Order[0], "static")
	chk.String(tst, got.Order[1], "modal")

	gsr, err := got.Step("static")
	if err != nil {
		tst.Errorf("Step failed: %v\n", err)
		return
	}
	chk.Array(tst, "u @ beam.2", 1e-15, gsr.Fields["u"].Get("beam", 2), []float64{0.01, 0, -0.02})
	chk.Array(tst, "rf @ beam.1", 1e-15, gsr.Fields["rf"].Get("beam", 1), []float64{0, 0, 100})
	chk.Array(tst, "hist times", 1e-15, gsr.Hists["tip-uz"].Times, []float64{0, 0.5, 1})
	chk.Float64(tst, "hist last", 1e-15, gsr.Hists["tip-uz"].Last(), -0.02)

	gsm, err := got.Step("modal")
	if err != nil {
		tst.Errorf("Step failed: %v\n", err)
		return
	}
	chk.Array(tst, "frequencies", 1e-15, gsm.Freqs, []float64{12.5, 48.1, 110.9})
}

func Test_locator01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("locator01. closest node and nodes along segment")

	m := model.New("grid")
	p := model.NewPart("plate")
	id := 1
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			if err := p.AddNode(model.NewNode(id, float64(i), float64(j), 0)); err != nil {
				tst.Errorf("AddNode failed: %v\n", err)
				return
			}
			id++
		}
	}
	if err := m.AddPart(p); err != nil {
		tst.Errorf("AddPart failed: %v\n", err)
		return
	}

	loc, err := NewLocator(m)
	if err != nil {
		tst.Errorf("NewLocator failed: %v\n", err)
		return
	}

	part, nid, err := loc.Closest([]float64{1.1, 0.9, 0})
	if err != nil {
		tst.Errorf("Closest failed: %v\n", err)
		return
	}
	chk.String(tst, part, "plate")
	chk.Ints(tst, "closest node", []int{nid}, []int{5}) // node at (1,1,0)

	_, ids, err := loc.AlongSegment([]float64{0, 0, 0}, []float64{2, 0, 0}, 1e-8)
	if err != nil {
		tst.Errorf("AlongSegment failed: %v\n", err)
		return
	}
	chk.Ints(tst, "number of nodes along y=0", []int{len(ids)}, []int{3})
}
