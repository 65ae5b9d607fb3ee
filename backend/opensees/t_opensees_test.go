// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opensees

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/fea2/compas-fea2/backend"
	"github.com/fea2/compas-fea2/dbf"
	"github.com/fea2/compas-fea2/mat"
	"github.com/fea2/compas-fea2/model"
	"github.com/fea2/compas-fea2/problem"
	"github.com/fea2/compas-fea2/sec"
)

// buildFrame returns a validated problem: a two-node cantilever beam with a
// transverse tip load
func buildFrame(tst *testing.T) *problem.Problem {
	m := model.New("cantilever")
	prt := model.NewPart("frame")
	prt.AddNode(model.NewNode(1, 0, 0, 0))
	prt.AddNode(model.NewNode(2, 2, 0, 0))
	ele, err := model.NewElem(1, "beam", []int{1, 2}, "girder")
	if err != nil {
		tst.Fatalf("NewElem failed: %v", err)
	}
	prt.AddElem(ele)
	m.AddPart(prt)
	m.Mats.Add(&mat.Material{Name: "steel", Model: "elast-iso",
		Prms: dbf.Params{{N: "E", V: 210e9}, {N: "nu", V: 0.3}, {N: "rho", V: 7850}}})
	m.Secs.Add(&sec.Section{Name: "girder", Kind: "rect",
		Prms: dbf.Params{{N: "b", V: 0.1}, {N: "h", V: 0.2}}, Mat: "steel"})
	m.Bcs = append(m.Bcs, &model.EssentialBc{Name: "root", Type: "fix", Part: "frame", Nodes: []int{1}})

	p := problem.New("cantilever", m)
	stp := problem.NewStaticStep("pushdown")
	stp.Loads = append(stp.Loads, &problem.Load{Name: "tip", Type: "node",
		Keys: []string{"fz"}, Vals: []float64{-1000}, Part: "frame", Nodes: []int{2}})
	stp.Hists = append(stp.Hists, &problem.HistoryOutput{Name: "tip-uz", Key: "u",
		Part: "frame", Node: 2, Dof: "uz"})
	if err := p.AddStep(stp); err != nil {
		tst.Fatalf("AddStep failed: %v", err)
	}
	if err := p.Validate(); err != nil {
		tst.Fatalf("Validate failed: %v", err)
	}
	return p
}

func Test_oseeswrite01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oseeswrite01. tcl script")

	p := buildFrame(tst)
	dir := tst.TempDir()
	run := &Runner{Exe: "OpenSees"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	script, err := os.ReadFile(filepath.Join(dir, "cantilever.tcl"))
	if err != nil {
		tst.Errorf("cannot read script: %v\n", err)
		return
	}
	s := string(script)
	for _, want := range []string{
		"model basic -ndm 3 -ndf 6",
		"node 1 0 0 0",
		"node 2 2 0 0",
		"uniaxialMaterial Elastic 1 2.1e+11",
		"geomTransf Linear 1 0 0 1",
		"element elasticBeamColumn 1 1 2",
		"fix 1 1 1 1 1 1 1",
		"recorder Node -file cantilever_u.out -time -nodeRange 1 2 -dof 1 2 3 disp",
		"recorder Node -file cantilever_rf.out -time -nodeRange 1 2 -dof 1 2 3 reaction",
		"pattern Plain 1 1 {",
		"load 2 0 0 -1000 0 0 0",
		"integrator LoadControl 1",
		"analysis Static",
		"analyze 1",
	} {
		if !strings.Contains(s, want) {
			tst.Errorf("script is missing %q\n", want)
			return
		}
	}
}

func Test_oseesparse01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oseesparse01. recorder files")

	p := buildFrame(tst)
	dir := tst.TempDir()
	run := &Runner{Exe: "OpenSees"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	io.WriteStringToFileD(dir, "cantilever_u.out", "1.0 0 0 0 0 0 -0.0019 \n")
	io.WriteStringToFileD(dir, "cantilever_rf.out", "1.0 0 0 1000 0 0 0 \n")

	res, err := run.ReadResults(p, dir)
	if err != nil {
		tst.Errorf("ReadResults failed: %v\n", err)
		return
	}
	sr, err := res.Step("pushdown")
	if err != nil {
		tst.Errorf("Step failed: %v\n", err)
		return
	}
	chk.Array(tst, "u @ frame.2", 1e-12, sr.Fields["u"].Get("frame", 2), []float64{0, 0, -0.0019})
	chk.Array(tst, "rf @ frame.1", 1e-12, sr.Fields["rf"].Get("frame", 1), []float64{0, 0, 1000})

	h, ok := sr.Hists["tip-uz"]
	if !ok {
		tst.Errorf("history tip-uz is missing\n")
		return
	}
	chk.Float64(tst, "tip-uz last", 1e-12, h.Last(), -0.0019)
}

func Test_oseesparse02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oseesparse02. recorder errors")

	p := buildFrame(tst)
	dir := tst.TempDir()
	run := &Runner{Exe: "OpenSees"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	// missing recorder file
	_, err := run.ReadResults(p, dir)
	var perr *backend.ParseError
	if !errors.As(err, &perr) {
		tst.Errorf("missing recorder must yield ParseError; got %v\n", err)
		return
	}

	// wrong column count
	io.WriteStringToFileD(dir, "cantilever_u.out", "1.0 0 0\n")
	io.WriteStringToFileD(dir, "cantilever_rf.out", "1.0 0 0 1000 0 0 0\n")
	_, err = run.ReadResults(p, dir)
	if !errors.As(err, &perr) {
		tst.Errorf("short row must yield ParseError; got %v\n", err)
		return
	}
	io.Pf("%v\n", perr)
}

func Test_oseesmass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oseesmass01. mass element without section")

	// a mass element may omit its section; the writer must report this as an
	// error instead of crashing
	p := buildFrame(tst)
	prt := p.Model.GetPart("frame")
	ele, err := model.NewElem(2, "mass", []int{2}, "")
	if err != nil {
		tst.Fatalf("NewElem failed: %v", err)
	}
	if err := prt.AddElem(ele); err != nil {
		tst.Fatalf("AddElem failed: %v", err)
	}
	if err := p.Validate(); err != nil {
		tst.Fatalf("Validate failed: %v", err)
	}

	dir := tst.TempDir()
	run := &Runner{Exe: "OpenSees"}
	err = run.WriteInput(p, dir)
	if err == nil {
		tst.Errorf("WriteInput must fail for a mass element without section\n")
		return
	}
	io.Pf("%v\n", err)
}

func Test_oseesharmonic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oseesharmonic01. sinusoidal load pattern")

	p := buildFrame(tst)
	stp := problem.NewDynamicStep("shaking")
	stp.Loads = append(stp.Loads, &problem.Load{Name: "exciter", Type: "harmonic", Freq: 5,
		Keys: []string{"fz"}, Vals: []float64{-100}, Part: "frame", Nodes: []int{2}})
	if err := p.AddStep(stp); err != nil {
		tst.Fatalf("AddStep failed: %v", err)
	}
	if err := p.Validate(); err != nil {
		tst.Fatalf("Validate failed: %v", err)
	}

	dir := tst.TempDir()
	run := &Runner{Exe: "OpenSees"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}
	script, err := os.ReadFile(filepath.Join(dir, "cantilever.tcl"))
	if err != nil {
		tst.Errorf("cannot read script: %v\n", err)
		return
	}
	s := string(script)
	if !strings.Contains(s, "timeSeries Trig 2 0.0 1 0.2") {
		tst.Errorf("script is missing the sinusoidal time series\n")
		return
	}
	if !strings.Contains(s, "pattern Plain 2 2 {") {
		tst.Errorf("script is missing the harmonic load pattern\n")
		return
	}

	// harmonic loads outside of a dynamic step are rejected
	p2 := buildFrame(tst)
	p2.Steps[0].Loads = append(p2.Steps[0].Loads, &problem.Load{Name: "exciter", Type: "harmonic",
		Freq: 5, Keys: []string{"fz"}, Vals: []float64{-100}, Part: "frame", Nodes: []int{2}})
	err = run.WriteInput(p2, tst.TempDir())
	if err == nil {
		tst.Errorf("WriteInput must reject harmonic loads in a static step\n")
		return
	}
	io.Pf("%v\n", err)
}

func Test_oseesmodal01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oseesmodal01. frequencies from eigen output")

	p := buildFrame(tst)
	stp := problem.NewModalStep("modes")
	if err := p.AddStep(stp); err != nil {
		tst.Fatalf("AddStep failed: %v", err)
	}
	dir := tst.TempDir()
	run := &Runner{Exe: "OpenSees"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	s, err := os.ReadFile(filepath.Join(dir, "cantilever.tcl"))
	if err != nil {
		tst.Errorf("cannot read script: %v\n", err)
		return
	}
	if !strings.Contains(string(s), "set eigs [eigen 6]") {
		tst.Errorf("script is missing the eigen command\n")
		return
	}

	io.WriteStringToFileD(dir, "cantilever_u.out", "1.0 0 0 0 0 0 -0.0019\n")
	io.WriteStringToFileD(dir, "cantilever_rf.out", "1.0 0 0 1000 0 0 0\n")
	io.WriteStringToFileD(dir, "cantilever_eigs.out", "12.5\n48.1\n")

	res, err := run.ReadResults(p, dir)
	if err != nil {
		tst.Errorf("ReadResults failed: %v\n", err)
		return
	}
	sr, err := res.Step("modes")
	if err != nil {
		tst.Errorf("Step failed: %v\n", err)
		return
	}
	chk.Array(tst, "frequencies", 1e-12, sr.Freqs, []float64{12.5, 48.1})
}
