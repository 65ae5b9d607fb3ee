// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calculix

import (
	"context"
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

// buildPull returns a validated problem: one truss bar pulled at its tip
func buildPull(tst *testing.T) *problem.Problem {
	m := model.New("bar")
	prt := model.NewPart("bar")
	prt.AddNode(model.NewNode(1, 0, 0, 0))
	prt.AddNode(model.NewNode(2, 1, 0, 0))
	ele, err := model.NewElem(1, "truss", []int{1, 2}, "rod")
	if err != nil {
		tst.Fatalf("NewElem failed: %v", err)
	}
	prt.AddElem(ele)
	m.AddPart(prt)
	m.Mats.Add(&mat.Material{Name: "steel", Model: "elast-iso",
		Prms: dbf.Params{{N: "E", V: 210e9}, {N: "nu", V: 0.3}, {N: "rho", V: 7850}}})
	m.Secs.Add(&sec.Section{Name: "rod", Kind: "truss", Prms: dbf.Params{{N: "A", V: 1e-4}}, Mat: "steel"})
	m.Bcs = append(m.Bcs, &model.EssentialBc{Name: "support", Type: "pin", Part: "bar", Nodes: []int{1}})

	p := problem.New("pull", m)
	stp := problem.NewStaticStep("loading")
	stp.Loads = append(stp.Loads, &problem.Load{Name: "tip", Type: "node",
		Keys: []string{"fx"}, Vals: []float64{1000}, Part: "bar", Nodes: []int{2}})
	stp.Fields = append(stp.Fields, &problem.FieldOutput{Name: "fout", Keys: []string{"u", "rf"}, On: "nodes"})
	if err := p.AddStep(stp); err != nil {
		tst.Fatalf("AddStep failed: %v", err)
	}
	if err := p.Validate(); err != nil {
		tst.Fatalf("Validate failed: %v", err)
	}
	return p
}

func Test_ccxwrite01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccxwrite01. input deck")

	p := buildPull(tst)
	dir := tst.TempDir()
	run := &Runner{Exe: "ccx"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	deck, err := os.ReadFile(filepath.Join(dir, "pull.inp"))
	if err != nil {
		tst.Errorf("cannot read deck: %v\n", err)
		return
	}
	s := string(deck)
	for _, want := range []string{
		"*NODE, NSET=NALL",
		"*ELEMENT, TYPE=T3D2, ELSET=ET3D2_ROD",
		"*MATERIAL, NAME=STEEL",
		"*ELASTIC",
		"2.1e+11, 0.3",
		"*DENSITY",
		"*SOLID SECTION, ELSET=ET3D2_ROD, MATERIAL=STEEL",
		"*BOUNDARY",
		"*STEP",
		"*STATIC",
		"*CLOAD",
		"2, 1, 1000",
		"*NODE PRINT, NSET=NALL",
		"*END STEP",
	} {
		if !strings.Contains(s, want) {
			tst.Errorf("deck is missing %q\n", want)
			return
		}
	}

	// pin blocks translations of node 1
	for _, want := range []string{"1, 1\n", "1, 2\n", "1, 3\n"} {
		if !strings.Contains(s, want) {
			tst.Errorf("deck is missing boundary row %q\n", want)
			return
		}
	}
}

func Test_ccxparse01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccxparse01. reading printed tables back")

	p := buildPull(tst)
	dir := tst.TempDir()
	run := &Runner{Exe: "ccx"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	dat := ` displacements (vx,vy,vz) for set NALL and time  0.1000000E+01

         1  0.000000E+00  0.000000E+00  0.000000E+00
         2  4.761905E-05  0.000000E+00  0.000000E+00

 forces (fx,fy,fz) for set NALL and time  0.1000000E+01

         1 -1.000000E+03  0.000000E+00  0.000000E+00
         2  0.000000E+00  0.000000E+00  0.000000E+00
`
	io.WriteStringToFileD(dir, "pull.dat", dat)

	res, err := run.ReadResults(p, dir)
	if err != nil {
		tst.Errorf("ReadResults failed: %v\n", err)
		return
	}
	sr, err := res.Step("loading")
	if err != nil {
		tst.Errorf("Step failed: %v\n", err)
		return
	}
	chk.Array(tst, "u @ bar.2", 1e-12, sr.Fields["u"].Get("bar", 2), []float64{4.761905e-05, 0, 0})
	chk.Array(tst, "rf @ bar.1", 1e-12, sr.Fields["rf"].Get("bar", 1), []float64{-1000, 0, 0})

	sum, err := sr.TotalReaction()
	if err != nil {
		tst.Errorf("TotalReaction failed: %v\n", err)
		return
	}
	chk.Array(tst, "total reaction", 1e-12, sum, []float64{-1000, 0, 0})
}

func Test_ccxparse02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccxparse02. malformed output is a parse error")

	p := buildPull(tst)
	dir := tst.TempDir()
	run := &Runner{Exe: "ccx"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	// missing file
	_, err := run.ReadResults(p, dir)
	var perr *backend.ParseError
	if !errors.As(err, &perr) {
		tst.Errorf("missing output must yield ParseError; got %v\n", err)
		return
	}

	// truncated row
	io.WriteStringToFileD(dir, "pull.dat", ` displacements (vx,vy,vz) for set NALL and time  0.1000000E+01

         1  0.000000E+00
`)
	_, err = run.ReadResults(p, dir)
	if !errors.As(err, &perr) {
		tst.Errorf("truncated row must yield ParseError; got %v\n", err)
		return
	}
	io.Pf("%v\n", perr)
}

func Test_ccxrun01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccxrun01. missing executable is a run error")

	p := buildPull(tst)
	dir := tst.TempDir()
	run := &Runner{Exe: "ccx-does-not-exist"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	err := run.Run(context.Background(), dir)
	var rerr *backend.RunError
	if !errors.As(err, &rerr) {
		tst.Errorf("missing executable must yield RunError; got %v\n", err)
		return
	}
	chk.Ints(tst, "exit code", []int{rerr.ExitCode}, []int{-1})
}

func Test_ccxmodal01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccxmodal01. frequencies from eigenvalue output")

	p := buildPull(tst)
	stp := problem.NewModalStep("modes")
	if err := p.AddStep(stp); err != nil {
		tst.Fatalf("AddStep failed: %v", err)
	}
	dir := tst.TempDir()
	run := &Runner{Exe: "ccx"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}

	dat := ` displacements (vx,vy,vz) for set NALL and time  0.1000000E+01

         1  0.000000E+00  0.000000E+00  0.000000E+00
         2  4.761905E-05  0.000000E+00  0.000000E+00

     E I G E N V A L U E   O U T P U T

 MODE NO    EIGENVALUE                FREQUENCY
                             REAL PART            IMAGINARY PART
                   (RAD/TIME)      (CYCLES/TIME)     (RAD/TIME)

      1   0.6169044E+10  0.7854327E+05  0.1250063E+05  0.0000000E+00
      2   0.2467618E+11  0.1570865E+06  0.2500126E+05  0.0000000E+00
`
	io.WriteStringToFileD(dir, "pull.dat", dat)

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
	chk.Array(tst, "frequencies", 1e-8, sr.Freqs, []float64{0.1250063e+05, 0.2500126e+05})
}

func Test_ccxprestress01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccxprestress01. initial stress goes before the first step")

	p := buildPull(tst)
	p.Steps[0].Loads = append(p.Steps[0].Loads, &problem.Load{Name: "tension", Type: "prestress",
		Sigma: 50e6, Part: "bar", Elems: []int{1}})
	if err := p.Validate(); err != nil {
		tst.Fatalf("Validate failed: %v", err)
	}

	dir := tst.TempDir()
	run := &Runner{Exe: "ccx"}
	if err := run.WriteInput(p, dir); err != nil {
		tst.Errorf("WriteInput failed: %v\n", err)
		return
	}
	deck, err := os.ReadFile(filepath.Join(dir, "pull.inp"))
	if err != nil {
		tst.Errorf("cannot read deck: %v\n", err)
		return
	}
	s := string(deck)
	ic := strings.Index(s, "*INITIAL CONDITIONS, TYPE=STRESS")
	st := strings.Index(s, "*STEP")
	if ic < 0 {
		tst.Errorf("deck is missing the initial stress condition\n")
		return
	}
	if st < 0 || ic > st {
		tst.Errorf("initial stress must be written before the first *STEP. ic=%d step=%d\n", ic, st)
		return
	}
	if !strings.Contains(s, "1, 5e+07, 0, 0, 0, 0, 0") {
		tst.Errorf("deck is missing the stress row\n")
		return
	}
}

func Test_ccxharmonic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccxharmonic01. harmonic loads are rejected")

	p := buildPull(tst)
	p.Steps[0].Loads = append(p.Steps[0].Loads, &problem.Load{Name: "exciter", Type: "harmonic",
		Freq: 5, Keys: []string{"fx"}, Vals: []float64{10}, Part: "bar", Nodes: []int{2}})
	if err := p.Validate(); err != nil {
		tst.Fatalf("Validate failed: %v", err)
	}

	dir := tst.TempDir()
	run := &Runner{Exe: "ccx"}
	err := run.WriteInput(p, dir)
	if err == nil {
		tst.Errorf("WriteInput must reject harmonic loads\n")
		return
	}
	io.Pf("%v\n", err)
}
