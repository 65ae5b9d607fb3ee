// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fea2/compas-fea2/model"
	"github.com/fea2/compas-fea2/problem"
	"github.com/fea2/compas-fea2/results"
)

// nullRunner is a do-nothing backend used to exercise the registry
type nullRunner struct{}

func (o *nullRunner) Name() string                                       { return "null" }
func (o *nullRunner) WriteInput(p *problem.Problem, dir string) error    { return nil }
func (o *nullRunner) Run(ctx context.Context, dir string) error          { return nil }
func (o *nullRunner) ReadResults(p *problem.Problem, dir string) (*results.Results, error) {
	return results.New(), nil
}

func init() {
	Register("null", func() Runner { return new(nullRunner) })
}

func Test_registry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry01. registration and lookup")

	run, err := New("null")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	chk.String(tst, run.Name(), "null")

	if _, err := New("no-such-backend"); err == nil {
		tst.Errorf("New must fail with an unknown backend\n")
		return
	}

	names := Names()
	found := false
	for _, n := range names {
		if n == "null" {
			found = true
		}
	}
	if !found {
		tst.Errorf("Names must include the registered backend; got %v\n", names)
		return
	}

	// duplicated registration panics
	defer chk.RecoverTstPanicIsOK(tst)
	Register("null", func() Runner { return new(nullRunner) })
}

func Test_numbering01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numbering01. global ids across parts")

	m := model.New("two")
	for _, pname := range []string{"left", "right"} {
		prt := model.NewPart(pname)
		prt.AddNode(model.NewNode(1, 0, 0, 0))
		prt.AddNode(model.NewNode(2, 1, 0, 0))
		m.AddPart(prt)
	}

	num := NewNumbering(m)
	chk.Ints(tst, "total nodes", []int{num.Nnodes()}, []int{4})
	chk.Ints(tst, "left.1", []int{num.Node("left", 1)}, []int{1})
	chk.Ints(tst, "right.1", []int{num.Node("right", 1)}, []int{3})

	part, id, ok := num.NodeBack(4)
	if !ok {
		tst.Errorf("NodeBack failed\n")
		return
	}
	chk.String(tst, part, "right")
	chk.Ints(tst, "id", []int{id}, []int{2})

	if _, _, ok := num.NodeBack(9); ok {
		tst.Errorf("NodeBack must fail with an id out of range\n")
		return
	}
}

func Test_job01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job01. run errors carry the command and exit code")

	job := Job{
		Backend: "null",
		Exe:     "solver-that-does-not-exist",
		Args:    []string{"-i", "job"},
		Dir:     tst.TempDir(),
		LogName: "job.log",
	}
	err := job.Run(context.Background())
	var rerr *RunError
	if !errors.As(err, &rerr) {
		tst.Errorf("missing executable must yield RunError; got %v\n", err)
		return
	}
	chk.Ints(tst, "exit code", []int{rerr.ExitCode}, []int{-1})
	if rerr.Unwrap() == nil {
		tst.Errorf("RunError must wrap the underlying error\n")
		return
	}
}

func Test_analyse01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("analyse01. validation failures come before the solver runs")

	m := model.New("empty")
	prt := model.NewPart("part")
	prt.AddNode(model.NewNode(1, 0, 0, 0))
	m.AddPart(prt)
	p := problem.New("job", m)
	p.DirOut = tst.TempDir()

	// a step without a procedure is a validation error; the null backend
	// never gets invoked
	p.Steps = append(p.Steps, &problem.Step{Name: "broken"})
	_, err := Analyse(context.Background(), p, "null")
	if err == nil {
		tst.Errorf("Analyse must fail on an invalid problem\n")
		return
	}
	var rerr *RunError
	if errors.As(err, &rerr) {
		tst.Errorf("validation failure must not be a RunError\n")
		return
	}
}
