// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/fea2/compas-fea2/backend"
	_ "github.com/fea2/compas-fea2/backend/calculix"
	_ "github.com/fea2/compas-fea2/backend/opensees"
	"github.com/fea2/compas-fea2/cfg"
	"github.com/fea2/compas-fea2/problem"
	"github.com/fea2/compas-fea2/results"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, fnkey := io.ArgToFilename(0, "", ".json", true)
	backendName := io.ArgToString(1, "")
	settingsFn := io.ArgToString(2, "settings.yml")
	verbose := io.ArgToBool(3, true)

	// settings
	settings, err := cfg.LoadOrDefault(settingsFn)
	if err != nil {
		chk.Panic("%v", err)
	}
	if backendName == "" {
		backendName = settings.Backend
	}

	// message
	if verbose && settings.Verbose {
		io.PfWhite("\nCompas-FEA2 -- backend-agnostic finite element analysis\n\n")
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"backend name", "backend", backendName,
			"settings file", "settings", settingsFn,
			"show messages", "verbose", verbose,
		))
	}

	// read problem
	p, err := problem.ReadJSON(fnamepath)
	if err != nil {
		chk.Panic("cannot read problem:\n%v", err)
	}
	if p.DirOut == "" && settings.DirOut != "" {
		p.DirOut = io.Sf("%s/%s", settings.DirOut, fnkey)
	}

	// allocate backend and apply executable override
	run, err := backend.New(backendName)
	if err != nil {
		chk.Panic("%v", err)
	}
	if exe := settings.Exe(backendName); exe != "" {
		if se, ok := run.(interface{ SetExe(string) }); ok {
			se.SetExe(exe)
		}
	}

	// analyse
	if verbose && settings.Verbose {
		io.Pforan("running %q with backend %q\n", p.Name, run.Name())
		io.Pf("%v\n", p.Summary())
	}
	if err := p.Validate(); err != nil {
		chk.Panic("problem is invalid:\n%v", err)
	}
	dir := p.OutDir()
	if err := run.WriteInput(p, dir); err != nil {
		chk.Panic("cannot write solver input:\n%v", err)
	}
	if err := run.Run(context.Background(), dir); err != nil {
		chk.Panic("solver failed:\n%v", err)
	}
	res, err := run.ReadResults(p, dir)
	if err != nil {
		chk.Panic("cannot read solver output:\n%v", err)
	}

	// combinations
	for _, combo := range p.Combos {
		if _, err := res.Combine(combo.Name, combo.Factors); err != nil {
			chk.Panic("cannot combine results:\n%v", err)
		}
	}

	// save results database
	dbfn := io.Sf("%s/%s.db", dir, p.Name)
	db, err := results.OpenDb(dbfn)
	if err != nil {
		chk.Panic("cannot open results database:\n%v", err)
	}
	defer db.Close()
	if err := db.Save(res); err != nil {
		chk.Panic("cannot save results:\n%v", err)
	}
	if verbose && settings.Verbose {
		io.Pf("results saved to %s\n", dbfn)
	}
}
