// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_cfg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cfg01. defaults and overlay")

	s := Default()
	chk.String(tst, s.Backend, "calculix")
	chk.String(tst, s.Exe("calculix"), "ccx")
	chk.String(tst, s.Exe("opensees"), "OpenSees")
	chk.String(tst, s.Exe("unknown"), "")

	dir := tst.TempDir()
	io.WriteStringToFileD(dir, "settings.yml", `
backend: opensees
backends:
  opensees:
    exe: /opt/opensees/bin/OpenSees
`)
	s, err := Load(filepath.Join(dir, "settings.yml"))
	if err != nil {
		tst.Errorf("Load failed: %v\n", err)
		return
	}
	chk.String(tst, s.Backend, "opensees")
	chk.String(tst, s.Exe("opensees"), "/opt/opensees/bin/OpenSees")
}

func Test_cfg02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cfg02. save and read back")

	dir := tst.TempDir()
	fn := filepath.Join(dir, "sub", "settings.yml")

	s := Default()
	s.Backend = "opensees"
	if err := s.Save(fn); err != nil {
		tst.Errorf("Save failed: %v\n", err)
		return
	}

	got, err := LoadOrDefault(fn)
	if err != nil {
		tst.Errorf("LoadOrDefault failed: %v\n", err)
		return
	}
	chk.String(tst, got.Backend, "opensees")

	// missing file falls back to defaults
	got, err = LoadOrDefault(filepath.Join(dir, "absent.yml"))
	if err != nil {
		tst.Errorf("LoadOrDefault failed: %v\n", err)
		return
	}
	chk.String(tst, got.Backend, "calculix")
}
