// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfg loads user settings: where jobs run, how chatty the tools are
// and which solver executables to use. Settings live in a YAML file; missing
// entries fall back to defaults.
package cfg

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// BackendSettings holds the per-backend overrides
type BackendSettings struct {
	Exe string `yaml:"exe"` // solver executable name or full path
}

// Settings holds all user settings
type Settings struct {
	Verbose  bool                       `yaml:"verbose"`  // print progress messages
	DirOut   string                     `yaml:"dirout"`   // base directory for job files
	Backend  string                     `yaml:"backend"`  // default backend name
	Backends map[string]BackendSettings `yaml:"backends"` // per-backend overrides
}

// Default returns the default settings
func Default() *Settings {
	return &Settings{
		Verbose: true,
		DirOut:  filepath.Join(os.TempDir(), "fea2"),
		Backend: "calculix",
		Backends: map[string]BackendSettings{
			"calculix": {Exe: "ccx"},
			"opensees": {Exe: "OpenSees"},
		},
	}
}

// Load reads settings from a YAML file, overlaying them on the defaults
func Load(fn string) (*Settings, error) {
	s := Default()
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read settings file %q: %v", fn, err)
	}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, chk.Err("cannot parse settings file %q: %v", fn, err)
	}
	return s, nil
}

// LoadOrDefault reads settings from fn when it exists and returns the
// defaults otherwise
func LoadOrDefault(fn string) (*Settings, error) {
	if _, err := os.Stat(fn); err != nil {
		return Default(), nil
	}
	return Load(fn)
}

// Exe returns the executable configured for a backend; empty when the
// backend has no override
func (o *Settings) Exe(backendName string) string {
	if bs, ok := o.Backends[backendName]; ok {
		return bs.Exe
	}
	return ""
}

// Save writes the settings to a YAML file
func (o *Settings) Save(fn string) error {
	b, err := yaml.Marshal(o)
	if err != nil {
		return chk.Err("cannot encode settings: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0777); err != nil {
		return chk.Err("cannot create settings directory: %v", err)
	}
	if err := os.WriteFile(fn, b, 0666); err != nil {
		return chk.Err("cannot write settings file %q: %v", fn, err)
	}
	return nil
}
