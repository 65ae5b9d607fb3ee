// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"github.com/cpmech/gosl/chk"
)

// Combo defines a linear combination of step results; e.g. 1.35*dead +
// 1.5*live. Combinations are evaluated after the analysis by the results
// layer; they never reach the solver.
type Combo struct {
	Name    string             `json:"name"`    // name of combination
	Factors map[string]float64 `json:"factors"` // maps step name to factor
}

// check verifies that all referenced steps exist
func (o *Combo) check(p *Problem) (err error) {
	if len(o.Factors) == 0 {
		return chk.Err("combination %q has no factors", o.Name)
	}
	for stepname := range o.Factors {
		if p.FindStep(stepname) == nil {
			return chk.Err("combination %q references missing step %q", o.Name, stepname)
		}
	}
	return
}
