// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Combine linearly superposes the fields of a set of steps, each scaled by
// its factor, and stores the result as a new step named name. All combined
// steps must carry the same fields with the same component keys. History
// series and frequencies are not combined.
func (o *Results) Combine(name string, factors map[string]float64) (*StepResults, error) {
	if _, ok := o.Steps[name]; ok {
		return nil, chk.Err("results already have a step named %q", name)
	}
	if len(factors) == 0 {
		return nil, chk.Err("combination %q has no factors", name)
	}

	// deterministic order of combined steps
	stepnames := make([]string, 0, len(factors))
	for sname := range factors {
		stepnames = append(stepnames, sname)
	}
	sort.Strings(stepnames)

	out := NewStepResults()
	for _, sname := range stepnames {
		sr, ok := o.Steps[sname]
		if !ok {
			return nil, chk.Err("combination %q refers to unknown step %q", name, sname)
		}
		fac := factors[sname]
		for key, fld := range sr.Fields {
			acc, ok := out.Fields[key]
			if !ok {
				acc = NewField(fld.On, fld.Keys)
				out.Fields[key] = acc
			}
			if len(acc.Keys) != len(fld.Keys) {
				return nil, chk.Err("combination %q: field %q of step %q has %d components instead of %d",
					name, key, sname, len(fld.Keys), len(acc.Keys))
			}
			for ent, vals := range fld.Vals {
				sum := acc.Vals[ent]
				if sum == nil {
					sum = make([]float64, len(vals))
					acc.Vals[ent] = sum
				}
				for i, v := range vals {
					sum[i] += fac * v
				}
			}
		}
	}
	o.Order = append(o.Order, name)
	o.Steps[name] = out
	return out, nil
}
