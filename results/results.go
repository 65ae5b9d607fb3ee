// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package results implements the unified post-analysis query interface over
// backend-native output: per-step nodal and elemental fields, scalar history
// series and reaction forces, plus an SQLite database for persistence.
package results

import (
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// entkey builds the "<part>.<id>" key addressing one entity
func entkey(part string, id int) string {
	return io.Sf("%s.%d", part, id)
}

// splitEntkey recovers part name and id from an entity key
func splitEntkey(key string) (part string, id int, err error) {
	idx := strings.LastIndex(key, ".")
	if idx < 0 {
		return "", 0, chk.Err("invalid entity key %q", key)
	}
	id, err = strconv.Atoi(key[idx+1:])
	if err != nil {
		return "", 0, chk.Err("invalid entity key %q", key)
	}
	return key[:idx], id, nil
}

// Field holds one field output of one step: a set of components per entity
// (node or element) id
type Field struct {
	Keys []string            // component keys. ex: ["ux", "uy", "uz"]
	On   string              // "nodes" or "elems"
	Vals map[string][]float64 // maps "<part>.<id>" to component values
}

// NewField returns a new empty field
func NewField(on string, keys []string) *Field {
	return &Field{Keys: keys, On: on, Vals: make(map[string][]float64)}
}

// Set stores the component values of one entity
func (o *Field) Set(part string, id int, vals []float64) {
	o.Vals[entkey(part, id)] = vals
}

// Get returns the component values of one entity. Returns nil if absent.
func (o *Field) Get(part string, id int) []float64 {
	return o.Vals[entkey(part, id)]
}

// Value returns one component of one entity
func (o *Field) Value(part string, id int, key string) (float64, error) {
	idx := utl.StrIndexSmall(o.Keys, key)
	if idx < 0 {
		return 0, chk.Err("field has no component %q", key)
	}
	vals := o.Get(part, id)
	if vals == nil {
		return 0, chk.Err("field has no values for %s.%d", part, id)
	}
	return vals[idx], nil
}

// MaxAbs returns the entity with the largest absolute value of one component
func (o *Field) MaxAbs(key string) (ent string, val float64, err error) {
	idx := utl.StrIndexSmall(o.Keys, key)
	if idx < 0 {
		return "", 0, chk.Err("field has no component %q", key)
	}
	for k, vals := range o.Vals {
		if ent == "" || math.Abs(vals[idx]) > math.Abs(val) {
			ent, val = k, vals[idx]
		}
	}
	if ent == "" {
		return "", 0, chk.Err("field is empty")
	}
	return
}

// Norm returns the Euclidean norm of the components of one entity; e.g. the
// displacement magnitude of a node
func (o *Field) Norm(part string, id int) (float64, error) {
	vals := o.Get(part, id)
	if vals == nil {
		return 0, chk.Err("field has no values for %s.%d", part, id)
	}
	sum := 0.0
	for _, v := range vals {
		sum += v * v
	}
	return math.Sqrt(sum), nil
}

// Series holds one history output: a scalar sampled over time
type Series struct {
	Times []float64 // sample times
	Vals  []float64 // sample values
}

// Last returns the final sample
func (o *Series) Last() float64 {
	if len(o.Vals) == 0 {
		return 0
	}
	return o.Vals[len(o.Vals)-1]
}

// StepResults holds all outputs of one step
type StepResults struct {
	Fields map[string]*Field  // maps field key ("u", "rf", "s") to field
	Hists  map[string]*Series // maps history output name to series
	Freqs  []float64          // modal/buckling steps: frequencies or load factors
}

// NewStepResults returns a new empty step results container
func NewStepResults() *StepResults {
	return &StepResults{Fields: make(map[string]*Field), Hists: make(map[string]*Series)}
}

// TotalReaction sums the reaction force components over all entities; the sum
// balances the applied loads in a converged static step
func (o *StepResults) TotalReaction() (sum []float64, err error) {
	rf, ok := o.Fields["rf"]
	if !ok {
		return nil, chk.Err("step has no reaction field")
	}
	sum = make([]float64, len(rf.Keys))
	for _, vals := range rf.Vals {
		for i, v := range vals {
			sum[i] += v
		}
	}
	return
}

// Results is the handle returned by a backend after a successful analysis,
// keyed by step name
type Results struct {
	Order []string                // step names in analysis order
	Steps map[string]*StepResults // results per step
}

// New returns a new empty results handle
func New() *Results {
	return &Results{Steps: make(map[string]*StepResults)}
}

// AddStep registers a new step in order and returns its container
func (o *Results) AddStep(name string) *StepResults {
	sr := NewStepResults()
	o.Order = append(o.Order, name)
	o.Steps[name] = sr
	return sr
}

// Step returns the results of one step
func (o *Results) Step(name string) (*StepResults, error) {
	sr, ok := o.Steps[name]
	if !ok {
		return nil, chk.Err("no results for step %q", name)
	}
	return sr, nil
}
