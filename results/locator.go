// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"

	"github.com/fea2/compas-fea2/model"
)

// Ndiv is the number of divisions of the bins used to locate nodes
var Ndiv = 20

// Locator finds nodes of a model by spatial position. Nodes of all parts are
// appended to one set of bins; entity keys are recovered from flat indices.
type Locator struct {
	bins gm.Bins  // bins with all nodes
	ents []string // flat index => entity key
}

// NewLocator creates a node locator for one model
func NewLocator(m *model.Model) (o *Locator, err error) {

	// overall extents
	if len(m.Parts) == 0 {
		return nil, chk.Err("model %q has no parts; cannot build locator", m.Name)
	}
	first := true
	var xmin, xmax, ymin, ymax, zmin, zmax float64
	for _, p := range m.Parts {
		if len(p.Nodes) == 0 {
			continue
		}
		if first {
			xmin, xmax = p.Xmin, p.Xmax
			ymin, ymax = p.Ymin, p.Ymax
			zmin, zmax = p.Zmin, p.Zmax
			first = false
			continue
		}
		if p.Xmin < xmin {
			xmin = p.Xmin
		}
		if p.Xmax > xmax {
			xmax = p.Xmax
		}
		if p.Ymin < ymin {
			ymin = p.Ymin
		}
		if p.Ymax > ymax {
			ymax = p.Ymax
		}
		if p.Zmin < zmin {
			zmin = p.Zmin
		}
		if p.Zmax > zmax {
			zmax = p.Zmax
		}
	}
	if first {
		return nil, chk.Err("model %q has no nodes; cannot build locator", m.Name)
	}

	// allocate bins with a small margin so that boundary nodes fall inside
	δ := 1e-8 + 0.01*(xmax-xmin)
	xi := []float64{xmin - δ, ymin - δ, zmin - δ}
	xf := []float64{xmax + δ, ymax + δ, zmax + δ}
	o = new(Locator)
	err = o.bins.Init(xi, xf, []int{Ndiv, Ndiv, Ndiv})
	if err != nil {
		return nil, chk.Err("cannot initialise bins for nodes: %v", err)
	}

	// append nodes
	for _, p := range m.Parts {
		for _, nod := range p.Nodes {
			err = o.bins.Append(nod.C, len(o.ents), nil)
			if err != nil {
				return nil, chk.Err("cannot append node %d of part %q to bins: %v", nod.Id, p.Name, err)
			}
			o.ents = append(o.ents, entkey(p.Name, nod.Id))
		}
	}
	return
}

// Closest returns the part name and node id of the node closest to x
func (o *Locator) Closest(x []float64) (part string, id int, err error) {
	idx, _ := o.bins.FindClosest(x)
	if idx < 0 {
		return "", 0, chk.Err("cannot find node close to %v", x)
	}
	return splitEntkey(o.ents[idx])
}

// AlongSegment returns the nodes lying on the segment from xi to xf,
// within tolerance tol
func (o *Locator) AlongSegment(xi, xf []float64, tol float64) (parts []string, ids []int, err error) {
	found := o.bins.FindAlongSegment(xi, xf, tol)
	for _, idx := range found {
		part, id, e := splitEntkey(o.ents[idx])
		if e != nil {
			return nil, nil, e
		}
		parts = append(parts, part)
		ids = append(ids, id)
	}
	return
}
