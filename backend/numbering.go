// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"github.com/cpmech/gosl/io"

	"github.com/fea2/compas-fea2/model"
)

// Numbering maps the per-part node and element ids onto the global 1-based
// ids that solver decks require. The mapping is deterministic: parts in model
// order, nodes and elements in part order.
type Numbering struct {
	nglob map[string]int // "<part>.<id>" => global node id
	eglob map[string]int // "<part>.<id>" => global element id
	nback []entref       // global node id - 1 => part and id
	eback []entref       // global element id - 1 => part and id
}

type entref struct {
	part string
	id   int
}

func refkey(part string, id int) string {
	return io.Sf("%s.%d", part, id)
}

// NewNumbering builds the global numbering of one model
func NewNumbering(m *model.Model) *Numbering {
	o := &Numbering{
		nglob: make(map[string]int),
		eglob: make(map[string]int),
	}
	for _, p := range m.Parts {
		for _, nod := range p.Nodes {
			o.nglob[refkey(p.Name, nod.Id)] = len(o.nback) + 1
			o.nback = append(o.nback, entref{p.Name, nod.Id})
		}
	}
	for _, p := range m.Parts {
		for _, ele := range p.Elems {
			o.eglob[refkey(p.Name, ele.Id)] = len(o.eback) + 1
			o.eback = append(o.eback, entref{p.Name, ele.Id})
		}
	}
	return o
}

// Nnodes returns the total number of nodes
func (o *Numbering) Nnodes() int { return len(o.nback) }

// Nelems returns the total number of elements
func (o *Numbering) Nelems() int { return len(o.eback) }

// Node returns the global id of one node
func (o *Numbering) Node(part string, id int) int {
	return o.nglob[refkey(part, id)]
}

// Elem returns the global id of one element
func (o *Numbering) Elem(part string, id int) int {
	return o.eglob[refkey(part, id)]
}

// NodeBack returns the part and per-part id of one global node id
func (o *Numbering) NodeBack(glob int) (part string, id int, ok bool) {
	if glob < 1 || glob > len(o.nback) {
		return "", 0, false
	}
	r := o.nback[glob-1]
	return r.part, r.id, true
}

// ElemBack returns the part and per-part id of one global element id
func (o *Numbering) ElemBack(glob int) (part string, id int, ok bool) {
	if glob < 1 || glob > len(o.eback) {
		return "", 0, false
	}
	r := o.eback[glob-1]
	return r.part, r.id, true
}
