// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// sub returns a - b
func sub(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// cross returns a × b
func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// dot returns a · b
func dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// norm returns the Euclidean norm of a
func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

// Dist returns the distance between nodes a and b
func Dist(a, b *Node) float64 {
	return norm(sub(a.C, b.C))
}

// tetVolume returns the volume of a tetrahedron given its 4 corner coordinates
func tetVolume(a, b, c, d []float64) float64 {
	return math.Abs(dot(sub(b, a), cross(sub(c, a), sub(d, a)))) / 6.0
}

// hex8tets holds the decomposition of a hexahedron into 5 tetrahedra.
// Vertex ordering: bottom face 0-1-2-3, top face 4-5-6-7.
var hex8tets = [5][4]int{
	{0, 1, 3, 4},
	{1, 2, 3, 6},
	{1, 5, 6, 4},
	{3, 6, 7, 4},
	{1, 3, 6, 4},
}

// polyArea returns the area of a planar polygon in 3D given its corner coordinates
func polyArea(c [][]float64) float64 {
	s := []float64{0, 0, 0}
	for i := 1; i < len(c)-1; i++ {
		t := cross(sub(c[i], c[0]), sub(c[i+1], c[0]))
		s[0] += t[0]
		s[1] += t[1]
		s[2] += t[2]
	}
	return norm(s) / 2.0
}

// ElemLength returns the distance between the two end nodes of a line element
func (o *Part) ElemLength(ele *Elem) (l float64, err error) {
	et, err := GetEType(ele.Type)
	if err != nil {
		return
	}
	if et.Geo != "line" {
		return 0, chk.Err("cannot compute length of %s element %d", ele.Type, ele.Id)
	}
	a, b := o.GetNode(ele.Verts[0]), o.GetNode(ele.Verts[1])
	return Dist(a, b), nil
}

// ElemArea returns the mid-surface area of a surface element
func (o *Part) ElemArea(ele *Elem) (area float64, err error) {
	et, err := GetEType(ele.Type)
	if err != nil {
		return
	}
	if et.Geo != "surface" {
		return 0, chk.Err("cannot compute area of %s element %d", ele.Type, ele.Id)
	}
	coords := make([][]float64, len(ele.Verts))
	for i, v := range ele.Verts {
		coords[i] = o.GetNode(v).C
	}
	return polyArea(coords), nil
}

// ElemVolume returns the volume of a volume element. tet10 and hex20 elements
// use their corner nodes only; mid-side curvature is ignored.
func (o *Part) ElemVolume(ele *Elem) (vol float64, err error) {
	et, err := GetEType(ele.Type)
	if err != nil {
		return
	}
	if et.Geo != "volume" {
		return 0, chk.Err("cannot compute volume of %s element %d", ele.Type, ele.Id)
	}
	c := func(i int) []float64 { return o.GetNode(ele.Verts[i]).C }
	switch ele.Type {
	case "tet4", "tet10":
		return tetVolume(c(0), c(1), c(2), c(3)), nil
	case "hex8", "hex20":
		for _, t := range hex8tets {
			vol += tetVolume(c(t[0]), c(t[1]), c(t[2]), c(t[3]))
		}
		return
	}
	return 0, chk.Err("volume of %s element is not available", ele.Type)
}
