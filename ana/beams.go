// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana provides closed-form solutions of elementary structural
// problems. They serve as references when checking solver backends.
package ana

import "math"

// CantileverBeam computes the response of a prismatic cantilever with a
// transverse point load at its free end
type CantileverBeam struct {
	P float64 // transverse tip load
	L float64 // length
	E float64 // Young's modulus
	I float64 // second moment of area about the bending axis
}

// Init initialises this structure
func (o *CantileverBeam) Init(P, L, E, I float64) {
	o.P = P
	o.L = L
	o.E = E
	o.I = I
}

// TipDeflection returns the transverse deflection at the free end
func (o *CantileverBeam) TipDeflection() float64 {
	return o.P * math.Pow(o.L, 3) / (3 * o.E * o.I)
}

// TipRotation returns the slope at the free end
func (o *CantileverBeam) TipRotation() float64 {
	return o.P * o.L * o.L / (2 * o.E * o.I)
}

// RootMoment returns the bending moment at the support
func (o *CantileverBeam) RootMoment() float64 {
	return o.P * o.L
}

// Deflection returns the transverse deflection at position x from the support
func (o *CantileverBeam) Deflection(x float64) float64 {
	return o.P * x * x * (3*o.L - x) / (6 * o.E * o.I)
}

// AxialBar computes the response of a prismatic bar under a constant axial
// force
type AxialBar struct {
	N float64 // axial force
	L float64 // length
	E float64 // Young's modulus
	A float64 // cross-sectional area
}

// Init initialises this structure
func (o *AxialBar) Init(N, L, E, A float64) {
	o.N = N
	o.L = L
	o.E = E
	o.A = A
}

// Elongation returns the change of length
func (o *AxialBar) Elongation() float64 {
	return o.N * o.L / (o.E * o.A)
}

// Stress returns the axial stress
func (o *AxialBar) Stress() float64 {
	return o.N / o.A
}

// FirstFrequency returns the first natural frequency of the fixed-free bar
// in axial vibration, given the material density
func (o *AxialBar) FirstFrequency(rho float64) float64 {
	return math.Sqrt(o.E/rho) / (4 * o.L)
}

// EulerColumn computes the critical load of a prismatic column. K is the
// effective length factor: 1 for pinned-pinned, 2 for fixed-free, 0.5 for
// fixed-fixed
type EulerColumn struct {
	E float64 // Young's modulus
	I float64 // second moment of area about the weak axis
	L float64 // length
	K float64 // effective length factor
}

// Init initialises this structure
func (o *EulerColumn) Init(E, I, L, K float64) {
	o.E = E
	o.I = I
	o.L = L
	o.K = K
}

// CriticalLoad returns the buckling load
func (o *EulerColumn) CriticalLoad() float64 {
	kl := o.K * o.L
	return math.Pi * math.Pi * o.E * o.I / (kl * kl)
}

// SimplySupportedBeam computes the response of a prismatic simply supported
// beam with a transverse point load at midspan
type SimplySupportedBeam struct {
	P float64 // transverse midspan load
	L float64 // span
	E float64 // Young's modulus
	I float64 // second moment of area about the bending axis
}

// Init initialises this structure
func (o *SimplySupportedBeam) Init(P, L, E, I float64) {
	o.P = P
	o.L = L
	o.E = E
	o.I = I
}

// MidspanDeflection returns the deflection under the load
func (o *SimplySupportedBeam) MidspanDeflection() float64 {
	return o.P * math.Pow(o.L, 3) / (48 * o.E * o.I)
}

// MidspanMoment returns the bending moment under the load
func (o *SimplySupportedBeam) MidspanMoment() float64 {
	return o.P * o.L / 4
}

// Frequency returns the n-th natural frequency of the beam in transverse
// vibration, given the mass per unit length
func (o *SimplySupportedBeam) Frequency(n int, rhoA float64) float64 {
	fn := float64(n)
	return fn * fn * math.Pi / (2 * o.L * o.L) * math.Sqrt(o.E*o.I/rhoA)
}
