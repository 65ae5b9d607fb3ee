// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calculix

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/fea2/compas-fea2/backend"
	"github.com/fea2/compas-fea2/model"
	"github.com/fea2/compas-fea2/problem"
	"github.com/fea2/compas-fea2/sec"
)

// ccxEtype maps one element to a CalculiX element type keyword
func ccxEtype(ele *model.Elem) (string, error) {
	switch ele.Type {
	case "mass":
		return "MASS", nil
	case "spring":
		return "SPRINGA", nil
	case "link", "truss", "strut", "tie":
		return "T3D2", nil
	case "beam":
		return "B31", nil
	case "shell":
		switch len(ele.Verts) {
		case 3:
			return "S3", nil
		case 4:
			return "S4", nil
		case 6:
			return "S6", nil
		case 8:
			return "S8", nil
		}
		return "", chk.Err("shell element %d with %d nodes cannot be mapped to calculix", ele.Id, len(ele.Verts))
	case "membrane":
		switch len(ele.Verts) {
		case 3:
			return "M3D3", nil
		case 4:
			return "M3D4", nil
		}
		return "", chk.Err("membrane element %d with %d nodes cannot be mapped to calculix", ele.Id, len(ele.Verts))
	case "tet4":
		return "C3D4", nil
	case "tet10":
		return "C3D10", nil
	case "hex8":
		return "C3D8", nil
	case "hex20":
		return "C3D20", nil
	}
	return "", chk.Err("element type %q cannot be mapped to calculix", ele.Type)
}

// dofnum maps a dof key to a CalculiX dof number
func dofnum(key string) int {
	return utl.StrIndexSmall(model.DofKeys, key) + 1
}

// elsetName builds the element set name of one (calculix type, section) pair
func elsetName(ctype, secname string) string {
	return io.Sf("E%s_%s", ctype, strings.ToUpper(secname))
}

// WriteInput writes the CalculiX input deck <name>.inp into dir
func (o *Runner) WriteInput(p *problem.Problem, dir string) (err error) {
	o.jobname = p.Name
	o.num = backend.NewNumbering(p.Model)
	var b strings.Builder
	m := p.Model
	if len(m.Releases) > 0 {
		return chk.Err("beam-end releases are not supported by the calculix writer")
	}

	b.WriteString(io.Sf("** %s\n", p.Name))
	if p.Desc != "" {
		b.WriteString(io.Sf("** %s\n", p.Desc))
	}

	// nodes
	b.WriteString("*NODE, NSET=NALL\n")
	for _, prt := range m.Parts {
		for _, nod := range prt.Nodes {
			b.WriteString(io.Sf("%d, %g, %g, %g\n", o.num.Node(prt.Name, nod.Id), nod.X(), nod.Y(), nod.Z()))
		}
	}

	// elements grouped into one set per (calculix type, section)
	type egroup struct {
		ctype string
		sec   string
		lines []string
	}
	var order []string
	groups := make(map[string]*egroup)
	for _, prt := range m.Parts {
		for _, ele := range prt.Elems {
			ctype, err := ccxEtype(ele)
			if err != nil {
				return err
			}
			eset := elsetName(ctype, ele.Sec)
			g, ok := groups[eset]
			if !ok {
				g = &egroup{ctype: ctype, sec: ele.Sec}
				groups[eset] = g
				order = append(order, eset)
			}
			conn := make([]string, len(ele.Verts))
			for i, v := range ele.Verts {
				conn[i] = io.Sf("%d", o.num.Node(prt.Name, v))
			}
			g.lines = append(g.lines, io.Sf("%d, %s", o.num.Elem(prt.Name, ele.Id), strings.Join(conn, ", ")))
		}
	}
	for _, eset := range order {
		g := groups[eset]
		b.WriteString(io.Sf("*ELEMENT, TYPE=%s, ELSET=%s\n", g.ctype, eset))
		for _, line := range g.lines {
			b.WriteString(line + "\n")
		}
	}
	if n := o.num.Nelems(); n > 0 {
		b.WriteString(io.Sf("*ELSET, ELSET=EALL, GENERATE\n1, %d, 1\n", n))
	}

	// materials
	for _, mm := range m.Mats.Materials {
		b.WriteString(io.Sf("*MATERIAL, NAME=%s\n", strings.ToUpper(mm.Name)))
		vals, found := mm.Prms.GetValues([]string{"E", "nu"})
		if found[0] {
			b.WriteString("*ELASTIC\n")
			b.WriteString(io.Sf("%g, %g\n", vals[0], vals[1]))
		}
		if rho := mm.Mdl.GetRho(); rho > 0 {
			b.WriteString("*DENSITY\n")
			b.WriteString(io.Sf("%g\n", rho))
		}
		if p := mm.Prms.Find("fy"); p != nil {
			b.WriteString("*PLASTIC\n")
			b.WriteString(io.Sf("%g, 0\n", p.V))
		}
	}

	// sections; one per element set
	for _, eset := range order {
		g := groups[eset]
		s := m.Secs.Get(g.sec)
		if s == nil {
			return chk.Err("section %q is not in the database", g.sec)
		}
		matname := strings.ToUpper(s.Mat)
		switch g.ctype {
		case "MASS":
			b.WriteString(io.Sf("*MASS, ELSET=%s\n%g\n", eset, s.Props.M))
		case "SPRINGA":
			b.WriteString(io.Sf("*SPRING, ELSET=%s\n\n%g\n", eset, s.Props.Kx))
		case "T3D2":
			b.WriteString(io.Sf("*SOLID SECTION, ELSET=%s, MATERIAL=%s\n%g\n", eset, matname, s.Props.A))
		case "B31":
			err = writeBeamSection(&b, eset, matname, s)
			if err != nil {
				return err
			}
		case "S3", "S4", "S6", "S8":
			b.WriteString(io.Sf("*SHELL SECTION, ELSET=%s, MATERIAL=%s\n%g\n", eset, matname, s.Props.Th))
		case "M3D3", "M3D4":
			b.WriteString(io.Sf("*MEMBRANE SECTION, ELSET=%s, MATERIAL=%s\n%g\n", eset, matname, s.Props.Th))
		default:
			b.WriteString(io.Sf("*SOLID SECTION, ELSET=%s, MATERIAL=%s\n", eset, matname))
		}
	}

	// boundary conditions of the model: fixed for the whole analysis
	for _, bc := range m.Bcs {
		keys, err := bc.DofKeysBlocked()
		if err != nil {
			return err
		}
		prt, ids, err := m.ResolveNodeSet(bc.Part, bc.Nodes, bc.Group)
		if err != nil {
			return err
		}
		b.WriteString(io.Sf("** bc %s\n*BOUNDARY\n", bc.Name))
		for _, id := range ids {
			for _, dk := range keys {
				v := bc.Value(dk)
				if v == 0 {
					b.WriteString(io.Sf("%d, %d\n", o.num.Node(prt.Name, id), dofnum(dk)))
				} else {
					b.WriteString(io.Sf("%d, %d, %d, %g\n", o.num.Node(prt.Name, id), dofnum(dk), dofnum(dk), v))
				}
			}
		}
	}

	// constraints: master-slave couplings become rigid bodies or equations
	for _, c := range m.Constraints {
		mprt := c.Master.Part
		b.WriteString(io.Sf("** constraint %s\n", c.Name))
		dofs := c.CoupledDofs()
		for _, sl := range c.Slaves {
			for _, dk := range dofs {
				b.WriteString("*EQUATION\n2\n")
				b.WriteString(io.Sf("%d, %d, 1.0, %d, %d, -1.0\n",
					o.num.Node(sl.Part, sl.Node), dofnum(dk),
					o.num.Node(mprt, c.Master.Node), dofnum(dk)))
			}
		}
	}

	// initial conditions
	for _, ic := range m.Ics {
		if ic.Type != "temperature" {
			continue
		}
		prt, ids, err := m.ResolveNodeSet(ic.Part, ic.Nodes, ic.Group)
		if err != nil {
			return err
		}
		b.WriteString("*INITIAL CONDITIONS, TYPE=TEMPERATURE\n")
		for _, id := range ids {
			b.WriteString(io.Sf("%d, %g\n", o.num.Node(prt.Name, id), ic.Vals[0]))
		}
	}

	// prestress loads become initial stress conditions; CalculiX only accepts
	// *INITIAL CONDITIONS before the first *STEP
	for _, stp := range p.Steps {
		for _, ld := range stp.Loads {
			if ld.Type != "prestress" {
				continue
			}
			prt := m.GetPart(ld.Part)
			b.WriteString("*INITIAL CONDITIONS, TYPE=STRESS\n")
			for _, eid := range ld.Elems {
				b.WriteString(io.Sf("%d, %g, 0, 0, 0, 0, 0\n", o.num.Elem(prt.Name, eid), ld.Sigma))
			}
		}
	}

	// steps
	for _, stp := range p.Steps {
		err = o.writeStep(&b, p, stp)
		if err != nil {
			return err
		}
	}

	fn := filepath.Join(dir, p.Name+".inp")
	io.WriteStringToFileD(filepath.Dir(fn), filepath.Base(fn), b.String())
	return nil
}

// writeBeamSection writes a *BEAM SECTION card, mapping the section kind to
// one of the CalculiX cross-section shapes
func writeBeamSection(b *strings.Builder, eset, matname string, s *sec.Section) error {
	switch s.Kind {
	case "rect":
		vals, found := s.Prms.GetValues([]string{"b", "h"})
		if !found[0] || !found[1] {
			return chk.Err("rect section %q needs parameters b and h", s.Name)
		}
		b.WriteString(io.Sf("*BEAM SECTION, ELSET=%s, MATERIAL=%s, SECTION=RECT\n%g, %g\n0, 0, 1\n",
			eset, matname, vals[0], vals[1]))
	case "circ":
		p := s.Prms.Find("d")
		if p == nil {
			return chk.Err("circ section %q needs parameter d", s.Name)
		}
		b.WriteString(io.Sf("*BEAM SECTION, ELSET=%s, MATERIAL=%s, SECTION=CIRC\n%g\n0, 0, 1\n",
			eset, matname, p.V/2))
	case "pipe":
		vals, found := s.Prms.GetValues([]string{"d", "t"})
		if !found[0] || !found[1] {
			return chk.Err("pipe section %q needs parameters d and t", s.Name)
		}
		b.WriteString(io.Sf("*BEAM SECTION, ELSET=%s, MATERIAL=%s, SECTION=PIPE\n%g, %g\n0, 0, 1\n",
			eset, matname, vals[0]/2, vals[1]))
	case "box":
		vals, found := s.Prms.GetValues([]string{"b", "h", "tw", "tf"})
		if !found[0] || !found[1] || !found[2] || !found[3] {
			return chk.Err("box section %q needs parameters b, h, tw and tf", s.Name)
		}
		b.WriteString(io.Sf("*BEAM SECTION, ELSET=%s, MATERIAL=%s, SECTION=BOX\n%g, %g, %g, %g, %g, %g\n0, 0, 1\n",
			eset, matname, vals[0], vals[1], vals[2], vals[3], vals[2], vals[3]))
	default:
		// equivalent rectangle preserving area and strong-axis inertia
		h := 2.0 * math.Sqrt(3.0*s.Props.Ixx/s.Props.A)
		w := s.Props.A / h
		b.WriteString(io.Sf("*BEAM SECTION, ELSET=%s, MATERIAL=%s, SECTION=RECT\n%g, %g\n0, 0, 1\n",
			eset, matname, w, h))
	}
	return nil
}

// writeStep writes one *STEP block
func (o *Runner) writeStep(b *strings.Builder, p *problem.Problem, stp *problem.Step) (err error) {
	m := p.Model
	b.WriteString(io.Sf("** step %s\n", stp.Name))

	switch {
	case stp.Static != nil:
		if stp.Static.Nlgeom {
			b.WriteString("*STEP, NLGEOM\n")
		} else {
			b.WriteString("*STEP\n")
		}
		b.WriteString(io.Sf("*STATIC\n%g, 1, %g, %g\n",
			stp.Static.IniInc, stp.Static.MinInc, stp.Static.MaxInc))
	case stp.Dynamic != nil:
		b.WriteString("*STEP\n")
		b.WriteString(io.Sf("*DYNAMIC\n%g, %g\n", stp.Dynamic.Dt, stp.Dynamic.Tf))
	case stp.Modal != nil:
		b.WriteString("*STEP\n")
		b.WriteString(io.Sf("*FREQUENCY\n%d\n", stp.Modal.Nmodes))
	case stp.Buckling != nil:
		b.WriteString("*STEP\n")
		b.WriteString(io.Sf("*BUCKLE\n%d\n", stp.Buckling.Nmodes))
	}

	// loads; prestress is handled as an initial condition before the steps
	for _, ld := range stp.Loads {
		switch ld.Type {
		case "harmonic":
			return chk.Err("load %q: harmonic loads are not supported by the calculix writer", ld.Name)
		case "node":
			prt, ids, err := m.ResolveNodeSet(ld.Part, ld.Nodes, ld.Group)
			if err != nil {
				return err
			}
			b.WriteString("*CLOAD\n")
			for _, id := range ids {
				for i, key := range ld.Keys {
					dof := utl.StrIndexSmall(problem.LoadKeys, key) + 1
					b.WriteString(io.Sf("%d, %d, %g\n", o.num.Node(prt.Name, id), dof, ld.Vals[i]))
				}
			}
		case "gravity":
			g := norm3(ld.G)
			if g > 0 {
				b.WriteString(io.Sf("*DLOAD\nEALL, GRAV, %g, %g, %g, %g\n", g, ld.G[0]/g, ld.G[1]/g, ld.G[2]/g))
			}
		}
	}

	// prescribed displacements
	for _, pd := range stp.Disps {
		prt, ids, err := m.ResolveNodeSet(pd.Part, pd.Nodes, pd.Group)
		if err != nil {
			return err
		}
		b.WriteString("*BOUNDARY\n")
		for _, id := range ids {
			for i, key := range pd.Keys {
				b.WriteString(io.Sf("%d, %d, %d, %g\n", o.num.Node(prt.Name, id), dofnum(key), dofnum(key), pd.Vals[i]))
			}
		}
	}

	// output requests; printed to the .dat file so they can be read back
	wantU, wantRF, wantS := false, false, false
	for _, fo := range stp.Fields {
		for _, k := range fo.Keys {
			switch k {
			case "u", "v", "a":
				wantU = true
			case "rf":
				wantRF = true
			case "s", "e", "sf":
				wantS = true
			}
		}
	}
	for _, h := range stp.Hists {
		switch h.Key {
		case "u":
			wantU = true
		case "rf":
			wantRF = true
		}
	}
	if wantU || len(stp.Fields)+len(stp.Hists) == 0 {
		b.WriteString("*NODE PRINT, NSET=NALL\nU\n")
	}
	if wantRF {
		b.WriteString("*NODE PRINT, NSET=NALL\nRF\n")
	}
	if wantS {
		b.WriteString("*EL PRINT, ELSET=EALL\nS\n")
	}
	b.WriteString("*END STEP\n")
	return nil
}

func norm3(v []float64) float64 {
	if len(v) != 3 {
		return 0
	}
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
