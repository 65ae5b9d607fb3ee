// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opensees

import (
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/fea2/compas-fea2/backend"
	"github.com/fea2/compas-fea2/model"
	"github.com/fea2/compas-fea2/problem"
)

const transfTag = 1

// WriteInput writes the Tcl script <name>.tcl into dir
func (o *Runner) WriteInput(p *problem.Problem, dir string) (err error) {
	o.jobname = p.Name
	o.num = backend.NewNumbering(p.Model)
	o.pat = 0
	var b strings.Builder
	m := p.Model
	if len(m.Releases) > 0 {
		return chk.Err("beam-end releases are not supported by the opensees writer")
	}

	b.WriteString(io.Sf("# %s\n", p.Name))
	if p.Desc != "" {
		b.WriteString(io.Sf("# %s\n", p.Desc))
	}
	b.WriteString("wipe\nmodel basic -ndm 3 -ndf 6\n")

	// nodes; lumped masses attach directly
	for _, prt := range m.Parts {
		for _, nod := range prt.Nodes {
			b.WriteString(io.Sf("node %d %g %g %g\n", o.num.Node(prt.Name, nod.Id), nod.X(), nod.Y(), nod.Z()))
			if nod.Mass > 0 {
				g := o.num.Node(prt.Name, nod.Id)
				b.WriteString(io.Sf("mass %d %g %g %g 0 0 0\n", g, nod.Mass, nod.Mass, nod.Mass))
			}
		}
	}

	// materials. uniaxial materials, nD materials and shell sections live in
	// separate OpenSees namespaces; the blocks of tags are kept disjoint
	// anyway, with bases derived from the material count
	nmat := len(m.Mats.Materials)
	mattag := make(map[string]int) // material name => uniaxial tag
	ndtag := make(map[string]int)  // material name => nD tag
	for i, mm := range m.Mats.Materials {
		vals, found := mm.Prms.GetValues([]string{"E", "nu"})
		if !found[0] {
			return chk.Err("material %q has no stiffness parameter; cannot be mapped to opensees", mm.Name)
		}
		E := vals[0]
		nu := 0.3
		if found[1] {
			nu = vals[1]
		}
		rho := mm.Mdl.GetRho()
		mattag[mm.Name] = 1 + i
		ndtag[mm.Name] = 1 + nmat + i
		b.WriteString(io.Sf("uniaxialMaterial Elastic %d %g\n", mattag[mm.Name], E))
		b.WriteString(io.Sf("nDMaterial ElasticIsotropic %d %g %g %g\n", ndtag[mm.Name], E, nu, rho))
	}

	// shell sections
	shelltag := make(map[string]int) // section name => shell section tag
	isec := 0
	for _, s := range m.Secs.Sections {
		if s.Kind != "shell" {
			continue
		}
		mm := m.Mats.Get(s.Mat)
		vals, _ := mm.Prms.GetValues([]string{"E", "nu"})
		shelltag[s.Name] = 1 + 2*nmat + isec
		isec++
		b.WriteString(io.Sf("section ElasticMembranePlateSection %d %g %g %g %g\n",
			shelltag[s.Name], vals[0], vals[1], s.Props.Th, mm.Mdl.GetRho()))
	}

	b.WriteString(io.Sf("geomTransf Linear %d 0 0 1\n", transfTag))

	// elements
	for _, prt := range m.Parts {
		for _, ele := range prt.Elems {
			s := m.Secs.Get(ele.Sec)
			eid := o.num.Elem(prt.Name, ele.Id)
			conn := make([]string, len(ele.Verts))
			for i, v := range ele.Verts {
				conn[i] = io.Sf("%d", o.num.Node(prt.Name, v))
			}
			switch ele.Type {
			case "truss", "link", "strut", "tie":
				b.WriteString(io.Sf("element truss %d %s %g %d\n",
					eid, strings.Join(conn, " "), s.Props.A, mattag[s.Mat]))
			case "beam":
				mm := m.Mats.Get(s.Mat)
				vals, found := mm.Prms.GetValues([]string{"E", "nu"})
				E := vals[0]
				G := E / 2.6
				if found[1] {
					G = E / (2 * (1 + vals[1]))
				}
				b.WriteString(io.Sf("element elasticBeamColumn %d %s %g %g %g %g %g %g %d\n",
					eid, strings.Join(conn, " "), s.Props.A, E, G, s.Props.J, s.Props.Iyy, s.Props.Ixx, transfTag))
			case "shell":
				if len(ele.Verts) != 4 {
					return chk.Err("shell element %d of part %q must have 4 nodes for opensees", ele.Id, prt.Name)
				}
				b.WriteString(io.Sf("element ShellMITC4 %d %s %d\n", eid, strings.Join(conn, " "), shelltag[ele.Sec]))
			case "tet4":
				b.WriteString(io.Sf("element FourNodeTetrahedron %d %s %d\n", eid, strings.Join(conn, " "), ndtag[s.Mat]))
			case "hex8":
				b.WriteString(io.Sf("element stdBrick %d %s %d\n", eid, strings.Join(conn, " "), ndtag[s.Mat]))
			case "mass":
				if s == nil {
					return chk.Err("mass element %d of part %q has no section defining its mass", ele.Id, prt.Name)
				}
				g := o.num.Node(prt.Name, ele.Verts[0])
				b.WriteString(io.Sf("mass %d %g %g %g 0 0 0\n", g, s.Props.M, s.Props.M, s.Props.M))
			default:
				return chk.Err("element type %q cannot be mapped to opensees", ele.Type)
			}
		}
	}

	// boundary conditions
	for _, bc := range m.Bcs {
		keys, err := bc.DofKeysBlocked()
		if err != nil {
			return err
		}
		prt, ids, err := m.ResolveNodeSet(bc.Part, bc.Nodes, bc.Group)
		if err != nil {
			return err
		}
		flags := make([]string, 6)
		for i, dk := range model.DofKeys {
			if utl.StrIndexSmall(keys, dk) >= 0 {
				flags[i] = "1"
			} else {
				flags[i] = "0"
			}
		}
		for _, id := range ids {
			b.WriteString(io.Sf("fix %d %s\n", o.num.Node(prt.Name, id), strings.Join(flags, " ")))
		}
	}

	// constraints: master-slave couplings
	for _, c := range m.Constraints {
		dofs := c.CoupledDofs()
		nums := make([]string, len(dofs))
		for i, dk := range dofs {
			nums[i] = io.Sf("%d", utl.StrIndexSmall(model.DofKeys, dk)+1)
		}
		for _, sl := range c.Slaves {
			b.WriteString(io.Sf("equalDOF %d %d %s\n",
				o.num.Node(c.Master.Part, c.Master.Node), o.num.Node(sl.Part, sl.Node), strings.Join(nums, " ")))
		}
	}

	// recorders; one displacement and one reaction file per job
	nn := o.num.Nnodes()
	b.WriteString(io.Sf("recorder Node -file %s_u.out -time -nodeRange 1 %d -dof 1 2 3 disp\n", p.Name, nn))
	b.WriteString(io.Sf("recorder Node -file %s_rf.out -time -nodeRange 1 %d -dof 1 2 3 reaction\n", p.Name, nn))

	// steps
	for _, stp := range p.Steps {
		err = o.writeStep(&b, p, stp)
		if err != nil {
			return err
		}
	}

	fn := filepath.Join(dir, p.Name+".tcl")
	io.WriteStringToFileD(filepath.Dir(fn), filepath.Base(fn), b.String())
	return nil
}

// writeLoadRows writes the load rows of one node or harmonic load
func (o *Runner) writeLoadRows(b *strings.Builder, m *model.Model, ld *problem.Load) (err error) {
	prt, ids, err := m.ResolveNodeSet(ld.Part, ld.Nodes, ld.Group)
	if err != nil {
		return err
	}
	comps := make([]float64, 6)
	for i, key := range ld.Keys {
		comps[utl.StrIndexSmall(problem.LoadKeys, key)] = ld.Vals[i]
	}
	for _, id := range ids {
		b.WriteString(io.Sf("  load %d %g %g %g %g %g %g\n", o.num.Node(prt.Name, id),
			comps[0], comps[1], comps[2], comps[3], comps[4], comps[5]))
	}
	return nil
}

// writeStep writes the load patterns and analysis commands of one step
func (o *Runner) writeStep(b *strings.Builder, p *problem.Problem, stp *problem.Step) (err error) {
	m := p.Model
	b.WriteString(io.Sf("# step %s\n", stp.Name))

	if stp.Buckling != nil {
		return chk.Err("step %q: buckling steps are not supported by the opensees backend", stp.Name)
	}

	// plain node loads follow the step's linear ramp; harmonic loads get their
	// own sinusoidal series and are only meaningful in a transient analysis
	var plain, harmonic []*problem.Load
	for _, ld := range stp.Loads {
		switch ld.Type {
		case "node":
			plain = append(plain, ld)
		case "harmonic":
			if stp.Dynamic == nil {
				return chk.Err("load %q: harmonic loads require a dynamic step", ld.Name)
			}
			harmonic = append(harmonic, ld)
		default:
			return chk.Err("load %q: type %q is not supported by the opensees backend", ld.Name, ld.Type)
		}
	}

	if len(plain)+len(stp.Disps) > 0 {
		o.pat++
		b.WriteString(io.Sf("timeSeries Linear %d\n", o.pat))
		b.WriteString(io.Sf("pattern Plain %d %d {\n", o.pat, o.pat))
		for _, ld := range plain {
			err = o.writeLoadRows(b, m, ld)
			if err != nil {
				return err
			}
		}
		for _, pd := range stp.Disps {
			prt, ids, err := m.ResolveNodeSet(pd.Part, pd.Nodes, pd.Group)
			if err != nil {
				return err
			}
			for _, id := range ids {
				for i, key := range pd.Keys {
					b.WriteString(io.Sf("  sp %d %d %g\n", o.num.Node(prt.Name, id),
						utl.StrIndexSmall(model.DofKeys, key)+1, pd.Vals[i]))
				}
			}
		}
		b.WriteString("}\n")
	}

	// one sinusoidal series per harmonic load; loads may differ in frequency
	for _, ld := range harmonic {
		o.pat++
		b.WriteString(io.Sf("timeSeries Trig %d 0.0 %g %g\n", o.pat, stp.Dynamic.Tf, 1.0/ld.Freq))
		b.WriteString(io.Sf("pattern Plain %d %d {\n", o.pat, o.pat))
		err = o.writeLoadRows(b, m, ld)
		if err != nil {
			return err
		}
		b.WriteString("}\n")
	}

	b.WriteString("constraints Transform\nnumberer RCM\nsystem BandGeneral\n")
	switch {
	case stp.Static != nil:
		nincs := stp.Static.Nincs
		if nincs < 1 {
			nincs = 1
		}
		b.WriteString("test NormDispIncr 1.0e-8 25\nalgorithm Newton\n")
		b.WriteString(io.Sf("integrator LoadControl %g\n", 1.0/float64(nincs)))
		b.WriteString(io.Sf("analysis Static\nanalyze %d\nloadConst -time 0.0\n", nincs))
	case stp.Dynamic != nil:
		n := int(stp.Dynamic.Tf/stp.Dynamic.Dt + 0.5)
		if n < 1 {
			n = 1
		}
		if stp.Dynamic.Alpha != 0 || stp.Dynamic.Beta != 0 {
			b.WriteString(io.Sf("rayleigh %g %g 0 0\n", stp.Dynamic.Alpha, stp.Dynamic.Beta))
		}
		b.WriteString("test NormDispIncr 1.0e-8 25\nalgorithm Newton\n")
		b.WriteString("integrator Newmark 0.5 0.25\n")
		b.WriteString(io.Sf("analysis Transient\nanalyze %d %g\nloadConst -time 0.0\n", n, stp.Dynamic.Dt))
	case stp.Modal != nil:
		b.WriteString(io.Sf("set eigs [eigen %d]\n", stp.Modal.Nmodes))
		b.WriteString(io.Sf("set f [open %s_eigs.out w]\n", p.Name))
		b.WriteString("foreach lam $eigs { puts $f [expr sqrt($lam)/(2.0*acos(-1.0))] }\n")
		b.WriteString("close $f\n")
	}
	return nil
}
