// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calculix

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fea2/compas-fea2/backend"
	"github.com/fea2/compas-fea2/problem"
	"github.com/fea2/compas-fea2/results"
)

// datBlock holds one table printed to the .dat file
type datBlock struct {
	kind string      // "u", "rf" or "s"
	time float64     // solver time stamp of this table
	ids  []int       // global node or element ids
	vals [][]float64 // component values per row
}

// ReadResults reads the .dat file back into results. The numbering built by
// WriteInput translates global ids to part-local ones.
func (o *Runner) ReadResults(p *problem.Problem, dir string) (*results.Results, error) {
	if o.num == nil {
		o.num = backend.NewNumbering(p.Model)
	}
	fn := filepath.Join(dir, p.Name+".dat")
	f, err := os.Open(fn)
	if err != nil {
		return nil, &backend.ParseError{Backend: Name, File: fn, Msg: "output file is missing", Err: err}
	}
	defer f.Close()

	blocks, freqs, err := o.scanDat(f, fn)
	if err != nil {
		return nil, err
	}

	// distribute blocks over steps in order; when a step produced several
	// increments only its last table is kept
	res := results.New()
	perKind := make(map[string][]*datBlock)
	for _, blk := range blocks {
		perKind[blk.kind] = append(perKind[blk.kind], blk)
	}
	for i, stp := range p.Steps {
		sr := res.AddStep(stp.Name)
		for kind, blks := range perKind {
			blk := pickBlock(blks, i, len(p.Steps))
			if blk == nil {
				continue
			}
			fld := o.blockToField(blk)
			sr.Fields[kind] = fld

			// history series come from the same tables, one point per table
			for _, h := range stp.Hists {
				if h.Key != kind {
					continue
				}
				series := &results.Series{}
				for _, b := range blocksOfStep(blks, i, len(p.Steps)) {
					bf := o.blockToField(b)
					v, err := bf.Value(h.Part, h.Node, h.Dof)
					if err != nil {
						continue
					}
					series.Times = append(series.Times, b.time)
					series.Vals = append(series.Vals, v)
				}
				if len(series.Times) > 0 {
					sr.Hists[h.Name] = series
				}
			}
		}
		if stp.Modal != nil || stp.Buckling != nil {
			sr.Freqs = freqs
		}
	}
	return res, nil
}

// blockToField converts one table into a field with part-local entity keys
func (o *Runner) blockToField(blk *datBlock) *results.Field {
	var keys []string
	on := "nodes"
	switch blk.kind {
	case "u":
		keys = []string{"ux", "uy", "uz"}
	case "rf":
		keys = []string{"rfx", "rfy", "rfz"}
	case "s":
		keys = []string{"sxx", "syy", "szz", "sxy", "sxz", "syz"}
		on = "elems"
	}
	fld := results.NewField(on, keys)
	for i, glob := range blk.ids {
		var part string
		var id int
		var ok bool
		if on == "nodes" {
			part, id, ok = o.num.NodeBack(glob)
		} else {
			part, id, ok = o.num.ElemBack(glob)
		}
		if !ok {
			continue
		}
		fld.Set(part, id, blk.vals[i])
	}
	return fld
}

// pickBlock returns the last table belonging to step i out of nsteps
func pickBlock(blks []*datBlock, i, nsteps int) *datBlock {
	sub := blocksOfStep(blks, i, nsteps)
	if len(sub) == 0 {
		return nil
	}
	return sub[len(sub)-1]
}

// blocksOfStep slices the tables belonging to step i out of nsteps. Tables
// are distributed evenly since the .dat file carries no step markers.
func blocksOfStep(blks []*datBlock, i, nsteps int) []*datBlock {
	if len(blks) == 0 || nsteps <= 0 {
		return nil
	}
	per := len(blks) / nsteps
	if per == 0 {
		if i == nsteps-1 {
			return blks
		}
		return nil
	}
	lo := i * per
	hi := lo + per
	if i == nsteps-1 {
		hi = len(blks)
	}
	return blks[lo:hi]
}

// scanDat reads all tables and eigenfrequencies from the .dat file
func (o *Runner) scanDat(f *os.File, fn string) (blocks []*datBlock, freqs []float64, err error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	var cur *datBlock
	inEig := false
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// table headers
		switch {
		case strings.HasPrefix(trimmed, "displacements ("):
			cur = &datBlock{kind: "u", time: headerTime(trimmed)}
			blocks = append(blocks, cur)
			inEig = false
			continue
		case strings.HasPrefix(trimmed, "forces ("):
			cur = &datBlock{kind: "rf", time: headerTime(trimmed)}
			blocks = append(blocks, cur)
			inEig = false
			continue
		case strings.HasPrefix(trimmed, "stresses ("):
			cur = &datBlock{kind: "s", time: headerTime(trimmed)}
			blocks = append(blocks, cur)
			inEig = false
			continue
		case strings.Contains(trimmed, "E I G E N V A L U E"):
			cur = nil
			inEig = true
			continue
		}

		fields := strings.Fields(trimmed)
		first, errAtoi := strconv.Atoi(fields[0])
		if errAtoi != nil {
			// non-numeric line ends the current table
			if !strings.Contains(trimmed, "E I G") && !inEig {
				cur = nil
			}
			continue
		}

		if inEig {
			// mode number followed by eigenvalue, omega and frequency
			if len(fields) >= 4 {
				fval, errf := strconv.ParseFloat(fields[3], 64)
				if errf != nil {
					return nil, nil, &backend.ParseError{Backend: Name, File: fn, Line: lineno,
						Msg: "malformed eigenvalue record", Err: errf}
				}
				freqs = append(freqs, fval)
			}
			continue
		}
		if cur == nil {
			continue
		}

		// table row: id followed by components; stress rows carry an extra
		// integration point column which is dropped (first point kept)
		want := 3
		skip := 0
		if cur.kind == "s" {
			want = 6
			skip = 1
		}
		if len(fields) < 1+skip+want {
			return nil, nil, &backend.ParseError{Backend: Name, File: fn, Line: lineno,
				Msg: "truncated table row"}
		}
		if skip == 1 {
			ip, errIp := strconv.Atoi(fields[1])
			if errIp != nil {
				return nil, nil, &backend.ParseError{Backend: Name, File: fn, Line: lineno,
					Msg: "malformed integration point column", Err: errIp}
			}
			if ip != 1 {
				continue
			}
		}
		vals := make([]float64, want)
		for i := 0; i < want; i++ {
			v, errf := strconv.ParseFloat(fields[1+skip+i], 64)
			if errf != nil {
				return nil, nil, &backend.ParseError{Backend: Name, File: fn, Line: lineno,
					Msg: "malformed table value", Err: errf}
			}
			vals[i] = v
		}
		cur.ids = append(cur.ids, first)
		cur.vals = append(cur.vals, vals)
	}
	if errSc := scanner.Err(); errSc != nil {
		return nil, nil, &backend.ParseError{Backend: Name, File: fn, Msg: "cannot read output file", Err: errSc}
	}
	return
}

// headerTime extracts the time stamp of one table header
func headerTime(header string) float64 {
	idx := strings.LastIndex(header, "time")
	if idx < 0 {
		return 0
	}
	fields := strings.Fields(header[idx+len("time"):])
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}
