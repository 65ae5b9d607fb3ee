// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opensees

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

// recRow holds one line of a node recorder file: a time stamp followed by
// three values per node
type recRow struct {
	time float64
	vals []float64
}

// ReadResults reads the recorder files back into results. The numbering
// built by WriteInput translates recorder column positions to nodes.
func (o *Runner) ReadResults(p *problem.Problem, dir string) (*results.Results, error) {
	if o.num == nil {
		o.num = backend.NewNumbering(p.Model)
	}

	urows, err := o.readRecorder(filepath.Join(dir, p.Name+"_u.out"))
	if err != nil {
		return nil, err
	}
	rfrows, err := o.readRecorder(filepath.Join(dir, p.Name+"_rf.out"))
	if err != nil {
		return nil, err
	}

	// count solution rows expected per step so recorder lines can be
	// attributed; modal steps do not advance the recorders
	var counts []int
	total := 0
	for _, stp := range p.Steps {
		n := 0
		switch {
		case stp.Static != nil:
			n = stp.Static.Nincs
			if n < 1 {
				n = 1
			}
		case stp.Dynamic != nil:
			n = int(stp.Dynamic.Tf/stp.Dynamic.Dt + 0.5)
			if n < 1 {
				n = 1
			}
		}
		counts = append(counts, n)
		total += n
	}
	if len(urows) < total {
		return nil, &backend.ParseError{Backend: Name, File: p.Name + "_u.out",
			Msg: "recorder has fewer rows than analysis increments"}
	}

	res := results.New()
	offset := 0
	for i, stp := range p.Steps {
		sr := res.AddStep(stp.Name)
		n := counts[i]
		if n > 0 {
			sub := urows[offset : offset+n]
			sr.Fields["u"] = o.rowToField(sub[len(sub)-1], []string{"ux", "uy", "uz"})
			if len(rfrows) >= offset+n {
				rsub := rfrows[offset : offset+n]
				sr.Fields["rf"] = o.rowToField(rsub[len(rsub)-1], []string{"rfx", "rfy", "rfz"})
			}
			for _, h := range stp.Hists {
				var rows []recRow
				var keys []string
				switch h.Key {
				case "u":
					rows, keys = sub, []string{"ux", "uy", "uz"}
				case "rf":
					if len(rfrows) >= offset+n {
						rows, keys = rfrows[offset:offset+n], []string{"rfx", "rfy", "rfz"}
					}
				}
				if rows == nil {
					continue
				}
				series := &results.Series{}
				for _, row := range rows {
					fld := o.rowToField(row, keys)
					v, err := fld.Value(h.Part, h.Node, h.Dof)
					if err != nil {
						continue
					}
					series.Times = append(series.Times, row.time)
					series.Vals = append(series.Vals, v)
				}
				if len(series.Times) > 0 {
					sr.Hists[h.Name] = series
				}
			}
			offset += n
		}
		if stp.Modal != nil {
			freqs, err := o.readEigs(filepath.Join(dir, p.Name+"_eigs.out"))
			if err != nil {
				return nil, err
			}
			sr.Freqs = freqs
		}
	}
	return res, nil
}

// rowToField converts one recorder row into a field keyed by part and node
func (o *Runner) rowToField(row recRow, keys []string) *results.Field {
	fld := results.NewField("nodes", keys)
	for glob := 1; glob <= o.num.Nnodes(); glob++ {
		lo := (glob - 1) * 3
		if lo+3 > len(row.vals) {
			break
		}
		part, id, ok := o.num.NodeBack(glob)
		if !ok {
			continue
		}
		fld.Set(part, id, row.vals[lo:lo+3])
	}
	return fld
}

// readRecorder reads one node recorder output file
func (o *Runner) readRecorder(fn string) (rows []recRow, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, &backend.ParseError{Backend: Name, File: fn, Msg: "recorder file is missing", Err: err}
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 1+3*o.num.Nnodes() {
			return nil, &backend.ParseError{Backend: Name, File: fn, Line: lineno,
				Msg: "recorder row has the wrong number of columns"}
		}
		row := recRow{vals: make([]float64, len(fields)-1)}
		for i, s := range fields {
			v, errf := strconv.ParseFloat(s, 64)
			if errf != nil {
				return nil, &backend.ParseError{Backend: Name, File: fn, Line: lineno,
					Msg: "malformed recorder value", Err: errf}
			}
			if i == 0 {
				row.time = v
			} else {
				row.vals[i-1] = v
			}
		}
		rows = append(rows, row)
	}
	if errSc := scanner.Err(); errSc != nil {
		return nil, &backend.ParseError{Backend: Name, File: fn, Msg: "cannot read recorder file", Err: errSc}
	}
	return
}

// readEigs reads the frequencies written by the modal step
func (o *Runner) readEigs(fn string) (freqs []float64, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, &backend.ParseError{Backend: Name, File: fn, Msg: "eigenvalue file is missing", Err: err}
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, errf := strconv.ParseFloat(line, 64)
		if errf != nil {
			return nil, &backend.ParseError{Backend: Name, File: fn, Line: lineno,
				Msg: "malformed frequency", Err: errf}
		}
		freqs = append(freqs, v)
	}
	if errSc := scanner.Err(); errSc != nil {
		return nil, &backend.ParseError{Backend: Name, File: fn, Msg: "cannot read eigenvalue file", Err: errSc}
	}
	return
}
