// Copyright 2025 The Compas-FEA2 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	_ "modernc.org/sqlite"
)

// Db wraps the SQLite results database. One table is created per field key
// ("u" => U, "rf" => RF, "s" => S) holding step, part, entity id and the
// field components; history series and modal frequencies get fixed tables.
type Db struct {
	Path string  // file path of database
	db   *sql.DB // connection
}

// OpenDb opens (and creates if needed) a results database file
func OpenDb(path string) (o *Db, err error) {
	err = os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return nil, chk.Err("cannot create directory for results database: %v", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, chk.Err("cannot open results database %q: %v", path, err)
	}
	if err = db.Ping(); err != nil {
		return nil, chk.Err("cannot reach results database %q: %v", path, err)
	}
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, chk.Err("cannot configure results database: %v", err)
	}
	o = &Db{Path: path, db: db}
	err = o.initSchema()
	if err != nil {
		return nil, err
	}
	return
}

// Close closes the database connection
func (o *Db) Close() error {
	return o.db.Close()
}

// tableName maps a field key to its table name
func tableName(fieldKey string) string {
	return strings.ToUpper(fieldKey)
}

// initSchema creates the fixed tables
func (o *Db) initSchema() (err error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS fields (
			key  TEXT NOT NULL,
			step TEXT NOT NULL,
			onw  TEXT NOT NULL,
			comps TEXT NOT NULL,
			PRIMARY KEY (key, step)
		)`,
		`CREATE TABLE IF NOT EXISTS hists (
			step TEXT NOT NULL,
			name TEXT NOT NULL,
			t    REAL NOT NULL,
			val  REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS freqs (
			step TEXT NOT NULL,
			mode INTEGER NOT NULL,
			val  REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS steps (
			idx  INTEGER NOT NULL,
			name TEXT NOT NULL
		)`,
	} {
		if _, err = o.db.Exec(ddl); err != nil {
			return chk.Err("cannot create results schema: %v", err)
		}
	}
	return
}

// Save stores a whole results handle. Existing rows of the same steps are
// replaced.
func (o *Db) Save(res *Results) (err error) {
	tx, err := o.db.Begin()
	if err != nil {
		return chk.Err("cannot begin transaction: %v", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if _, err = tx.Exec("DELETE FROM steps"); err != nil {
		return chk.Err("cannot clear steps table: %v", err)
	}
	for i, stepname := range res.Order {
		if _, err = tx.Exec("INSERT INTO steps (idx, name) VALUES (?, ?)", i, stepname); err != nil {
			return chk.Err("cannot save step %q: %v", stepname, err)
		}
		sr := res.Steps[stepname]
		for key, fld := range sr.Fields {
			if err = o.saveField(tx, stepname, key, fld); err != nil {
				return
			}
		}
		for name, h := range sr.Hists {
			if _, err = tx.Exec("DELETE FROM hists WHERE step = ? AND name = ?", stepname, name); err != nil {
				return chk.Err("cannot clear history %q: %v", name, err)
			}
			for i, t := range h.Times {
				if _, err = tx.Exec("INSERT INTO hists (step, name, t, val) VALUES (?, ?, ?, ?)",
					stepname, name, t, h.Vals[i]); err != nil {
					return chk.Err("cannot save history %q: %v", name, err)
				}
			}
		}
		if _, err = tx.Exec("DELETE FROM freqs WHERE step = ?", stepname); err != nil {
			return chk.Err("cannot clear frequencies: %v", err)
		}
		for mode, f := range sr.Freqs {
			if _, err = tx.Exec("INSERT INTO freqs (step, mode, val) VALUES (?, ?, ?)",
				stepname, mode+1, f); err != nil {
				return chk.Err("cannot save frequencies: %v", err)
			}
		}
	}
	return tx.Commit()
}

// saveField stores one field into its per-key table, creating the table on
// first use with one column per component
func (o *Db) saveField(tx *sql.Tx, stepname, key string, fld *Field) (err error) {
	tab := tableName(key)
	cols := make([]string, len(fld.Keys))
	for i := range fld.Keys {
		cols[i] = io.Sf("c%d REAL", i)
	}
	ddl := io.Sf(`CREATE TABLE IF NOT EXISTS %s (step TEXT NOT NULL, part TEXT NOT NULL, id INTEGER NOT NULL, %s)`,
		tab, strings.Join(cols, ", "))
	if _, err = tx.Exec(ddl); err != nil {
		return chk.Err("cannot create table %s: %v", tab, err)
	}
	if _, err = tx.Exec(io.Sf("DELETE FROM %s WHERE step = ?", tab), stepname); err != nil {
		return chk.Err("cannot clear table %s: %v", tab, err)
	}
	if _, err = tx.Exec("INSERT OR REPLACE INTO fields (key, step, onw, comps) VALUES (?, ?, ?, ?)",
		key, stepname, fld.On, strings.Join(fld.Keys, ",")); err != nil {
		return chk.Err("cannot register field %q: %v", key, err)
	}
	marks := make([]string, len(fld.Keys))
	for i := range marks {
		marks[i] = "?"
	}
	ins := io.Sf("INSERT INTO %s (step, part, id, %s) VALUES (?, ?, ?, %s)",
		tab, colNames(len(fld.Keys)), strings.Join(marks, ", "))
	for ent, vals := range fld.Vals {
		part, id, err := splitEntkey(ent)
		if err != nil {
			return err
		}
		args := []interface{}{stepname, part, id}
		for _, v := range vals {
			args = append(args, v)
		}
		if _, err = tx.Exec(ins, args...); err != nil {
			return chk.Err("cannot insert into table %s: %v", tab, err)
		}
	}
	return
}

// colNames returns "c0, c1, ..., c<n-1>"
func colNames(n int) string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = io.Sf("c%d", i)
	}
	return strings.Join(cols, ", ")
}

// Load reads a whole results handle back from the database
func (o *Db) Load() (res *Results, err error) {
	res = New()

	// step order
	rows, err := o.db.Query("SELECT name FROM steps ORDER BY idx")
	if err != nil {
		return nil, chk.Err("cannot load steps: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, chk.Err("cannot scan step: %v", err)
		}
		res.AddStep(name)
	}
	if err = rows.Err(); err != nil {
		return nil, chk.Err("cannot load steps: %v", err)
	}

	// fields
	frows, err := o.db.Query("SELECT key, step, onw, comps FROM fields")
	if err != nil {
		return nil, chk.Err("cannot load field index: %v", err)
	}
	defer frows.Close()
	type fdef struct{ key, step, on, comps string }
	var fdefs []fdef
	for frows.Next() {
		var d fdef
		if err = frows.Scan(&d.key, &d.step, &d.on, &d.comps); err != nil {
			return nil, chk.Err("cannot scan field index: %v", err)
		}
		fdefs = append(fdefs, d)
	}
	if err = frows.Err(); err != nil {
		return nil, chk.Err("cannot load field index: %v", err)
	}
	for _, d := range fdefs {
		sr, ok := res.Steps[d.step]
		if !ok {
			continue
		}
		comps := strings.Split(d.comps, ",")
		fld := NewField(d.on, comps)
		q := io.Sf("SELECT part, id, %s FROM %s WHERE step = ?", colNames(len(comps)), tableName(d.key))
		vrows, err := o.db.Query(q, d.step)
		if err != nil {
			return nil, chk.Err("cannot load field %q: %v", d.key, err)
		}
		for vrows.Next() {
			var part string
			var id int
			vals := make([]float64, len(comps))
			ptrs := []interface{}{&part, &id}
			for i := range vals {
				ptrs = append(ptrs, &vals[i])
			}
			if err = vrows.Scan(ptrs...); err != nil {
				vrows.Close()
				return nil, chk.Err("cannot scan field %q: %v", d.key, err)
			}
			fld.Set(part, id, vals)
		}
		if err = vrows.Err(); err != nil {
			vrows.Close()
			return nil, chk.Err("cannot load field %q: %v", d.key, err)
		}
		vrows.Close()
		sr.Fields[d.key] = fld
	}

	// histories
	hrows, err := o.db.Query("SELECT step, name, t, val FROM hists ORDER BY rowid")
	if err != nil {
		return nil, chk.Err("cannot load histories: %v", err)
	}
	defer hrows.Close()
	for hrows.Next() {
		var step, name string
		var t, val float64
		if err = hrows.Scan(&step, &name, &t, &val); err != nil {
			return nil, chk.Err("cannot scan history: %v", err)
		}
		sr, ok := res.Steps[step]
		if !ok {
			continue
		}
		h, ok := sr.Hists[name]
		if !ok {
			h = new(Series)
			sr.Hists[name] = h
		}
		h.Times = append(h.Times, t)
		h.Vals = append(h.Vals, val)
	}
	if err = hrows.Err(); err != nil {
		return nil, chk.Err("cannot load histories: %v", err)
	}

	// frequencies
	qrows, err := o.db.Query("SELECT step, val FROM freqs ORDER BY step, mode")
	if err != nil {
		return nil, chk.Err("cannot load frequencies: %v", err)
	}
	defer qrows.Close()
	for qrows.Next() {
		var step string
		var val float64
		if err = qrows.Scan(&step, &val); err != nil {
			return nil, chk.Err("cannot scan frequency: %v", err)
		}
		if sr, ok := res.Steps[step]; ok {
			sr.Freqs = append(sr.Freqs, val)
		}
	}
	if err = qrows.Err(); err != nil {
		return nil, chk.Err("cannot load frequencies: %v", err)
	}
	return
}
