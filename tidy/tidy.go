// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tidy reshapes data tables between wide and long form.
//
// Gather and Spread convert between a wide layout, where each
// observed variable has its own column, and a long layout, where one
// column names the variable and another holds its value (sometimes
// called melt and cast). Separate and Unite split and join string
// columns. All verbs work on grouped tables and preserve grouping.
//
// The underlying table package panics on malformed reshapes; the
// verbs here validate their inputs and return errors instead, which
// is what interactive analysis pipelines want.
package tidy

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Gather converts the named cols from wide to long form. It returns a
// table with all remaining columns unchanged, plus a key column
// holding the gathered column names and a value column holding their
// values. The gathered columns must all have the same type.
func Gather(g table.Grouping, key, value string, cols ...string) (table.Grouping, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("gather: no columns to gather")
	}
	have := make(map[string]bool)
	for _, c := range g.Columns() {
		have[c] = true
	}
	var typ reflect.Type
	for _, c := range cols {
		if !have[c] {
			return nil, fmt.Errorf("gather: unknown column %q", c)
		}
		ct := columnType(g, c)
		if typ == nil {
			typ = ct
		} else if ct != nil && ct != typ {
			return nil, fmt.Errorf("gather: column %q has type %s; want %s", c, ct, typ)
		}
	}
	gathered := make(map[string]bool)
	for _, c := range cols {
		gathered[c] = true
	}
	for _, c := range g.Columns() {
		if gathered[c] {
			continue
		}
		if c == key || c == value {
			return nil, fmt.Errorf("gather: key/value column %q collides with kept column", c)
		}
	}
	if key == value {
		return nil, fmt.Errorf("gather: key and value are both %q", key)
	}
	return table.Unpivot(g, key, value, cols...), nil
}

// GatherExcept gathers every column not listed in except. It is the
// usual form when a table has one or two identifying columns and many
// observation columns.
func GatherExcept(g table.Grouping, key, value string, except ...string) (table.Grouping, error) {
	keep := make(map[string]bool)
	for _, c := range except {
		keep[c] = true
	}
	var cols []string
	have := make(map[string]bool)
	for _, c := range g.Columns() {
		have[c] = true
		if !keep[c] {
			cols = append(cols, c)
		}
	}
	for _, c := range except {
		if !have[c] {
			return nil, fmt.Errorf("gather: unknown column %q", c)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("gather: no columns left to gather")
	}
	return Gather(g, key, value, cols...)
}

// Spread converts from long to wide form: each distinct value of the
// key column becomes its own column, filled from the value column.
// The key column must be a string column, and each output cell must
// be identified by a unique combination of the remaining columns and
// the key; a duplicate is an error.
func Spread(g table.Grouping, key, value string) (table.Grouping, error) {
	have := make(map[string]bool)
	var idCols []string
	for _, c := range g.Columns() {
		have[c] = true
		if c != key && c != value {
			idCols = append(idCols, c)
		}
	}
	if !have[key] {
		return nil, fmt.Errorf("spread: unknown key column %q", key)
	}
	if !have[value] {
		return nil, fmt.Errorf("spread: unknown value column %q", value)
	}
	if t := columnType(g, key); t != nil && t != reflect.TypeOf([]string(nil)) {
		return nil, fmt.Errorf("spread: key column %q must be a string column; have %s", key, t)
	}

	// A (row identity, key) pair may appear only once; otherwise
	// cells would silently overwrite each other.
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		keys := t.MustColumn(key).([]string)
		seen := make(map[string]int, t.Len())
		for i := 0; i < t.Len(); i++ {
			var id strings.Builder
			for _, c := range idCols {
				fmt.Fprintf(&id, "%v\x00", reflect.ValueOf(t.Column(c)).Index(i).Interface())
			}
			id.WriteString(keys[i])
			if j, ok := seen[id.String()]; ok {
				return nil, fmt.Errorf("spread: rows %d and %d produce the same cell (key %q)", j, i, keys[i])
			}
			seen[id.String()] = i
		}
	}
	return table.Pivot(g, key, value), nil
}

// Separate splits the string column col on sep into len(into) new
// columns, which replace col at its position. Every row must split
// into exactly len(into) pieces.
func Separate(g table.Grouping, col string, into []string, sep string) (table.Grouping, error) {
	if len(into) < 2 {
		return nil, fmt.Errorf("separate: need at least 2 destination columns; have %d", len(into))
	}
	if err := checkStringColumn(g, "separate", col); err != nil {
		return nil, err
	}
	for _, c := range g.Columns() {
		if c == col {
			continue
		}
		for _, in := range into {
			if c == in {
				return nil, fmt.Errorf("separate: destination column %q already exists", in)
			}
		}
	}

	var ng table.GroupingBuilder
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		vals := t.MustColumn(col).([]string)
		parts := make([][]string, len(into))
		for i := range parts {
			parts[i] = make([]string, len(vals))
		}
		for i, v := range vals {
			ps := strings.Split(v, sep)
			if len(ps) != len(into) {
				return nil, fmt.Errorf("separate: row %d: %q splits into %d piece(s); want %d", i, v, len(ps), len(into))
			}
			for j, p := range ps {
				parts[j][i] = p
			}
		}
		var b table.Builder
		for _, c := range t.Columns() {
			if c != col {
				b.Add(c, t.Column(c))
				continue
			}
			for j, in := range into {
				b.Add(in, parts[j])
			}
		}
		ng.Add(gid, b.Done())
	}
	return ng.Done(), nil
}

// Unite joins the named string columns with sep into a single new
// column, which replaces the first of them at its position.
func Unite(g table.Grouping, newCol, sep string, cols ...string) (table.Grouping, error) {
	if len(cols) < 2 {
		return nil, fmt.Errorf("unite: need at least 2 source columns; have %d", len(cols))
	}
	for _, c := range cols {
		if err := checkStringColumn(g, "unite", c); err != nil {
			return nil, err
		}
	}
	united := make(map[string]bool)
	for _, c := range cols {
		united[c] = true
	}
	for _, c := range g.Columns() {
		if !united[c] && c == newCol {
			return nil, fmt.Errorf("unite: column %q already exists", newCol)
		}
	}

	var ng table.GroupingBuilder
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		pieces := make([][]string, len(cols))
		for j, c := range cols {
			pieces[j] = t.MustColumn(c).([]string)
		}
		joined := make([]string, t.Len())
		row := make([]string, len(cols))
		for i := range joined {
			for j := range cols {
				row[j] = pieces[j][i]
			}
			joined[i] = strings.Join(row, sep)
		}
		var b table.Builder
		for _, c := range t.Columns() {
			switch {
			case c == cols[0]:
				b.Add(newCol, joined)
			case united[c]:
				// Dropped.
			default:
				b.Add(c, t.Column(c))
			}
		}
		ng.Add(gid, b.Done())
	}
	return ng.Done(), nil
}

// columnType returns the slice type of column c, or nil if g has no
// tables to inspect.
func columnType(g table.Grouping, c string) reflect.Type {
	for _, gid := range g.Tables() {
		if col := g.Table(gid).Column(c); col != nil {
			return reflect.TypeOf(col)
		}
	}
	return nil
}

func checkStringColumn(g table.Grouping, verb, c string) error {
	found := false
	for _, c2 := range g.Columns() {
		if c2 == c {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%s: unknown column %q", verb, c)
	}
	if t := columnType(g, c); t != nil && t != reflect.TypeOf([]string(nil)) {
		return fmt.Errorf("%s: column %q must be a string column; have %s", verb, c, t)
	}
	return nil
}
