// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relate joins tables that share a key column.
//
// These are the verbs for combining denormalized tables: Inner keeps
// the rows with matches, Left keeps every left row and fills the
// right columns of unmatched rows with NA, and Semi and Anti filter
// the left table by membership in the right. The left side may be
// grouped; each group is joined against the right table independently
// and the result preserves the left grouping and row order. A left
// row with several right matches appears once per match.
//
// NA is NaN in float columns and the zero value elsewhere, matching
// how missing observations are represented in the rest of this
// module's tables.
package relate

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Inner joins each group of l against r, keeping the rows where the
// lcol value in l equals the rcol value in r. The joined rows have
// all columns of l followed by the non-key columns of r.
func Inner(l table.Grouping, lcol string, r *table.Table, rcol string) (table.Grouping, error) {
	if err := check("inner", l, lcol, r, rcol, true); err != nil {
		return nil, err
	}
	var ng table.GroupingBuilder
	for _, gid := range l.Tables() {
		j := table.Join(l.Table(gid), lcol, r, rcol)
		jt := j.Table(table.RootGroupID)
		if jt != nil && lcol != rcol && columnOf(jt, rcol) {
			// Join carried the right key column along; it
			// duplicates lcol, so fold it away.
			jt = table.Remove(jt, rcol).Table(table.RootGroupID)
		}
		ng.Add(gid, jt)
	}
	return ng.Done(), nil
}

// Left joins each group of l against r, keeping every left row in
// order. Rows with no match in r get NA in the columns drawn from r.
func Left(l table.Grouping, lcol string, r *table.Table, rcol string) (table.Grouping, error) {
	if err := check("left", l, lcol, r, rcol, true); err != nil {
		return nil, err
	}
	ridx := indexKeys(r, rcol)
	var ng table.GroupingBuilder
	for _, gid := range l.Tables() {
		lt := l.Table(gid)
		keys := reflect.ValueOf(lt.MustColumn(lcol))

		// Compute the source row for every output row. A right
		// index of -1 marks a left row with no match.
		var li, ri []int
		for i := 0; i < keys.Len(); i++ {
			matches := ridx[keys.Index(i).Interface()]
			if len(matches) == 0 {
				li = append(li, i)
				ri = append(ri, -1)
				continue
			}
			for _, j := range matches {
				li = append(li, i)
				ri = append(ri, j)
			}
		}

		var b table.Builder
		for _, col := range lt.Columns() {
			b.Add(col, slice.Select(lt.Column(col), li))
		}
		for _, col := range r.Columns() {
			if col == rcol {
				continue
			}
			b.Add(col, selectOrNA(r.Column(col), ri))
		}
		ng.Add(gid, b.Done())
	}
	return ng.Done(), nil
}

// Semi returns the rows of l whose lcol value appears in r's rcol.
// The result has only l's columns; matches in r are never duplicated
// into the output, so a left row appears at most once.
func Semi(l table.Grouping, lcol string, r *table.Table, rcol string) (table.Grouping, error) {
	return member("semi", l, lcol, r, rcol, true)
}

// Anti returns the rows of l whose lcol value appears nowhere in r's
// rcol. It is the complement of Semi.
func Anti(l table.Grouping, lcol string, r *table.Table, rcol string) (table.Grouping, error) {
	return member("anti", l, lcol, r, rcol, false)
}

func member(verb string, l table.Grouping, lcol string, r *table.Table, rcol string, keep bool) (table.Grouping, error) {
	if err := check(verb, l, lcol, r, rcol, false); err != nil {
		return nil, err
	}
	ridx := indexKeys(r, rcol)
	var ng table.GroupingBuilder
	for _, gid := range l.Tables() {
		lt := l.Table(gid)
		keys := reflect.ValueOf(lt.MustColumn(lcol))
		var li []int
		for i := 0; i < keys.Len(); i++ {
			_, ok := ridx[keys.Index(i).Interface()]
			if ok == keep {
				li = append(li, i)
			}
		}
		var b table.Builder
		for _, col := range lt.Columns() {
			b.Add(col, slice.Select(lt.Column(col), li))
		}
		ng.Add(gid, b.Done())
	}
	return ng.Done(), nil
}

// check validates a join: both key columns must exist and have the
// same element type, and, when the join merges columns from both
// sides, the non-key column names must not collide.
func check(verb string, l table.Grouping, lcol string, r *table.Table, rcol string, merges bool) error {
	var lkey reflect.Type
	found := false
	for _, c := range l.Columns() {
		if c == lcol {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%s: unknown left column %q", verb, lcol)
	}
	for _, gid := range l.Tables() {
		if col := l.Table(gid).Column(lcol); col != nil {
			lkey = reflect.TypeOf(col).Elem()
			break
		}
	}

	rkeyCol := r.Column(rcol)
	if rkeyCol == nil {
		return fmt.Errorf("%s: unknown right column %q", verb, rcol)
	}
	if rkey := reflect.TypeOf(rkeyCol).Elem(); lkey != nil && lkey != rkey {
		return fmt.Errorf("%s: key columns %q and %q have different types (%s vs %s)", verb, lcol, rcol, lkey, rkey)
	}

	if !merges {
		return nil
	}
	lcols := make(map[string]bool)
	for _, c := range l.Columns() {
		lcols[c] = true
	}
	for _, c := range r.Columns() {
		if c == rcol {
			continue
		}
		if lcols[c] {
			return fmt.Errorf("%s: column %q appears in both tables", verb, c)
		}
	}
	if rcol != lcol && lcols[rcol] {
		return fmt.Errorf("%s: right key column %q collides with a left column", verb, rcol)
	}
	return nil
}

// indexKeys maps each value of t's col to the rows holding it, in row
// order.
func indexKeys(t *table.Table, col string) map[interface{}][]int {
	idx := make(map[interface{}][]int)
	rv := reflect.ValueOf(t.MustColumn(col))
	for i := 0; i < rv.Len(); i++ {
		v := rv.Index(i).Interface()
		idx[v] = append(idx[v], i)
	}
	return idx
}

// selectOrNA is slice.Select extended with -1 indexes, which select
// an NA cell instead of a source element.
func selectOrNA(col table.Slice, idxs []int) table.Slice {
	rv := reflect.ValueOf(col)
	out := reflect.MakeSlice(rv.Type(), len(idxs), len(idxs))
	kind := rv.Type().Elem().Kind()
	for k, j := range idxs {
		switch {
		case j >= 0:
			out.Index(k).Set(rv.Index(j))
		case kind == reflect.Float64 || kind == reflect.Float32:
			out.Index(k).SetFloat(math.NaN())
		}
	}
	return out.Interface()
}

func columnOf(t *table.Table, col string) bool {
	for _, c := range t.Columns() {
		if c == col {
			return true
		}
	}
	return false
}
