// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/dsbook/datalab/datasets"
	"github.com/karrick/tparse/v2"
)

// load reads and concatenates the tables named by args. Arguments
// are CSV paths, or dataset names when -catalog is set, and "-" is
// standard input.
func load(args []string) (*table.Table, error) {
	var cat *datasets.Catalog
	if *flagCatalog != "" {
		var err error
		cat, err = datasets.LoadCatalog(*flagCatalog)
		if err != nil {
			return nil, err
		}
	}

	var tabs []table.Grouping
	var first *table.Table
	for _, arg := range args {
		var t *table.Table
		var err error
		switch {
		case cat != nil:
			t, err = cat.Table(arg)
		case arg == "-":
			t, err = datasets.ReadCSV(os.Stdin)
		default:
			t, err = datasets.ReadCSVFile(arg)
		}
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = t
		} else if !reflect.DeepEqual(t.Columns(), first.Columns()) {
			return nil, fmt.Errorf("%s: columns %v do not match %v", arg, t.Columns(), first.Columns())
		}
		tabs = append(tabs, t)
	}
	if len(tabs) == 1 {
		return first, nil
	}
	return table.Concat(tabs...).Table(table.RootGroupID), nil
}

// prepare turns the raw input into the plotted table: it parses the
// date column, applies -since, adds a float64 "day" column measuring
// days since the first plotted observation, and applies -mean. It
// returns the prepared grouping and the name of the y column, which
// -mean renames.
func prepare(t *table.Table) (table.Grouping, string, error) {
	t, err := toFloat(t, *flagY)
	if err != nil {
		return nil, "", err
	}
	for _, col := range []string{*flagColor, *flagBy} {
		if col != "" && t.Column(col) == nil {
			return nil, "", fmt.Errorf("unknown column %q", col)
		}
	}
	xcol := t.Column(*flagX)
	if xcol == nil {
		return nil, "", fmt.Errorf("unknown column %q", *flagX)
	}
	if t.Column("day") != nil && *flagX != "day" {
		return nil, "", fmt.Errorf(`input already has a "day" column`)
	}

	var days []float64
	if strs, ok := xcol.([]string); ok {
		times, ok := parseTimes(strs)
		if !ok {
			return nil, "", fmt.Errorf("cannot parse column %q as dates", *flagX)
		}
		if *flagSince != "" {
			cutoff, err := sinceTime(*flagSince)
			if err != nil {
				return nil, "", err
			}
			var keep []int
			for i, tm := range times {
				if !tm.Before(cutoff) {
					keep = append(keep, i)
				}
			}
			if len(keep) == 0 {
				return nil, "", fmt.Errorf("no observations since %s", *flagSince)
			}
			t = selectRows(t, keep)
			times = slice.Select(times, keep).([]time.Time)
		}
		days = dayIndex(times)
	} else {
		if *flagSince != "" {
			return nil, "", fmt.Errorf("-since requires a date column; column %q is %T", *flagX, xcol)
		}
		if !numeric(xcol) {
			return nil, "", fmt.Errorf("column %q is not dates or numbers (%T)", *flagX, xcol)
		}
		slice.Convert(&days, xcol)
	}

	data := table.Grouping(table.NewBuilder(t).Add("day", days).Done())
	ycol := *flagY
	if *flagMean {
		groups := []string{"day"}
		for _, col := range []string{*flagColor, *flagBy} {
			if col != "" {
				groups = append(groups, col)
			}
		}
		data = ggstat.Agg(groups...)(ggstat.AggMean(ycol)).F(data)
		ycol = "mean " + ycol
	}
	return data, ycol, nil
}

// dateLayouts are tried in order; the first that parses every value
// wins.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

func parseTimes(vals []string) ([]time.Time, bool) {
layouts:
	for _, layout := range dateLayouts {
		ts := make([]time.Time, len(vals))
		for i, v := range vals {
			t, err := time.Parse(layout, strings.TrimSpace(v))
			if err != nil {
				continue layouts
			}
			ts[i] = t
		}
		return ts, true
	}
	return nil, false
}

// sinceTime resolves a duration expression like "1y6mo" to the
// moment that long before now.
func sinceTime(expr string) (time.Time, error) {
	now := time.Now()
	future, err := tparse.AddDuration(now, expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -since %q: %v", expr, err)
	}
	return now.Add(-future.Sub(now)), nil
}

// dayIndex maps times to fractional days since the earliest time.
func dayIndex(times []time.Time) []float64 {
	t0 := times[0]
	for _, t := range times {
		if t.Before(t0) {
			t0 = t
		}
	}
	days := make([]float64, len(times))
	for i, t := range times {
		days[i] = t.Sub(t0).Hours() / 24
	}
	return days
}

func selectRows(t *table.Table, idxs []int) *table.Table {
	var b table.Builder
	for _, col := range t.Columns() {
		b.Add(col, slice.Select(t.Column(col), idxs))
	}
	return b.Done()
}

func toFloat(t *table.Table, col string) (*table.Table, error) {
	c := t.Column(col)
	if c == nil {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	if _, ok := c.([]float64); ok {
		return t, nil
	}
	if !numeric(c) {
		return nil, fmt.Errorf("column %q is not numeric (%T)", col, c)
	}
	var fs []float64
	slice.Convert(&fs, c)
	return table.NewBuilder(t).Add(col, fs).Done(), nil
}

func numeric(col table.Slice) bool {
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
