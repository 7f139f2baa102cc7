// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package describe computes summary statistics of table columns.
//
// Statistics are computed over the non-NA observations of a column,
// where NA is NaN, and the NA count is reported alongside. Integer
// and float columns are both accepted; anything else is an error
// rather than a panic, since the column name is often user input.
package describe

import (
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// Summary summarizes the distribution of a set of observations.
type Summary struct {
	N   int // observations, excluding NAs
	NAs int // NA observations

	Mean   float64
	StdDev float64

	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Values summarizes xs. NaNs are counted and excluded from the
// statistics. If xs has no non-NaN values, the statistics are all
// NaN.
func Values(xs []float64) Summary {
	var s Summary
	clean := make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) {
			s.NAs++
		} else {
			clean = append(clean, x)
		}
	}
	s.N = len(clean)

	samp := stats.Sample{Xs: clean}
	samp.Sort()
	s.Mean = samp.Mean()
	s.StdDev = samp.StdDev()
	s.Min, s.Max = samp.Bounds()
	s.Q1 = samp.Quantile(0.25)
	s.Median = samp.Quantile(0.5)
	s.Q3 = samp.Quantile(0.75)
	return s
}

// Column summarizes column col of g, pooling all groups.
func Column(g table.Grouping, col string) (Summary, error) {
	xs, err := columnFloats(g, col)
	if err != nil {
		return Summary{}, err
	}
	return Values(xs), nil
}

// By summarizes column col within each distinct combination of the by
// columns and returns one row per combination. The by columns come
// first, followed by the observation counts and the statistics, which
// are named "mean <col>" and so on. If g is already grouped, each
// group is subdivided.
func By(g table.Grouping, col string, by ...string) (*table.Table, error) {
	if len(by) == 0 {
		return nil, fmt.Errorf("describe: no grouping columns")
	}
	have := make(map[string]bool)
	for _, c := range g.Columns() {
		have[c] = true
	}
	for _, c := range by {
		if !have[c] {
			return nil, fmt.Errorf("describe: unknown column %q", c)
		}
	}
	if _, err := columnFloats(g, col); err != nil {
		return nil, err
	}

	sub := table.GroupBy(g, by...)
	gids := sub.Tables()
	if len(gids) == 0 {
		return nil, fmt.Errorf("describe: no rows")
	}

	byVals := make([]reflect.Value, len(by))
	for i, c := range by {
		ct := reflect.TypeOf(sub.Table(gids[0]).Column(c))
		byVals[i] = reflect.MakeSlice(ct, 0, len(gids))
	}
	var (
		ns, nas                              []int
		means, stddevs, mins, medians, maxes []float64
	)
	for _, gid := range gids {
		t := sub.Table(gid)
		for i, c := range by {
			byVals[i] = reflect.Append(byVals[i], reflect.ValueOf(t.Column(c)).Index(0))
		}
		s, err := Column(t, col)
		if err != nil {
			return nil, err
		}
		ns = append(ns, s.N)
		nas = append(nas, s.NAs)
		means = append(means, s.Mean)
		stddevs = append(stddevs, s.StdDev)
		mins = append(mins, s.Min)
		medians = append(medians, s.Median)
		maxes = append(maxes, s.Max)
	}

	var b table.Builder
	for i, c := range by {
		b.Add(c, byVals[i].Interface())
	}
	b.Add("n", ns).Add("nas", nas)
	b.Add("mean "+col, means)
	b.Add("stddev "+col, stddevs)
	b.Add("min "+col, mins)
	b.Add("median "+col, medians)
	b.Add("max "+col, maxes)
	return b.Done(), nil
}

// Fprint writes the summary of column col to w as an aligned text
// block in the manner of R's summary().
func Fprint(w io.Writer, g table.Grouping, col string) error {
	s, err := Column(g, col)
	if err != nil {
		return err
	}
	t := new(table.Builder).
		Add("n", []int{s.N}).
		Add("nas", []int{s.NAs}).
		Add("min", []float64{s.Min}).
		Add("q1", []float64{s.Q1}).
		Add("median", []float64{s.Median}).
		Add("mean", []float64{s.Mean}).
		Add("q3", []float64{s.Q3}).
		Add("max", []float64{s.Max}).
		Done()
	return table.Fprint(w, t, "%d", "%d", "%.4g", "%.4g", "%.4g", "%.4g", "%.4g", "%.4g")
}

// columnFloats pools column col across all groups of g as float64s.
func columnFloats(g table.Grouping, col string) ([]float64, error) {
	found := false
	for _, c := range g.Columns() {
		if c == col {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("describe: unknown column %q", col)
	}
	xs := []float64{}
	for _, gid := range g.Tables() {
		cv := g.Table(gid).Column(col)
		if !numeric(cv) {
			return nil, fmt.Errorf("describe: column %q is not numeric (%T)", col, cv)
		}
		var fs []float64
		slice.Convert(&fs, cv)
		xs = append(xs, fs...)
	}
	return xs, nil
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
