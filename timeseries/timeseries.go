// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timeseries manipulates ordered observations with gaps.
//
// A Series pairs observation times with float64 values, where NaN
// marks a missing observation. Operations return new Series and never
// modify the receiver, so intermediate results can be kept cheaply:
//
//	monthly, err := s.FillLinear().Aggregate(timeseries.Month, stats.Mean)
package timeseries

import (
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/dsbook/datalab/describe"
)

// A Series is a sequence of observations at strictly increasing
// times. NaN values are missing observations. The fields must not be
// modified while the Series is in use.
type Series struct {
	Times  []time.Time
	Values []float64
}

// New returns a Series over the given observations. times must be
// strictly increasing and as long as values. New takes ownership of
// both slices.
func New(times []time.Time, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("timeseries: mismatched lengths (%d times, %d values)", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("timeseries: times not strictly increasing at index %d", i)
		}
	}
	return &Series{times, values}, nil
}

// Len returns the number of observations, including missing ones.
func (s *Series) Len() int {
	return len(s.Times)
}

// Copy returns a Series that shares no storage with s.
func (s *Series) Copy() *Series {
	ns := &Series{
		Times:  make([]time.Time, len(s.Times)),
		Values: make([]float64, len(s.Values)),
	}
	copy(ns.Times, s.Times)
	copy(ns.Values, s.Values)
	return ns
}

// FillLinear returns s with each interior run of missing values
// replaced by linear interpolation between the surrounding
// observations, weighted by time. Missing values before the first or
// after the last observation are left missing.
func (s *Series) FillLinear() *Series {
	ns := s.Copy()
	last := -1
	for i := 0; i < ns.Len(); i++ {
		if !isNA(ns.Values[i]) {
			last = i
			continue
		}
		j := i + 1
		for j < ns.Len() && isNA(ns.Values[j]) {
			j++
		}
		if last >= 0 && j < ns.Len() {
			t0, t1 := ns.Times[last], ns.Times[j]
			v0, v1 := ns.Values[last], ns.Values[j]
			span := t1.Sub(t0).Seconds()
			for k := i; k < j; k++ {
				w := ns.Times[k].Sub(t0).Seconds() / span
				ns.Values[k] = v0 + w*(v1-v0)
			}
		}
		i = j - 1
	}
	return ns
}

// RollingMean returns the k-observation centered moving average of s.
// Observations without a full window, including any window containing
// a missing value, come out missing. For even k the window extends
// one observation further forward than back.
func (s *Series) RollingMean(k int) (*Series, error) {
	if k < 1 {
		return nil, fmt.Errorf("timeseries: window must be positive; got %d", k)
	}
	if k > s.Len() {
		return nil, fmt.Errorf("timeseries: window %d exceeds series length %d", k, s.Len())
	}
	ns := s.Copy()
	lead := (k - 1) / 2
	for i := range ns.Values {
		lo := i - lead
		if lo < 0 || lo+k > s.Len() {
			ns.Values[i] = math.NaN()
			continue
		}
		ns.Values[i] = stats.Mean(s.Values[lo : lo+k])
	}
	return ns, nil
}

// Aggregate buckets observations by bucket, which must map each time
// to a bucket start time monotonically, and reduces each bucket's
// values with f. The result has one observation per non-empty bucket,
// at the bucket start. Missing values are passed to f, so a reduction
// like stats.Mean yields a missing result for any bucket with a
// missing observation; FillLinear first to avoid that.
func (s *Series) Aggregate(bucket func(time.Time) time.Time, f func([]float64) float64) (*Series, error) {
	var (
		times  []time.Time
		values []float64
		cur    time.Time
		window []float64
	)
	flush := func() {
		if len(window) > 0 {
			times = append(times, cur)
			values = append(values, f(window))
			window = nil
		}
	}
	for i, t := range s.Times {
		b := bucket(t)
		if len(window) == 0 {
			cur = b
		} else if !b.Equal(cur) {
			if !b.After(cur) {
				return nil, fmt.Errorf("timeseries: bucket function is not monotonic at index %d", i)
			}
			flush()
			cur = b
		}
		window = append(window, s.Values[i])
	}
	flush()
	return &Series{times, values}, nil
}

// Summary summarizes the values of s.
func (s *Series) Summary() describe.Summary {
	return describe.Values(s.Values)
}

// Table returns s as a table with "time" and "value" columns, one row
// per observation in time order.
func (s *Series) Table() *table.Table {
	return new(table.Builder).
		Add("time", s.Times).
		Add("value", s.Values).
		Done()
}

// Day truncates t to the start of its day. It is a bucket function
// for Aggregate.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Month truncates t to the start of its month.
func Month(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Year truncates t to the start of its year.
func Year(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func isNA(v float64) bool {
	return math.IsNaN(v)
}
