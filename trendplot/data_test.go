// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aclements/go-gg/table"
)

// set sets a command line flag for the duration of the test.
func set(t *testing.T, name, value string) {
	t.Helper()
	old := flag.Lookup(name).Value.String()
	if err := flag.Set(name, value); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { flag.Set(name, old) })
}

func root(g table.Grouping) *table.Table {
	return g.Table(table.RootGroupID)
}

func TestParseTimes(t *testing.T) {
	ts, ok := parseTimes([]string{"2021-06-01", "2021-06-03"})
	if !ok {
		t.Fatal("ISO dates did not parse")
	}
	if want := time.Date(2021, 6, 3, 0, 0, 0, 0, time.UTC); !ts[1].Equal(want) {
		t.Errorf("parsed %v; want %v", ts[1], want)
	}

	if _, ok := parseTimes([]string{"2021/06/01", "2021/06/03"}); !ok {
		t.Error("slash dates did not parse")
	}
	if _, ok := parseTimes([]string{"2021-06-01", "2021/06/03"}); ok {
		t.Error("mixed layouts parsed")
	}
	if _, ok := parseTimes([]string{"yesterday"}); ok {
		t.Error("non-date parsed")
	}
}

func TestDayIndex(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2021, 6, day, 0, 0, 0, 0, time.UTC)
	}
	got := dayIndex([]time.Time{d(3), d(1), d(2)})
	if want := []float64{2, 0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("dayIndex = %v; want %v", got, want)
	}
}

func obsTable() *table.Table {
	return new(table.Builder).
		Add("date", []string{"2021-06-01", "2021-06-02", "2021-06-04"}).
		Add("value", []int{1, 2, 4}).
		Done()
}

func TestPrepare(t *testing.T) {
	data, ycol, err := prepare(obsTable())
	if err != nil {
		t.Fatal(err)
	}
	if ycol != "value" {
		t.Errorf("ycol = %q; want value", ycol)
	}
	tab := root(data)
	if want := []float64{0, 1, 3}; !reflect.DeepEqual(tab.MustColumn("day"), want) {
		t.Errorf("day = %v; want %v", tab.MustColumn("day"), want)
	}
	if want := []float64{1, 2, 4}; !reflect.DeepEqual(tab.MustColumn("value"), want) {
		t.Errorf("value = %v; want %v", tab.MustColumn("value"), want)
	}
}

func TestPrepareNumericX(t *testing.T) {
	set(t, "x", "week")
	tab := new(table.Builder).
		Add("week", []int{3, 1, 2}).
		Add("value", []float64{30, 10, 20}).
		Done()
	data, _, err := prepare(tab)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{3, 1, 2}; !reflect.DeepEqual(root(data).MustColumn("day"), want) {
		t.Errorf("day = %v; want %v", root(data).MustColumn("day"), want)
	}
}

func TestPrepareMean(t *testing.T) {
	set(t, "mean", "true")
	tab := new(table.Builder).
		Add("date", []string{"2021-06-01", "2021-06-01", "2021-06-02"}).
		Add("value", []int{1, 3, 5}).
		Done()
	data, ycol, err := prepare(tab)
	if err != nil {
		t.Fatal(err)
	}
	if ycol != "mean value" {
		t.Errorf("ycol = %q; want mean value", ycol)
	}
	rt := root(data)
	if want := []float64{0, 1}; !reflect.DeepEqual(rt.MustColumn("day"), want) {
		t.Errorf("day = %v; want %v", rt.MustColumn("day"), want)
	}
	if want := []float64{2, 5}; !reflect.DeepEqual(rt.MustColumn("mean value"), want) {
		t.Errorf("mean value = %v; want %v", rt.MustColumn("mean value"), want)
	}
}

func TestPrepareSince(t *testing.T) {
	set(t, "since", "3d")
	day := func(ago int) string {
		return time.Now().AddDate(0, 0, -ago).Format("2006-01-02")
	}
	tab := new(table.Builder).
		Add("date", []string{day(5), day(1)}).
		Add("value", []int{1, 2}).
		Done()
	data, _, err := prepare(tab)
	if err != nil {
		t.Fatal(err)
	}
	rt := root(data)
	if rt.Len() != 1 {
		t.Fatalf("kept %d rows; want 1", rt.Len())
	}
	if want := []float64{2}; !reflect.DeepEqual(rt.MustColumn("value"), want) {
		t.Errorf("value = %v; want %v", rt.MustColumn("value"), want)
	}
}

func TestPrepareErrors(t *testing.T) {
	tests := []struct {
		name string
		tab  *table.Table
		x, y string
		err  string
	}{
		{"unknown y", obsTable(), "date", "ozone", `unknown column "ozone"`},
		{"non-numeric y", obsTable(), "date", "date", "not numeric"},
		{"unknown x", obsTable(), "when", "value", `unknown column "when"`},
		{
			"unparseable dates",
			new(table.Builder).Add("date", []string{"a", "b"}).Add("value", []int{1, 2}).Done(),
			"date", "value", "cannot parse",
		},
		{
			"day collision",
			new(table.Builder).Add("date", []string{"2021-06-01"}).Add("day", []int{9}).Add("value", []int{1}).Done(),
			"date", "value", `already has a "day" column`,
		},
	}
	for _, test := range tests {
		set(t, "x", test.x)
		set(t, "y", test.y)
		_, _, err := prepare(test.tab)
		if err == nil {
			t.Errorf("%s: got nil error", test.name)
		} else if !strings.Contains(err.Error(), test.err) {
			t.Errorf("%s: got error %q; want substring %q", test.name, err, test.err)
		}
	}
}

func TestPrepareSinceNumericX(t *testing.T) {
	set(t, "x", "week")
	set(t, "since", "1y")
	tab := new(table.Builder).
		Add("week", []int{1}).
		Add("value", []int{1}).
		Done()
	if _, _, err := prepare(tab); err == nil || !strings.Contains(err.Error(), "-since requires a date column") {
		t.Errorf("got error %v; want -since requires a date column", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		if err := ioutil.WriteFile(path, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
		return path
	}
	a := write("a.csv", "date,value\n2021-06-01,1\n")
	b := write("b.csv", "date,value\n2021-06-02,2\n")
	c := write("c.csv", "when,value\n2021-06-03,3\n")

	tab, err := load([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 2 {
		t.Errorf("Len = %d; want 2", tab.Len())
	}
	if want := []string{"2021-06-01", "2021-06-02"}; !reflect.DeepEqual(tab.MustColumn("date"), want) {
		t.Errorf("date = %v; want %v", tab.MustColumn("date"), want)
	}

	if _, err := load([]string{a, c}); err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Errorf("got error %v; want do not match", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, "air.csv"), []byte("date,value\n2021-06-01,1\n"), 0666); err != nil {
		t.Fatal(err)
	}
	manifest := "datasets:\n  air:\n    path: air.csv\n    description: test data\n"
	cat := filepath.Join(dir, "catalog.yaml")
	if err := ioutil.WriteFile(cat, []byte(manifest), 0666); err != nil {
		t.Fatal(err)
	}

	set(t, "catalog", cat)
	tab, err := load([]string{"air"})
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 1 {
		t.Errorf("Len = %d; want 1", tab.Len())
	}
	if _, err := load([]string{"ari"}); err == nil {
		t.Error("unknown dataset name succeeded")
	}
}
