// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader("site,day,ozone\nalpha,1,41.5\nbeta,2,36\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"site", "day", "ozone"}; !reflect.DeepEqual(tab.Columns(), want) {
		t.Errorf("columns = %v; want %v", tab.Columns(), want)
	}
	// Columns are coerced to the narrowest type that fits every cell.
	if got, want := tab.MustColumn("site"), []string{"alpha", "beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("site = %v; want %v", got, want)
	}
	if got, want := tab.MustColumn("day"), []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("day = %v; want %v", got, want)
	}
	if got, want := tab.MustColumn("ozone"), []float64{41.5, 36}; !reflect.DeepEqual(got, want) {
		t.Errorf("ozone = %v; want %v", got, want)
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader("site,day\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab.Len() != 0 {
		t.Errorf("table has %d rows; want 0", tab.Len())
	}
}

func TestReadCSVBadInput(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("empty input: want error; got none")
	}
	if _, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n")); err == nil {
		t.Error("ragged row: want error; got none")
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := ioutil.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
}

func tempCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "airquality.csv"), "day,ozone\n1,41\n2,36\n")
	writeFile(t, filepath.Join(dir, "datasets.yaml"), `
datasets:
  airquality:
    path: airquality.csv
    description: Daily New York air quality readings, summer 1973.
  mtcars:
    path: mtcars.csv
`)
	c, err := LoadCatalog(filepath.Join(dir, "datasets.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCatalog(t *testing.T) {
	c := tempCatalog(t)

	if want := []string{"airquality", "mtcars"}; !reflect.DeepEqual(c.Names(), want) {
		t.Errorf("Names = %v; want %v", c.Names(), want)
	}
	if d := c.Description("airquality"); !strings.Contains(d, "air quality") {
		t.Errorf("Description = %q", d)
	}

	tab, err := c.Table("airquality")
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tab.Len() != 2 {
		t.Errorf("table has %d rows; want 2", tab.Len())
	}
}

func TestCatalogUnknown(t *testing.T) {
	c := tempCatalog(t)

	// A near miss names the closest dataset.
	_, err := c.Table("airqality")
	uerr, ok := err.(*UnknownDatasetError)
	if !ok {
		t.Fatalf("error %T is not *UnknownDatasetError", err)
	}
	if uerr.Suggestion != "airquality" {
		t.Errorf("suggestion = %q; want %q", uerr.Suggestion, "airquality")
	}

	// Nothing close: no suggestion.
	_, err = c.Table("zzz")
	uerr, ok = err.(*UnknownDatasetError)
	if !ok {
		t.Fatalf("error %T is not *UnknownDatasetError", err)
	}
	if uerr.Suggestion != "" {
		t.Errorf("suggestion = %q; want none", uerr.Suggestion)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadCatalog(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing manifest: want error; got none")
	}

	writeFile(t, filepath.Join(dir, "empty.yaml"), "datasets: {}\n")
	if _, err := LoadCatalog(filepath.Join(dir, "empty.yaml")); err == nil {
		t.Error("empty manifest: want error; got none")
	}

	writeFile(t, filepath.Join(dir, "nopath.yaml"), "datasets:\n  x:\n    description: no path\n")
	if _, err := LoadCatalog(filepath.Join(dir, "nopath.yaml")); err == nil {
		t.Error("entry without path: want error; got none")
	}
}
