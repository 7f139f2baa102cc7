// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datasets loads course data files into tables.
//
// Data ships as CSV files, one observation per row with a header row
// naming the columns. ReadCSV turns one file into a table, coercing
// columns to int or float64 where every cell parses. A Catalog maps
// short dataset names to files through a YAML manifest, so lessons
// can say Table("airquality") instead of hard-coding paths.
package datasets

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"
)

// ReadCSV reads CSV data with a header row into a table. Columns
// where every cell parses as an integer become []int columns, then
// likewise for float64; everything else stays []string. Ragged rows
// and inputs without a header row are errors.
func ReadCSV(r io.Reader) (*table.Table, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV")
	}
	if len(rows) == 0 {
		return nil, errors.New("CSV input is empty")
	}
	return table.TableFromStrings(rows[0], rows[1:], true), nil
}

// ReadCSVFile reads the CSV file at path into a table.
func ReadCSVFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return t, nil
}
