// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ascNoData is the nodata marker written by WriteASC. ReadASC honors
// the file's own NODATA_value and defaults to this.
const ascNoData = -9999

var ascHeaderKeys = map[string]bool{
	"ncols": true, "nrows": true,
	"xllcorner": true, "yllcorner": true,
	"xllcenter": true, "yllcenter": true,
	"cellsize": true, "nodata_value": true,
}

// ReadASC reads a grid in ESRI ASCII grid format: a header of
// keyword/value lines followed by the cell values from northwest to
// southeast. Cells equal to the header's NODATA_value become nodata.
func ReadASC(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)

	hdr := make(map[string]float64)
	var (
		g      *Grid
		nodata float64
		n      int
	)
	for scanner.Scan() {
		fs := strings.Fields(scanner.Text())
		if len(fs) == 0 {
			continue
		}
		if g == nil && len(fs) == 2 && ascHeaderKeys[strings.ToLower(fs[0])] {
			key := strings.ToLower(fs[0])
			v, err := strconv.ParseFloat(fs[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid header %s %q", key, fs[1])
			}
			hdr[key] = v
			continue
		}
		if g == nil {
			var err error
			g, nodata, err = headerGrid(hdr)
			if err != nil {
				return nil, err
			}
		}
		for _, f := range fs {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid cell value %q", f)
			}
			if n == len(g.Data) {
				return nil, fmt.Errorf("too many cell values; want %d (%dx%d)", len(g.Data), g.W, g.H)
			}
			if v == nodata {
				v = math.NaN()
			}
			g.Data[n] = v
			n++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading grid")
	}
	if g == nil {
		var err error
		if g, _, err = headerGrid(hdr); err != nil {
			return nil, err
		}
	}
	if n != len(g.Data) {
		return nil, fmt.Errorf("got %d cell values; want %d (%dx%d)", n, len(g.Data), g.W, g.H)
	}
	return g, nil
}

// ReadASCFile reads the ESRI ASCII grid file at path.
func ReadASCFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadASC(f)
	return g, errors.Wrap(err, path)
}

// headerGrid builds an empty grid from a parsed ASC header.
func headerGrid(hdr map[string]float64) (*Grid, float64, error) {
	dim := func(key string) (int, error) {
		v, ok := hdr[key]
		if !ok {
			return 0, fmt.Errorf("grid header is missing %s", key)
		}
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("grid header %s %g is not an integer", key, v)
		}
		return int(v), nil
	}
	w, err := dim("ncols")
	if err != nil {
		return nil, 0, err
	}
	h, err := dim("nrows")
	if err != nil {
		return nil, 0, err
	}
	cell, ok := hdr["cellsize"]
	if !ok {
		return nil, 0, fmt.Errorf("grid header is missing cellsize")
	}

	// The origin may be given as the corner or the center of the
	// southwest cell.
	corner := func(axis string) (float64, error) {
		if v, ok := hdr[axis+"llcorner"]; ok {
			return v, nil
		}
		if v, ok := hdr[axis+"llcenter"]; ok {
			return v - cell/2, nil
		}
		return 0, fmt.Errorf("grid header is missing %sllcorner", axis)
	}
	x0, err := corner("x")
	if err != nil {
		return nil, 0, err
	}
	y0, err := corner("y")
	if err != nil {
		return nil, 0, err
	}

	nodata := float64(ascNoData)
	if v, ok := hdr["nodata_value"]; ok {
		nodata = v
	}
	g, err := New(w, h, x0, y0, cell)
	return g, nodata, err
}

// WriteASC writes g in ESRI ASCII grid format. Nodata cells are
// written as -9999, so a real value of -9999 will read back as
// nodata.
func (g *Grid) WriteASC(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", g.W)
	fmt.Fprintf(bw, "nrows %d\n", g.H)
	fmt.Fprintf(bw, "xllcorner %g\n", g.X0)
	fmt.Fprintf(bw, "yllcorner %g\n", g.Y0)
	fmt.Fprintf(bw, "cellsize %g\n", g.Cell)
	fmt.Fprintf(bw, "NODATA_value %d\n", ascNoData)
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if c > 0 {
				bw.WriteByte(' ')
			}
			v := g.Data[r*g.W+c]
			if math.IsNaN(v) {
				fmt.Fprintf(bw, "%d", ascNoData)
			} else {
				fmt.Fprintf(bw, "%g", v)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
