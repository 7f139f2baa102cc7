// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster manipulates regular grids of georeferenced values.
//
// A Grid is a rectangular array of float64 cells with square cells
// and a known origin, the layout used by digital elevation models and
// satellite band rasters. NaN cells are nodata. Grids can be read
// from and written to ESRI ASCII grid files, combined with map
// algebra, cropped, masked, sampled at coordinates, and rendered to
// PNG.
package raster

import (
	"fmt"
	"math"

	"github.com/dsbook/datalab/describe"
)

// A Grid is a W by H grid of cells. Data is in row-major order with
// row 0 the northernmost, so Data[row*W+col] is the cell in column
// col of row row. (X0, Y0) is the outer corner of the southwest cell
// and Cell is the edge length of each square cell, both in map units.
// NaN cells are nodata.
type Grid struct {
	W, H   int
	X0, Y0 float64
	Cell   float64
	Data   []float64
}

// An Extent is an axis-aligned bounding box in map units.
type Extent struct {
	XMin, YMin, XMax, YMax float64
}

// New returns a w by h grid with every cell nodata.
func New(w, h int, x0, y0, cell float64) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("raster: grid must have positive dimensions; got %dx%d", w, h)
	}
	if cell <= 0 {
		return nil, fmt.Errorf("raster: cell size must be positive; got %g", cell)
	}
	data := make([]float64, w*h)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Grid{W: w, H: h, X0: x0, Y0: y0, Cell: cell, Data: data}, nil
}

// At returns the value of the cell in column col of row row. It
// panics if the cell is out of bounds.
func (g *Grid) At(col, row int) float64 {
	return g.Data[g.index(col, row)]
}

// Set sets the value of the cell in column col of row row. It panics
// if the cell is out of bounds.
func (g *Grid) Set(col, row int, v float64) {
	g.Data[g.index(col, row)] = v
}

func (g *Grid) index(col, row int) int {
	if col < 0 || col >= g.W || row < 0 || row >= g.H {
		panic(fmt.Sprintf("raster: cell (%d, %d) out of bounds of %dx%d grid", col, row, g.W, g.H))
	}
	return row*g.W + col
}

// XY returns the map coordinates of the center of cell (col, row).
func (g *Grid) XY(col, row int) (x, y float64) {
	x = g.X0 + (float64(col)+0.5)*g.Cell
	y = g.Y0 + (float64(g.H-1-row)+0.5)*g.Cell
	return
}

// CellAt returns the cell covering map coordinates (x, y). Cells are
// half-open, so a point on the east or north edge of the grid is
// outside it. ok reports whether the point is inside the grid.
func (g *Grid) CellAt(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor((x - g.X0) / g.Cell))
	fromSouth := int(math.Floor((y - g.Y0) / g.Cell))
	row = g.H - 1 - fromSouth
	ok = col >= 0 && col < g.W && row >= 0 && row < g.H
	return
}

// Extent returns the bounding box of g.
func (g *Grid) Extent() Extent {
	return Extent{
		XMin: g.X0,
		YMin: g.Y0,
		XMax: g.X0 + float64(g.W)*g.Cell,
		YMax: g.Y0 + float64(g.H)*g.Cell,
	}
}

// Copy returns a grid that shares no storage with g.
func (g *Grid) Copy() *Grid {
	ng := *g
	ng.Data = make([]float64, len(g.Data))
	copy(ng.Data, g.Data)
	return &ng
}

// Sample returns the value at map coordinates (x, y). ok is false if
// the point is outside the grid or falls on a nodata cell.
func (g *Grid) Sample(x, y float64) (v float64, ok bool) {
	col, row, ok := g.CellAt(x, y)
	if !ok {
		return math.NaN(), false
	}
	v = g.At(col, row)
	return v, !math.IsNaN(v)
}

// Summary summarizes the non-nodata cells of g.
func (g *Grid) Summary() describe.Summary {
	return describe.Values(g.Data)
}

// Crop returns the part of g covered by e, snapped outward to cell
// boundaries and clipped to g. It fails if e does not intersect g.
func (g *Grid) Crop(e Extent) (*Grid, error) {
	c0 := int(math.Floor((e.XMin - g.X0) / g.Cell))
	c1 := int(math.Ceil((e.XMax - g.X0) / g.Cell))
	r0 := int(math.Floor((e.YMin - g.Y0) / g.Cell))
	r1 := int(math.Ceil((e.YMax - g.Y0) / g.Cell))
	c0, c1 = clamp(c0, g.W), clamp(c1, g.W)
	r0, r1 = clamp(r0, g.H), clamp(r1, g.H)
	if c0 >= c1 || r0 >= r1 {
		return nil, fmt.Errorf("raster: crop extent does not intersect grid %s", g.geom())
	}

	ng, err := New(c1-c0, r1-r0, g.X0+float64(c0)*g.Cell, g.Y0+float64(r0)*g.Cell, g.Cell)
	if err != nil {
		return nil, err
	}
	top := g.H - r1
	for r := 0; r < ng.H; r++ {
		src := g.Data[(top+r)*g.W+c0 : (top+r)*g.W+c1]
		copy(ng.Data[r*ng.W:(r+1)*ng.W], src)
	}
	return ng, nil
}

// Mask returns g with every cell that is nodata in m set to nodata.
// m must have the same geometry as g.
func (g *Grid) Mask(m *Grid) (*Grid, error) {
	if !g.aligns(m) {
		return nil, g.alignError(m)
	}
	ng := g.Copy()
	for i, v := range m.Data {
		if math.IsNaN(v) {
			ng.Data[i] = math.NaN()
		}
	}
	return ng, nil
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func (g *Grid) aligns(o *Grid) bool {
	return g.W == o.W && g.H == o.H && g.X0 == o.X0 && g.Y0 == o.Y0 && g.Cell == o.Cell
}

func (g *Grid) alignError(o *Grid) error {
	return fmt.Errorf("raster: grids do not align (%s vs %s)", g.geom(), o.geom())
}

// geom describes the grid geometry for error messages.
func (g *Grid) geom() string {
	return fmt.Sprintf("%dx%d, cell %g, origin (%g, %g)", g.W, g.H, g.Cell, g.X0, g.Y0)
}
