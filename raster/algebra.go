// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"math"

	"github.com/gonum/floats"
)

// Map algebra. Binary operations require aligned grids and return a
// new grid; nodata cells propagate, so any cell that is nodata in
// either operand is nodata in the result.

// Add returns g + o cell by cell.
func (g *Grid) Add(o *Grid) (*Grid, error) {
	if !g.aligns(o) {
		return nil, g.alignError(o)
	}
	ng := g.Copy()
	floats.Add(ng.Data, o.Data)
	return ng, nil
}

// Sub returns g - o cell by cell.
func (g *Grid) Sub(o *Grid) (*Grid, error) {
	if !g.aligns(o) {
		return nil, g.alignError(o)
	}
	ng := g.Copy()
	floats.Sub(ng.Data, o.Data)
	return ng, nil
}

// Mul returns g * o cell by cell.
func (g *Grid) Mul(o *Grid) (*Grid, error) {
	if !g.aligns(o) {
		return nil, g.alignError(o)
	}
	ng := g.Copy()
	floats.Mul(ng.Data, o.Data)
	return ng, nil
}

// Div returns g / o cell by cell. Division by zero follows float64
// semantics, so a nonzero cell over zero is infinite.
func (g *Grid) Div(o *Grid) (*Grid, error) {
	if !g.aligns(o) {
		return nil, g.alignError(o)
	}
	ng := g.Copy()
	floats.Div(ng.Data, o.Data)
	return ng, nil
}

// Scale returns g with every cell multiplied by k.
func (g *Grid) Scale(k float64) *Grid {
	ng := g.Copy()
	floats.Scale(k, ng.Data)
	return ng
}

// AddConst returns g with k added to every cell.
func (g *Grid) AddConst(k float64) *Grid {
	ng := g.Copy()
	floats.AddConst(k, ng.Data)
	return ng
}

// NDVI returns the normalized difference vegetation index
// (nir-red)/(nir+red) of two aligned reflectance bands. Cells where
// the ratio is not finite, such as where both bands are zero, are
// nodata.
func NDVI(nir, red *Grid) (*Grid, error) {
	num, err := nir.Sub(red)
	if err != nil {
		return nil, err
	}
	den, err := nir.Add(red)
	if err != nil {
		return nil, err
	}
	floats.Div(num.Data, den.Data)
	for i, v := range num.Data {
		if math.IsInf(v, 0) {
			num.Data[i] = math.NaN()
		}
	}
	return num, nil
}
