// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/go-gg/palette"
	"golang.org/x/image/draw"
)

// Palettes for rendering grids.
var (
	// Terrain sweeps from green through yellow to near-white, in
	// the manner of R's terrain.colors.
	Terrain palette.Continuous = palette.RGBGradient{Colors: []color.RGBA{
		{0x00, 0xa6, 0x00, 0xff},
		{0x63, 0xc6, 0x00, 0xff},
		{0xe6, 0xe6, 0x00, 0xff},
		{0xec, 0xb1, 0x76, 0xff},
		{0xf2, 0xf2, 0xf2, 0xff},
	}}

	// Gray sweeps from black to white.
	Gray palette.Continuous = palette.RGBGradient{Colors: []color.RGBA{
		{0x00, 0x00, 0x00, 0xff},
		{0xff, 0xff, 0xff, 0xff},
	}}
)

// WritePNG renders g to w as a PNG, mapping cell values linearly onto
// pal from the minimum to the maximum value. Nodata cells are
// transparent. Each cell becomes a scale by scale block of pixels.
func (g *Grid) WritePNG(w io.Writer, pal palette.Continuous, scale int) error {
	if scale < 1 {
		return fmt.Errorf("raster: scale must be at least 1; got %d", scale)
	}
	s := g.Summary()
	span := s.Max - s.Min

	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			v := g.Data[row*g.W+col]
			if math.IsNaN(v) {
				continue
			}
			frac := 0.5
			if span > 0 {
				frac = (v - s.Min) / span
			}
			img.Set(col, row, pal.Map(frac))
		}
	}

	out := img
	if scale > 1 {
		out = image.NewRGBA(image.Rect(0, 0, g.W*scale, g.H*scale))
		draw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	}
	return png.Encode(w, out)
}
