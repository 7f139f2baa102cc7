// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// plot renders the prepared table to w as SVG.
func plot(w io.Writer, data table.Grouping, ycol string) error {
	plt := gg.NewPlot(data)
	plt.SortBy("day")
	plt.SetScale("y", gg.NewLinearScaler().Include(0))

	nrows := 1
	if *flagBy != "" {
		plt.Add(gg.FacetY{Col: *flagBy})
		nrows = len(table.GroupBy(data, *flagBy).Tables())
	}

	points := gg.LayerPoints{X: "day", Y: ycol}
	lines := gg.LayerLines{X: "day", Y: ycol}
	if *flagColor != "" {
		points.Color = *flagColor
		lines.Color = *flagColor
	}
	plt.Add(points, lines)
	if !*flagMean {
		// The raw date strings survive only when they aren't
		// aggregated away.
		plt.Add(gg.LayerTooltips{X: "day", Y: ycol, Label: *flagX})
	}

	switch *flagSmooth {
	case "loess":
		plt.Save()
		plt.Stat(ggstat.LOESS{X: "day", Y: ycol, Span: *flagSpan})
		plt.Add(gg.LayerPaths{X: "day", Y: ycol})
		plt.Restore()
	case "linear":
		plt.Save()
		plt.Stat(ggstat.LeastSquares{X: "day", Y: ycol})
		plt.Add(gg.LayerPaths{X: "day", Y: ycol})
		plt.Restore()
	}

	return plt.WriteSVG(w, 800, 100+300*nrows)
}
