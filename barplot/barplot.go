// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package barplot renders bar charts of labeled values as SVG.
//
// This is deliberately narrower than a grammar-of-graphics pipeline:
// one categorical axis, one numeric axis, one layer. In exchange the
// input is validated up front, so a misspelled column or a NaN count
// is an error instead of an empty plot.
package barplot

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/scale"
	"github.com/ajstarks/svgo"
)

// A Plot is a bar chart under construction.
type Plot struct {
	labels []string
	values []float64

	title  string
	ylabel string
	color  string
}

// New returns a bar chart of values, one bar per label. Every value
// must be finite.
func New(labels []string, values []float64) (*Plot, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("barplot: no bars")
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("barplot: %d labels for %d values", len(labels), len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("barplot: value for %q is %v", labels[i], v)
		}
	}
	p := &Plot{
		labels: append([]string(nil), labels...),
		values: append([]float64(nil), values...),
		color:  "#4682b4",
	}
	return p, nil
}

// Title sets the plot title and returns p.
func (p *Plot) Title(s string) *Plot {
	p.title = s
	return p
}

// YLabel sets the value axis label and returns p.
func (p *Plot) YLabel(s string) *Plot {
	p.ylabel = s
	return p
}

// Color sets the bar fill to a CSS color and returns p.
func (p *Plot) Color(c string) *Plot {
	p.color = c
	return p
}

// Sort reorders the bars in descending value order and returns p.
// Ties keep their current order.
func (p *Plot) Sort() *Plot {
	idx := make([]int, len(p.values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return p.values[idx[i]] > p.values[idx[j]]
	})
	p.labels = slice.Select(p.labels, idx).([]string)
	p.values = slice.Select(p.values, idx).([]float64)
	return p
}

// WriteSVG renders p to w as a width by height SVG. The value axis
// always includes zero.
func (p *Plot) WriteSVG(w io.Writer, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("barplot: invalid dimensions %dx%d", width, height)
	}

	top, right, bottom := 15, 15, 40
	if p.title != "" {
		top = 35
	}
	left := 55
	if p.ylabel != "" {
		left += 18
	}
	ax, ay := left, top
	aw, ah := width-left-right, height-top-bottom
	if aw < 10 || ah < 10 {
		return fmt.Errorf("barplot: %dx%d leaves no room for the plot area", width, height)
	}

	lo, hi := 0.0, 0.0
	for _, v := range p.values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		hi = lo + 1
	}
	sl := scale.Linear{Min: lo, Max: hi}
	y := func(v float64) int {
		return ay + ah - round(sl.Map(v)*float64(ah))
	}

	bw := bufio.NewWriter(w)
	s := svg.New(bw)
	s.Start(width, height, `font-family="sans-serif" font-size="12px"`)

	s.Rect(ax, ay, aw, ah, "fill:#eee")
	major, _ := sl.Ticks(scale.TickOptions{Max: 6})
	for _, tick := range major {
		ty := y(tick)
		s.Line(ax, ty, ax+aw, ty, "stroke:#fff;stroke-width:2")
		s.Text(ax-8, ty, fmt.Sprintf("%.6g", tick), `text-anchor="end" dy=".3em" fill="#666"`)
	}

	band := float64(aw) / float64(len(p.values))
	zero := y(0)
	for i, v := range p.values {
		bx := float64(ax) + (float64(i)+0.1)*band
		by := y(math.Max(0, v))
		bh := abs(y(v) - zero)
		s.Rect(round(bx), by, round(0.8*band), bh, "fill:"+p.color)

		lx := round(float64(ax) + (float64(i)+0.5)*band)
		s.Text(lx, ay+ah+6, p.labels[i], `text-anchor="middle" dy="1em" fill="#666"`)
	}

	if p.title != "" {
		s.Text(width/2, 20, p.title, `text-anchor="middle" font-size="16px"`)
	}
	if p.ylabel != "" {
		s.Text(0, 0, p.ylabel, fmt.Sprintf(`transform="translate(12 %d) rotate(-90)" text-anchor="middle" fill="#666"`, ay+ah/2))
	}

	s.End()
	return bw.Flush()
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
