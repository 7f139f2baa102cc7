// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command trendplot plots a numeric CSV column over time.
//
// trendplot reads observations from CSV files, parses a date column,
// and renders the value column against time as an SVG scatter plot
// with connecting lines. Observations can be averaged per day,
// split into colored series, faceted into aligned subplots, smoothed
// with a LOESS or least squares trend, and filtered to a recent
// window:
//
//	trendplot -y ozone -color site -smooth loess -since 2y air.csv
//
// With -catalog, arguments name datasets from a catalog file instead
// of CSV paths.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aclements/go-gg/table"
)

var (
	flagX       = flag.String("x", "date", "date `column` for the x axis")
	flagY       = flag.String("y", "value", "numeric `column` to plot")
	flagColor   = flag.String("color", "", "split into colored series by `column`")
	flagBy      = flag.String("by", "", "facet into subplot rows by `column`")
	flagMean    = flag.Bool("mean", false, "plot the mean of -y at each date")
	flagSmooth  = flag.String("smooth", "none", "overlay a trend line: none, loess, or linear")
	flagSpan    = flag.Float64("span", 0.5, "proportion of points in each -smooth loess fit")
	flagSince   = flag.String("since", "", "drop observations more than `duration` old (e.g. 1y6mo)")
	flagCatalog = flag.String("catalog", "", "treat arguments as dataset names from catalog `file`")
	flagTable   = flag.Bool("table", false, "print the plotted table instead of rendering")
	flagOut     = flag.String("o", "", "write output to `file` instead of standard output")
)

func main() {
	log.SetPrefix("trendplot: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file.csv...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	switch *flagSmooth {
	case "none", "loess", "linear":
	default:
		flag.Usage()
		os.Exit(2)
	}

	tab, err := load(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	data, ycol, err := prepare(tab)
	if err != nil {
		log.Fatal(err)
	}

	out := os.Stdout
	if *flagOut != "" {
		out, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
	}

	if *flagTable {
		if err := table.Fprint(out, data); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := plot(out, data, ycol); err != nil {
		log.Fatal(err)
	}
}
