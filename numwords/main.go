// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command numwords prints the English names of small whole numbers.
//
// Numbers come from the command line, or, with no arguments, from
// standard input as whitespace-separated integers:
//
//	$ numwords 4 8 15
//	four
//	eight
//	fifteen
//
// Only 0 through 99 have names. By default anything else aborts the
// run; -onbad chooses a forgiving policy instead.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/dsbook/datalab/words"
	"github.com/dustin/go-humanize"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	flagCap     = flag.Bool("cap", false, "capitalize the first letter of each name")
	flagOrdinal = flag.Bool("ordinal", false, "also print the ordinal abbreviation (1st, 2nd, ...)")
	flagOnBad   = flag.String("onbad", "abort", "`policy` for bad numbers: abort, skip, or na")
	flagNA      = flag.String("na", "NA", "`placeholder` printed for bad numbers with -onbad na")
	flagOut     = flag.String("o", "", "write output to `file` instead of standard output")
)

func main() {
	log.SetPrefix("numwords: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [n...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	switch *flagOnBad {
	case "abort", "skip", "na":
	default:
		flag.Usage()
		os.Exit(2)
	}

	out := io.Writer(os.Stdout)
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			emit(out, arg)
		}
		return
	}

	if terminal.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "numwords: reading numbers from standard input")
	}
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		emit(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

// emit writes the output line for one input token, applying the
// -onbad policy.
func emit(w io.Writer, tok string) {
	line, err := oneLine(tok)
	if err != nil {
		switch *flagOnBad {
		case "abort":
			log.Fatal(err)
		case "skip":
			return
		case "na":
			line = *flagNA
		}
	}
	fmt.Fprintln(w, line)
}

func oneLine(tok string) (string, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return "", fmt.Errorf("bad number %q", tok)
	}
	var name string
	if *flagCap {
		name, err = words.NumberCapitalized(n)
	} else {
		name, err = words.Number(n)
	}
	if err != nil {
		return "", err
	}
	if *flagOrdinal {
		name += "\t" + humanize.Ordinal(n)
	}
	return name, nil
}
