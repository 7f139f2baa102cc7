// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package words converts small integers to their English names.
//
// It names every integer from 0 through 99: "zero", "nine",
// "fifteen", "forty", "forty-two". Numbers outside that range cannot
// be named and are reported as errors rather than guessed at.
package words

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ones names the non-zero single digits. Index 0 is unused; zero is
// irregular and lives in the irregular table.
var ones = [10]string{
	1: "one", 2: "two", 3: "three", 4: "four", 5: "five",
	6: "six", 7: "seven", 8: "eight", 9: "nine",
}

// tens names the multiples of ten by their tens digit, so tens[1] is
// "ten" and tens[9] is "ninety".
var tens = [10]string{
	1: "ten", 2: "twenty", 3: "thirty", 4: "forty", 5: "fifty",
	6: "sixty", 7: "seventy", 8: "eighty", 9: "ninety",
}

// irregular names the numbers that cannot be composed from tens and
// ones. It must be consulted before the two-digit decomposition:
// eleven through nineteen would otherwise come out as "ten-one"
// through "ten-nine".
var irregular = map[int]string{
	0:  "zero",
	11: "eleven",
	12: "twelve",
	13: "thirteen",
	14: "fourteen",
	15: "fifteen",
	16: "sixteen",
	17: "seventeen",
	18: "eighteen",
	19: "nineteen",
}

// An OutOfRangeError reports a number that has no name because it
// falls outside [0, 99].
type OutOfRangeError struct {
	N int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("no English name for %d: number must be in [0, 99]", e.N)
}

// Number returns the English name of n.
//
// The name is lower case and, for two-digit numbers that are not
// multiples of ten, hyphenated: Number(42) is "forty-two" while
// Number(40) is just "forty". If n is negative or has more than two
// digits, Number returns an *OutOfRangeError.
func Number(n int) (string, error) {
	if n < 0 || n > 99 {
		return "", &OutOfRangeError{n}
	}
	if w, ok := irregular[n]; ok {
		return w, nil
	}
	if n < 10 {
		return ones[n], nil
	}
	t, o := n/10, n%10
	if o == 0 {
		return tens[t], nil
	}
	return tens[t] + "-" + ones[o], nil
}

// NumberCapitalized is like Number but upper-cases the first letter
// of the name, for use at the start of a sentence:
// NumberCapitalized(42) is "Forty-two".
func NumberCapitalized(n int) (string, error) {
	w, err := Number(n)
	if err != nil {
		return "", err
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:], nil
}

// Numbers converts each element of ns in order. The i'th result is
// Number(ns[i]). If any element cannot be named, Numbers stops and
// returns the position of the offending element along with the
// underlying *OutOfRangeError; callers that want to skip or
// substitute bad elements should convert one element at a time.
func Numbers(ns []int) ([]string, error) {
	ws := make([]string, len(ns))
	for i, n := range ns {
		w, err := Number(n)
		if err != nil {
			return nil, fmt.Errorf("element %d: %v", i, err)
		}
		ws[i] = w
	}
	return ws, nil
}
