// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func set(t *testing.T, name, value string) {
	t.Helper()
	old := flag.Lookup(name).Value.String()
	if err := flag.Set(name, value); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { flag.Set(name, old) })
}

func TestOneLine(t *testing.T) {
	tests := []struct {
		tok          string
		cap, ordinal bool
		want         string
		err          string
	}{
		{tok: "7", want: "seven"},
		{tok: "7", cap: true, want: "Seven"},
		{tok: "42", ordinal: true, want: "forty-two\t42nd"},
		{tok: "0", cap: true, ordinal: true, want: "Zero\t0th"},
		{tok: "twelve", err: `bad number "twelve"`},
		{tok: "3.5", err: "bad number"},
		{tok: "100", err: "must be in [0, 99]"},
		{tok: "-1", err: "must be in [0, 99]"},
	}
	for _, test := range tests {
		set(t, "cap", boolStr(test.cap))
		set(t, "ordinal", boolStr(test.ordinal))
		got, err := oneLine(test.tok)
		if test.err != "" {
			if err == nil || !strings.Contains(err.Error(), test.err) {
				t.Errorf("oneLine(%q) error = %v; want substring %q", test.tok, err, test.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("oneLine(%q) = %v", test.tok, err)
		} else if got != test.want {
			t.Errorf("oneLine(%q) = %q; want %q", test.tok, got, test.want)
		}
	}
}

func TestEmitPolicy(t *testing.T) {
	var buf bytes.Buffer
	set(t, "onbad", "skip")
	emit(&buf, "12")
	emit(&buf, "bogus")
	emit(&buf, "13")
	if want := "twelve\nthirteen\n"; buf.String() != want {
		t.Errorf("with -onbad skip got %q; want %q", buf.String(), want)
	}

	buf.Reset()
	set(t, "onbad", "na")
	set(t, "na", "?")
	emit(&buf, "101")
	emit(&buf, "14")
	if want := "?\nfourteen\n"; buf.String() != want {
		t.Errorf("with -onbad na got %q; want %q", buf.String(), want)
	}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
