// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vcdtest provides utility functions for testing VCD output.
//
package vcdtest

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

// Buffer is an in-memory destination that counts calls to Flush and Close.
//
type Buffer struct {
	bytes.Buffer
	Flushes int
	Closes  int
}

// Flush implements the flusher interface used by vcd.Writer.
//
func (b *Buffer) Flush() error {
	b.Flushes++
	return nil
}

// Close implements io.Closer.
//
func (b *Buffer) Close() error {
	b.Closes++
	return nil
}

const endDefs = "$enddefinitions $end\n"

// Definitions returns the part of out up to and including the
// $enddefinitions line.
//
func Definitions(out string) string {
	if i := strings.Index(out, endDefs); i >= 0 {
		return out[:i+len(endDefs)]
	}
	return out
}

// Body returns the part of out following the $enddefinitions line.
//
func Body(out string) string {
	if i := strings.Index(out, endDefs); i >= 0 {
		return out[i+len(endDefs):]
	}
	return ""
}

// Lines joins the given lines into VCD output, each line terminated by a
// newline.
//
func Lines(lines ...string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// RandBits returns a random string of n characters from "01". If fourState is
// set, undefined and high impedance states are used as well.
//
func RandBits(r *rand.Rand, n int, fourState bool) string {
	alpha := "01"
	if fourState {
		alpha = "01xz"
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = alpha[r.Intn(len(alpha))]
	}
	return string(out)
}

// Equal compares two VCD outputs line by line and reports the first
// difference.
//
func Equal(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	gl, wl := strings.Split(got, "\n"), strings.Split(want, "\n")
	for i := 0; i < len(gl) && i < len(wl); i++ {
		if gl[i] != wl[i] {
			t.Errorf("line %d: got %q, expected %q\ngot:\n%s\nexpected:\n%s", i+1, gl[i], wl[i], got, want)
			return
		}
	}
	t.Errorf("got %d lines, expected %d\ngot:\n%s\nexpected:\n%s", len(gl), len(wl), got, want)
}
