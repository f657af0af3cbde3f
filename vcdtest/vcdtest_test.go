package vcdtest_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/vcd/vcdtest"
)

func TestSplit(t *testing.T) {
	out := vcdtest.Lines("$timescale 1 ns $end", "$enddefinitions $end", "#0")
	if got := vcdtest.Definitions(out); got != "$timescale 1 ns $end\n$enddefinitions $end\n" {
		t.Errorf("Definitions = %q", got)
	}
	if got := vcdtest.Body(out); got != "#0\n" {
		t.Errorf("Body = %q", got)
	}
	if got := vcdtest.Body("#0\n"); got != "" {
		t.Errorf("Body without definitions = %q", got)
	}
}

func TestRandBits(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 16; n++ {
		s := vcdtest.RandBits(r, n, false)
		if len(s) != n || strings.Trim(s, "01") != "" {
			t.Errorf("RandBits(%d) = %q", n, s)
		}
		s = vcdtest.RandBits(r, n, true)
		if len(s) != n || strings.Trim(s, "01xz") != "" {
			t.Errorf("RandBits(%d, fourState) = %q", n, s)
		}
	}
}
