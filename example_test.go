package vcd_test

import (
	"fmt"
	"os"

	"github.com/db47h/vcd"
)

// A 4 bit counter with its clock.
func ExampleWriter() {
	h, err := vcd.NewHeader(vcd.TS10, vcd.NS, "", "counter example", "")
	if err != nil {
		panic(err)
	}
	w, err := vcd.New(os.Stdout, h)
	if err != nil {
		panic(err)
	}
	defer w.Close()

	clk, err := w.Register("top", "clk", vcd.Wire, 1)
	if err != nil {
		panic(err)
	}
	cnt, err := w.Register("top.counter", "q", vcd.Reg, 4)
	if err != nil {
		panic(err)
	}
	for t := uint64(0); t < 4; t++ {
		w.Change(clk, t, vcd.Bits(t&1, 1))
		w.Change(cnt, t, vcd.Bits(t/2, 4))
	}

	// Output:
	// $timescale 10 ns $end
	// $comment counter example $end
	// $scope module top $end
	// $var wire 1 0 clk $end
	// $scope module counter $end
	// $var reg 4 1 q $end
	// $upscope $end
	// $upscope $end
	// $enddefinitions $end
	// #0
	// $dumpvars
	// b0 0
	// b0000 1
	// $end
	// #1
	// b1 0
	// #2
	// b0 0
	// b0001 1
	// #3
	// b1 0
}

// Change reports whether a value was written.
func ExampleWriter_Change() {
	h, _ := vcd.NewHeader(vcd.TS1, vcd.US, "", "", "")
	w, _ := vcd.New(os.Stdout, h)
	v, _ := w.Register("bus", "data", vcd.Wire, 8)
	w.Flush()

	for _, val := range []string{"1010", "00001010", "x"} {
		changed, _ := w.Change(v, 1, val)
		fmt.Println(changed)
	}
	w.Close()

	// Output:
	// $timescale 1 us $end
	// $scope module bus $end
	// $var wire 8 0 data $end
	// $upscope $end
	// $enddefinitions $end
	// #0
	// $dumpvars
	// bxxxxxxxx 0
	// $end
	// true
	// false
	// true
	// #1
	// b00001010 0
	// b0000000x 0
}
