// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

// Bits returns the width least significant bits of v as a binary string, most
// significant bit first, suitable as a vector or scalar value.
//
func Bits(v uint64, width int) string {
	if width <= 0 {
		return ""
	}
	out := make([]byte, width)
	for bit := 0; bit < width; bit++ {
		c := byte('0')
		if bit < 64 && v&(1<<uint(bit)) != 0 {
			c = '1'
		}
		out[width-bit-1] = c
	}
	return string(out)
}

// BitsOf returns the binary string for the given pin states. Pin 0 is lsb.
//
func BitsOf(pins []bool) string {
	out := make([]byte, len(pins))
	for bit, s := range pins {
		c := byte('0')
		if s {
			c = '1'
		}
		out[len(pins)-bit-1] = c
	}
	return string(out)
}

// Int64 returns the value of a binary string, as produced by Bits, or ok ==
// false if s contains undefined or high impedance bits.
//
func Int64(s string) (v int64, ok bool) {
	for i := 0; i < len(s); i++ {
		v <<= 1
		switch s[i] {
		case '1':
			v |= 1
		case '0':
		default:
			return 0, false
		}
	}
	return v, true
}
