// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"strconv"
	"strings"

	"github.com/db47h/vcd/internal/text"
)

// Timescale is the number of time units one timestamp increment represents.
//
type Timescale int

// Valid timescale quantities.
//
const (
	TS1   Timescale = 1
	TS10  Timescale = 10
	TS100 Timescale = 100
)

func (q Timescale) valid() bool { return q == TS1 || q == TS10 || q == TS100 }

// TimeUnit is the physical unit of a Timescale.
//
type TimeUnit int

// Valid time units.
//
const (
	S TimeUnit = iota
	MS
	US
	NS
	PS
	FS
	timeUnitCount
)

var timeUnitNames = [...]string{"s", "ms", "us", "ns", "ps", "fs"}

func (u TimeUnit) valid() bool { return u >= 0 && u < timeUnitCount }

func (u TimeUnit) String() string {
	if !u.valid() {
		return "TimeUnit(" + strconv.Itoa(int(u)) + ")"
	}
	return timeUnitNames[u]
}

// ParseTimescale parses a timescale specification like "100 ms" or "1ns".
//
func ParseTimescale(s string) (Timescale, TimeUnit, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 {
		return 0, 0, typeErrorf("invalid timescale %q", s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || !Timescale(n).valid() {
		return 0, 0, typeErrorf("invalid timescale quantity in %q", s)
	}
	unit := strings.TrimSpace(s[i:])
	for u, name := range timeUnitNames {
		if unit == name {
			return Timescale(n), TimeUnit(u), nil
		}
	}
	return 0, 0, typeErrorf("invalid timescale unit in %q", s)
}

// A Header holds the metadata written at the top of a VCD file. It is handed
// over to a Writer which drops it once written.
//
type Header struct {
	scale   Timescale
	unit    TimeUnit
	date    string
	comment string
	version string
}

// NewHeader returns a new header. Empty date, comment or version sections are
// omitted from the output.
//
func NewHeader(scale Timescale, unit TimeUnit, date, comment, version string) (*Header, error) {
	if !scale.valid() {
		return nil, typeErrorf("invalid timescale quantity %d", int(scale))
	}
	if !unit.valid() {
		return nil, typeErrorf("invalid timescale unit %d", int(unit))
	}
	if !text.ValidDate(date) {
		return nil, typeErrorf("invalid date %q", date)
	}
	return &Header{scale: scale, unit: unit, date: date, comment: comment, version: version}, nil
}

// DefaultHeader returns a 1 ns header dated now.
//
func DefaultHeader() *Header {
	return &Header{scale: TS1, unit: NS, date: text.Now()}
}

// Timescale returns the textual timescale, e.g. "1 ns".
//
func (h *Header) Timescale() string {
	return strconv.Itoa(int(h.scale)) + " " + h.unit.String()
}

// sections returns the header keywords and their values in output order.
func (h *Header) sections() [4][2]string {
	return [4][2]string{
		{"$timescale", h.Timescale()},
		{"$date", h.date},
		{"$comment", h.comment},
		{"$version", h.version},
	}
}
