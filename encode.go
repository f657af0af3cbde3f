// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"strconv"
	"strings"
	"unicode"
)

// Four-state values.
//
const (
	Zero  = "0"
	One   = "1"
	Undef = "x" // undefined
	HighZ = "z" // high impedance
)

// encoding is the value encoding of a variable. The set is closed: every
// VarType maps to exactly one encoding.
//
type encoding uint8

const (
	scalarEncoding encoding = iota
	vectorEncoding
	realEncoding
	stringEncoding
)

// resolve returns the encoding and effective width for a variable of type
// typ declared with the given width (0 meaning the type's default).
//
func resolve(typ VarType, width int) (encoding, int, error) {
	if width < 0 {
		return 0, 0, typeErrorf("invalid width %d for type %s", width, typ)
	}
	def := func(n int) int {
		if width == 0 {
			return n
		}
		return width
	}
	switch typ {
	case Integer, RealTime:
		if w := def(64); w > 1 {
			return vectorEncoding, w, nil
		}
		return scalarEncoding, 1, nil
	case Real:
		return realEncoding, def(64), nil
	case String:
		return stringEncoding, def(1), nil
	case Event:
		return scalarEncoding, 1, nil
	}
	if !typ.valid() {
		return 0, 0, typeErrorf("invalid variable type %d", int(typ))
	}
	if width == 0 {
		return 0, 0, typeErrorf("must supply width for type %s", typ)
	}
	return vectorEncoding, width, nil
}

func fourState(c byte) (byte, bool) {
	switch c {
	case '0', '1', 'x', 'z':
		return c, true
	case 'X', 'Z':
		return c + 'a' - 'A', true
	}
	return c, false
}

// initial maps the generic undefined marker used as a default initial value
// to a value the encoding accepts.
//
func (e encoding) initial(value string, width int) string {
	if value != Undef {
		return value
	}
	switch e {
	case vectorEncoding:
		return strings.Repeat(Undef, width)
	case realEncoding:
		return "0.0"
	}
	return value
}

// encode validates value and returns its change record, the part of a value
// change line that precedes the variable identifier.
//
func (e encoding) encode(value string, width int) (string, error) {
	switch e {
	case scalarEncoding:
		if value == "" {
			return Undef, nil
		}
		if len(value) != 1 {
			return "", typeErrorf("invalid scalar value %q", value)
		}
		c, ok := fourState(value[0])
		if !ok {
			return "", typeErrorf("invalid scalar value %q", value)
		}
		return string(c), nil

	case vectorEncoding:
		if len(value) > width {
			return "", typeErrorf("invalid vector value %q for width %d", value, width)
		}
		if value == "" {
			return "b" + strings.Repeat(Undef, width) + " ", nil
		}
		var b strings.Builder
		b.Grow(width + 2)
		b.WriteByte('b')
		for i := len(value); i < width; i++ {
			b.WriteByte('0')
		}
		for i := 0; i < len(value); i++ {
			c, ok := fourState(value[i])
			if !ok {
				return "", typeErrorf("invalid vector value %q for width %d", value, width)
			}
			b.WriteByte(c)
		}
		b.WriteByte(' ')
		return b.String(), nil

	case realEncoding:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "", typeErrorf("invalid real value %q", value)
		}
		return "r" + strconv.FormatFloat(f, 'g', 16, 64) + " ", nil

	case stringEncoding:
		if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
			return "", typeErrorf("invalid string value %q", value)
		}
		return "s" + value + " ", nil
	}
	panic("unknown encoding")
}

// undefined returns the record restating a variable as undefined. Reals
// cannot be undefined and report false.
//
func (e encoding) undefined() (string, bool) {
	switch e {
	case scalarEncoding:
		return Undef, true
	case vectorEncoding:
		return "b" + Undef + " ", true
	case stringEncoding:
		return "s" + Undef + " ", true
	}
	return "", false
}

// A Var is a registered variable. Its value is changed through the Writer it
// was registered with.
//
type Var struct {
	id    int
	ident string
	typ   VarType
	width int
	name  string
	scope int // index in the writer's scope arena
	enc   encoding
}

// Ident returns the short identifier of v in the VCD output.
//
func (v *Var) Ident() string { return v.ident }

// Name returns the variable name.
//
func (v *Var) Name() string { return v.name }

// Type returns the variable type.
//
func (v *Var) Type() VarType { return v.typ }

// Width returns the variable width in bits.
//
func (v *Var) Width() int { return v.width }

func (v *Var) declaration() string {
	return "$var " + v.typ.String() + " " + strconv.Itoa(v.width) + " " + v.ident + " " + v.name + " $end"
}
