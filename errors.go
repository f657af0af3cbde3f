// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"github.com/pkg/errors"
)

// Error kinds. Errors returned by this package wrap one of these; use
// errors.Is (or errors.Cause) to test for them.
//
var (
	// ErrPhase reports an operation that is invalid in the writer's current
	// phase: registering after definitions were written, using a closed
	// writer, looking up an unknown scope or variable or going back in time.
	ErrPhase = errors.New("vcd phase error")
	// ErrType reports malformed input: invalid header settings, bad values,
	// empty names, missing widths or duplicate variables.
	ErrType = errors.New("vcd type error")
)

func phaseErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrPhase, format, args...)
}

func typeErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrType, format, args...)
}
