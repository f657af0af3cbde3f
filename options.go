// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"github.com/db47h/vcd/sink"
	"github.com/tliron/commonlog"
)

type config struct {
	timestamp   uint64
	scopeType   ScopeType
	sep         string
	dumpOff     bool
	log         commonlog.Logger
	compression sink.Compression
}

func defaultConfig() config {
	return config{
		scopeType:   Module,
		sep:         ".",
		compression: sink.Auto,
	}
}

// An Option configures a Writer.
//
type Option func(*config)

// WithTimestamp sets the starting timestamp. The default is 0.
//
func WithTimestamp(t uint64) Option {
	return func(c *config) { c.timestamp = t }
}

// WithScopeType sets the type of scopes created by Register. The default is
// Module.
//
func WithScopeType(t ScopeType) Option {
	return func(c *config) { c.scopeType = t }
}

// WithScopeSeparator sets the separator between the segments of a scope
// name. The default is ".". An empty separator is ignored.
//
func WithScopeSeparator(sep string) Option {
	return func(c *config) {
		if sep != "" {
			c.sep = sep
		}
	}
}

// WithDumpOff starts the writer with dumping suspended, as if DumpOff had been
// called right after the initial values were dumped.
//
func WithDumpOff() Option {
	return func(c *config) { c.dumpOff = true }
}

// WithLogger sets the logger used for debug messages. The default is the
// "vcd" commonlog logger.
//
func WithLogger(l commonlog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithCompression selects the compression of files opened by Create and Dump.
// The default, sink.Auto, picks it from the file extension.
//
func WithCompression(comp sink.Compression) Option {
	return func(c *config) { c.compression = comp }
}

type registerConfig struct {
	init     string
	dupCheck bool
}

// A RegisterOption configures a variable registration.
//
type RegisterOption func(*registerConfig)

// Init sets the initial value of a variable. The default is Undef, which
// vectors expand to their full width and reals turn into 0.0. Event
// variables ignore it.
//
func Init(value string) RegisterOption {
	return func(c *registerConfig) { c.init = value }
}

// NoDupCheck skips the duplicate name check. A variable registered with the
// same scope and name as an existing one shadows it in lookups by name; the
// older variable can still be changed through its own *Var.
//
func NoDupCheck() RegisterOption {
	return func(c *registerConfig) { c.dupCheck = false }
}
