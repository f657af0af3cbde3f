// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"strconv"
	"strings"
)

// ScopeType is the category of a scope. Viewers may display scope types
// differently; it has no effect on the hierarchy.
//
type ScopeType int

// Valid scope types.
//
const (
	Begin ScopeType = iota
	Fork
	Function
	Module
	Task
	scopeTypeCount
)

var scopeTypeNames = [...]string{"begin", "fork", "function", "module", "task"}

func (t ScopeType) valid() bool { return t >= 0 && t < scopeTypeCount }

func (t ScopeType) String() string {
	if !t.valid() {
		return "ScopeType(" + strconv.Itoa(int(t)) + ")"
	}
	return scopeTypeNames[t]
}

// ParseScopeType returns the ScopeType named s.
//
func ParseScopeType(s string) (ScopeType, error) {
	for i, n := range scopeTypeNames {
		if strings.EqualFold(s, n) {
			return ScopeType(i), nil
		}
	}
	return 0, typeErrorf("invalid scope type %q", s)
}

// VarType is the Verilog data type of a variable.
//
type VarType int

// Valid variable types.
//
const (
	Wire VarType = iota
	Reg
	String // string variables are a GTKWave extension
	Parameter
	Integer
	Real
	RealTime
	Time
	Event
	Supply0
	Supply1
	Tri
	TriAnd
	TriOr
	TriReg
	Tri0
	Tri1
	WAnd
	WOr
	varTypeCount
)

var varTypeNames = [...]string{
	"wire", "reg", "string", "parameter", "integer", "real", "realtime", "time", "event",
	"supply0", "supply1", "tri", "triand", "trior", "trireg", "tri0", "tri1", "wand", "wor",
}

func (t VarType) valid() bool { return t >= 0 && t < varTypeCount }

func (t VarType) String() string {
	if !t.valid() {
		return "VarType(" + strconv.Itoa(int(t)) + ")"
	}
	return varTypeNames[t]
}

// ParseVarType returns the VarType named s.
//
func ParseVarType(s string) (VarType, error) {
	for i, n := range varTypeNames {
		if strings.EqualFold(s, n) {
			return VarType(i), nil
		}
	}
	return 0, typeErrorf("invalid variable type %q", s)
}
