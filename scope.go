// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"sort"
	"strings"
)

type scope struct {
	name string
	typ  ScopeType
	vars []*Var // in registration order
}

// scopes is an arena of scopes. Indices are stable: scopes are never removed.
//
type scopes struct {
	list   []*scope
	byName map[string]int
}

func (s *scopes) lookup(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

func (s *scopes) add(name string, typ ScopeType) int {
	if s.byName == nil {
		s.byName = make(map[string]int)
	}
	i := len(s.list)
	s.list = append(s.list, &scope{name: name, typ: typ})
	s.byName[name] = i
	return i
}

// sorted returns the scopes split into path segments, in lexicographic order
// of their segments. A scope always sorts before its descendants, which keeps
// every subtree contiguous.
//
func (s *scopes) sorted(sep string) ([]*scope, [][]string) {
	type entry struct {
		sc   *scope
		path []string
	}
	es := make([]entry, len(s.list))
	for i, sc := range s.list {
		es[i] = entry{sc, strings.Split(sc.name, sep)}
	}
	sort.Slice(es, func(i, j int) bool {
		a, b := es[i].path, es[j].path
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	scs := make([]*scope, len(es))
	paths := make([][]string, len(es))
	for i, e := range es {
		scs[i], paths[i] = e.sc, e.path
	}
	return scs, paths
}

// sharedSegments returns the number of leading path segments a and b have in
// common.
//
func sharedSegments(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// writeScopes writes the scope hierarchy and variable declarations. Nesting is
// rebuilt from the scope names alone: moving from one scope to the next closes
// the segments of the previous path past their shared prefix then opens the
// remaining segments of the new one.
//
func (w *Writer) writeScopes() {
	scs, paths := w.scopes.sorted(w.sep)
	var prev []string
	for i, sc := range scs {
		path := paths[i]
		n := sharedSegments(prev, path)
		for j := n; j < len(prev); j++ {
			w.line("$upscope $end")
		}
		for j := n; j < len(path)-1; j++ {
			w.line("$scope " + w.scopeType.String() + " " + path[j] + " $end")
		}
		w.line("$scope " + sc.typ.String() + " " + path[len(path)-1] + " $end")
		for _, v := range sc.vars {
			w.line(v.declaration())
		}
		prev = path
	}
	for range prev {
		w.line("$upscope $end")
	}
}
