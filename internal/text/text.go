// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package text holds the small string utilities used when rendering VCD
// header sections.
//
package text

import (
	"strings"
	"time"
)

// DateLayout is the layout used for generated $date sections.
//
const DateLayout = "2006-01-02 15:04:05"

// Now returns the current local time formatted with DateLayout.
//
func Now() string {
	return time.Now().Format(DateLayout)
}

// ValidDate reports whether date can be used as a $date value. Viewers
// display the section verbatim, so any string is accepted.
//
func ValidDate(date string) bool {
	return true
}

var continuation = strings.NewReplacer("\r\n", "\n\t", "\n\r", "\n\t", "\n", "\n\t", "\r", "\n\t")

// Continuation rewrites every line break in s as a newline followed by a tab so
// that multi-line header values stay inside their section. Two-character
// breaks (CRLF or LFCR) count as a single one.
//
func Continuation(s string) string {
	return continuation.Replace(s)
}
