// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"unicode"
)

// Kind is the classification of a single line.
type Kind int

// Line kinds.
const (
	Blank Kind = iota
	Comment
	Header
	Setting
	Unparseable
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Blank:
		return "Blank"
	case Comment:
		return "Comment"
	case Header:
		return "Header"
	case Setting:
		return "Setting"
	case Unparseable:
		return "Unparseable"
	default:
		return "Kind(?)"
	}
}

// A Line is a single physical line of an INI file along with the fields
// extracted from it.
type Line struct {
	// Text is the line as it appears in the file, without a line terminator.
	Text string
	Kind Kind

	// Name is the section name for a Header line.
	Name string

	// Key and Value are set for Setting lines and for Comment lines that
	// contain a commented-out setting (see Commented).
	Key   string
	Value string

	commented bool
	indent    string // whitespace before the key or comment marker
	sep       string // '=' with any surrounding whitespace
}

// Commented reports whether the line is a comment whose text, after removing
// the comment marker, has the form of a setting. Such a line can be turned
// back into a setting by Document.Set.
func (ln Line) Commented() bool {
	return ln.commented
}

// Classify parses a single line without its line terminator.
func Classify(text string) Line {
	ln := Line{Text: text}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		ln.Kind = Blank
		return ln
	}
	ln.indent = text[:len(text)-len(strings.TrimLeftFunc(text, unicode.IsSpace))]
	switch trimmed[0] {
	case '#', ';':
		ln.Kind = Comment
		if key, sep, value, ok := splitSetting(trimmed[1:]); ok {
			ln.commented = true
			ln.Key = key
			ln.Value = value
			ln.sep = sep
		}
		return ln
	case '[':
		// "[]" would name the global section, which has no header.
		if len(trimmed) > 2 && trimmed[len(trimmed)-1] == ']' {
			ln.Kind = Header
			ln.Name = trimmed[1 : len(trimmed)-1]
			return ln
		}
	}
	key, sep, value, ok := splitSetting(trimmed)
	if !ok {
		ln.Kind = Unparseable
		return ln
	}
	ln.Kind = Setting
	ln.Key = key
	ln.Value = value
	ln.sep = sep
	return ln
}

// splitSetting splits s on its first equals sign. sep is the equals sign
// together with the whitespace around it.
func splitSetting(s string) (key, sep, value string, ok bool) {
	i := strings.IndexByte(s, '=')
	if i == -1 {
		return "", "", "", false
	}
	before, after := s[:i], s[i+1:]
	key = strings.TrimSpace(before)
	if key == "" {
		return "", "", "", false
	}
	value = strings.TrimLeftFunc(after, unicode.IsSpace)
	sep = before[len(strings.TrimRightFunc(before, unicode.IsSpace)):] + "=" + after[:len(after)-len(value)]
	value = strings.TrimRightFunc(value, unicode.IsSpace)
	if value == "" && sep != "=" && strings.HasSuffix(sep, "=") {
		// "key =" gets the space after '=' it would have with a value.
		sep += " "
	}
	return key, sep, value, true
}

// formatSetting builds the text of a setting line. The indentation and
// separator are usually copied from a neighboring line so that new and
// rewritten lines follow the file's existing style.
func formatSetting(indent, key, sep, value string) string {
	if sep == "" {
		sep = "="
	}
	if value == "" {
		sep = strings.TrimRightFunc(sep, unicode.IsSpace)
	}
	return indent + key + sep + value
}
