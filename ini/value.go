// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"strings"
)

// A Value is the value of a setting: either a single string or an ordered
// list of strings. A key that appears once in a section has a single string
// value; a key that repeats has a list value with one element per occurrence.
//
// The zero Value is an empty list.
type Value struct {
	single bool
	items  []string
}

// String returns a single string value.
func String(s string) Value {
	return Value{single: true, items: []string{s}}
}

// List returns a list value holding a copy of items.
func List(items ...string) Value {
	return Value{items: append([]string(nil), items...)}
}

// IsList reports whether v is a list value.
func (v Value) IsList() bool {
	return !v.single
}

// Len returns the number of strings in v. A single string value has length 1.
func (v Value) Len() int {
	return len(v.items)
}

// Strings returns a copy of the strings in v.
func (v Value) Strings() []string {
	return append([]string(nil), v.items...)
}

// Last returns the last string in v or the empty string if v is an empty
// list. For a single string value, this is the string itself.
func (v Value) Last() string {
	if len(v.items) == 0 {
		return ""
	}
	return v.items[len(v.items)-1]
}

// Equal reports whether v and w are the same kind of value and hold the same
// strings in the same order.
func (v Value) Equal(w Value) bool {
	if v.single != w.single || len(v.items) != len(w.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != w.items[i] {
			return false
		}
	}
	return true
}

// String formats v for display. Single string values are returned as-is.
func (v Value) String() string {
	if v.single {
		return v.items[0]
	}
	sb := new(strings.Builder)
	sb.WriteByte('[')
	for i, s := range v.items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(sb, "%q", s)
	}
	sb.WriteByte(']')
	return sb.String()
}

// appendItem returns the value formed by adding s after v's strings. The
// result is always a list.
func (v Value) appendItem(s string) Value {
	items := make([]string, 0, len(v.items)+1)
	items = append(items, v.items...)
	return Value{items: append(items, s)}
}

func (v Value) clone() Value {
	return Value{single: v.single, items: v.Strings()}
}
