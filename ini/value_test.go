// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name       string
		value      Value
		wantList   bool
		wantItems  []string
		wantLast   string
		wantString string
	}{
		{
			name:       "Zero",
			wantList:   true,
			wantString: "[]",
		},
		{
			name:       "String",
			value:      String("foo"),
			wantItems:  []string{"foo"},
			wantLast:   "foo",
			wantString: "foo",
		},
		{
			name:       "EmptyString",
			value:      String(""),
			wantItems:  []string{""},
			wantString: "",
		},
		{
			name:       "List",
			value:      List("a", "b c"),
			wantList:   true,
			wantItems:  []string{"a", "b c"},
			wantLast:   "b c",
			wantString: `["a" "b c"]`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.value.IsList(); got != test.wantList {
				t.Errorf("IsList() = %t; want %t", got, test.wantList)
			}
			if diff := cmp.Diff(test.wantItems, test.value.Strings()); diff != "" {
				t.Errorf("Strings() (-want +got):\n%s", diff)
			}
			if got := test.value.Len(); got != len(test.wantItems) {
				t.Errorf("Len() = %d; want %d", got, len(test.wantItems))
			}
			if got := test.value.Last(); got != test.wantLast {
				t.Errorf("Last() = %q; want %q", got, test.wantLast)
			}
			if got := test.value.String(); got != test.wantString {
				t.Errorf("String() = %q; want %q", got, test.wantString)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{String("a"), List("a"), false},
		{List("a", "b"), List("a", "b"), true},
		{List("a", "b"), List("b", "a"), false},
		{List(), Value{}, true},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.want {
			t.Errorf("%v.Equal(%v) = %t; want %t", test.a, test.b, got, test.want)
		}
	}
}

func TestListCopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	v := List(items...)
	items[0] = "changed"
	if got := v.Strings(); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("List(...).Strings() = %q after modifying input; want [a b]", got)
	}
}
