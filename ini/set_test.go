// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		section string
		key     string
		value   Value
		want    string
	}{
		{
			name:    "AddToEmpty",
			section: "",
			key:     "foo",
			value:   String("bar"),
			want:    "foo=bar\n",
		},
		{
			name:    "AddSectionToEmpty",
			section: "foo",
			key:     "bar",
			value:   String("baz"),
			want:    "[foo]\nbar=baz\n",
		},
		{
			name:    "Overwrite",
			source:  "foo=bar\n",
			section: "",
			key:     "foo",
			value:   String("xyzzy"),
			want:    "foo=xyzzy\n",
		},
		{
			name:    "OverwriteEmpty",
			source:  "[section1]\nfoo=\n#bar=\n",
			section: "section1",
			key:     "foo",
			value:   String("foovalue"),
			want:    "[section1]\nfoo=foovalue\n#bar=\n",
		},
		{
			name:    "OverwriteKeepsSpacing",
			source:  "[DEFAULT]\n    debug = False # not a comment\n",
			section: "DEFAULT",
			key:     "debug",
			value:   String("True"),
			want:    "[DEFAULT]\n    debug = True\n",
		},
		{
			name:    "OverwriteEmptyWithSpaceBeforeEquals",
			source:  "[section1]\nbaz =\n",
			section: "section1",
			key:     "baz",
			value:   String("quux"),
			want:    "[section1]\nbaz = quux\n",
		},
		{
			name:    "OverwriteKeepsSpaceOnlyBeforeEquals",
			source:  "[section1]\nbaz =bar\n",
			section: "section1",
			key:     "baz",
			value:   String("quux"),
			want:    "[section1]\nbaz =quux\n",
		},
		{
			name:    "SameValueUnchanged",
			source:  "[section1]\n  foo   =   bar  \n",
			section: "section1",
			key:     "foo",
			value:   String("bar"),
			want:    "[section1]\n  foo   =   bar  \n",
		},
		{
			name:    "Uncomment",
			source:  "[section1]\nfoo=\n#bar=\n#xyzzy['thing1']['thing2']='xyzzyvalue'\n",
			section: "section1",
			key:     "bar",
			value:   String("barvalue"),
			want:    "[section1]\nfoo=\nbar=barvalue\n#xyzzy['thing1']['thing2']='xyzzyvalue'\n",
		},
		{
			name:    "UncommentKeepsIndentAndSpacing",
			source:  "[database]\n  # connection = sqlite://\n\n[api]\n",
			section: "database",
			key:     "connection",
			value:   String("mysql+pymysql://nova@db/nova"),
			want:    "[database]\n  connection = mysql+pymysql://nova@db/nova\n\n[api]\n",
		},
		{
			name:    "UncommentOnlyInSection",
			source:  "[a]\n#foo=1\n[b]\nbar=2\n",
			section: "b",
			key:     "foo",
			value:   String("3"),
			want:    "[a]\n#foo=1\n[b]\nbar=2\nfoo=3\n",
		},
		{
			name:    "UncommentList",
			source:  "[DEFAULT]\n;enabled_apis = osapi_compute\n# end\n",
			section: "DEFAULT",
			key:     "enabled_apis",
			value:   List("osapi_compute", "metadata"),
			want:    "[DEFAULT]\nenabled_apis = osapi_compute\nenabled_apis = metadata\n# end\n",
		},
		{
			name:    "AddToExistingSection",
			source:  "[foo]\nbar=baz\n\n[quux]\nspam=eggs\n",
			section: "foo",
			key:     "xyzzy",
			value:   String("magic"),
			want:    "[foo]\nbar=baz\nxyzzy=magic\n\n[quux]\nspam=eggs\n",
		},
		{
			name:    "AddFollowsSectionStyle",
			source:  "[global]\n    workgroup = FELLOWSHIP\n",
			section: "global",
			key:     "security",
			value:   String("ads"),
			want:    "[global]\n    workgroup = FELLOWSHIP\n    security = ads\n",
		},
		{
			name:    "AddToEmptySection",
			source:  "[foo]\n\n[bar]\n",
			section: "foo",
			key:     "baz",
			value:   String("quux"),
			want:    "[foo]\nbaz=quux\n\n[bar]\n",
		},
		{
			name:    "AddAfterTrailingComment",
			source:  "[foo]\nbar=baz\n; trailing\n\n",
			section: "foo",
			key:     "spam",
			value:   String("eggs"),
			want:    "[foo]\nbar=baz\n; trailing\nspam=eggs\n\n",
		},
		{
			name:    "AddGlobalBeforeSections",
			source:  "[foo]\nbar=baz\n",
			section: "",
			key:     "global",
			value:   String("world"),
			want:    "global=world\n[foo]\nbar=baz\n",
		},
		{
			name:    "AddGlobalAfterComments",
			source:  "# header comment\n\n[foo]\nbar=baz\n",
			section: "",
			key:     "global",
			value:   String("world"),
			want:    "# header comment\nglobal=world\n\n[foo]\nbar=baz\n",
		},
		{
			name:    "AddNewSection",
			source:  "[foo]\nbar=baz\n",
			section: "python",
			key:     "spam",
			value:   String("eggs"),
			want:    "[foo]\nbar=baz\n[python]\nspam=eggs\n",
		},
		{
			name:    "AddNewSectionList",
			source:  "[foo]\nbar=baz\n",
			section: `branch "master"`,
			key:     "remote",
			value:   List("origin", "upstream"),
			want:    "[foo]\nbar=baz\n[branch \"master\"]\nremote=origin\nremote=upstream\n",
		},
		{
			name:    "FirstOfDuplicateSections",
			source:  "[foo]\nbar=1\n[foo]\nbar=2\n",
			section: "foo",
			key:     "bar",
			value:   String("3"),
			want:    "[foo]\nbar=3\n[foo]\nbar=2\n",
		},
		{
			name:    "AddList",
			source:  "[test]\n  test = value1\n",
			section: "test",
			key:     "test2",
			value:   List("valueA", "valueB", "valueC"),
			want:    "[test]\n  test = value1\n  test2 = valueA\n  test2 = valueB\n  test2 = valueC\n",
		},
		{
			name:    "GrowScalarToList",
			source:  "[test]\ntest=value1\nother=x\n",
			section: "test",
			key:     "test",
			value:   List("value1", "value2"),
			want:    "[test]\ntest=value1\ntest=value2\nother=x\n",
		},
		{
			name:    "ReplaceList",
			source:  "[test]\ntest=a\n# between\ntest=b\n",
			section: "test",
			key:     "test",
			value:   List("c", "d"),
			want:    "[test]\ntest=c\n# between\ntest=d\n",
		},
		{
			name:    "ShrinkListToScalar",
			source:  "[test]\ntest=value1\ntest=value2\ntest=value3\nother=x\n",
			section: "test",
			key:     "test",
			value:   String("value1"),
			want:    "[test]\ntest=value1\nother=x\n",
		},
		{
			name:    "EmptyListRemovesSetting",
			source:  "[test]\ntest=value1\ntest=value2\nother=x\n",
			section: "test",
			key:     "test",
			value:   List(),
			want:    "[test]\nother=x\n",
		},
		{
			name:    "EmptyListOnMissingSectionIsNoop",
			source:  "[test]\nother=x\n",
			section: "nope",
			key:     "test",
			value:   List(),
			want:    "[test]\nother=x\n",
		},
		{
			name:    "CRLF",
			source:  "[foo]\r\nbar=baz\r\n",
			section: "foo",
			key:     "spam",
			value:   String("eggs"),
			want:    "[foo]\r\nbar=baz\r\nspam=eggs\r\n",
		},
		{
			name:    "SingleUnterminatedLineKeepsLF",
			source:  "foo=bar",
			section: "",
			key:     "x",
			value:   String("y"),
			want:    "foo=bar\nx=y",
		},
		{
			name:    "SingleCRLFLine",
			source:  "foo=bar\r\n",
			section: "",
			key:     "x",
			value:   String("y"),
			want:    "foo=bar\r\nx=y\r\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(test.source))
			if err != nil {
				t.Fatal(err)
			}
			d.Set(test.section, test.key, test.value)
			got, err := d.MarshalText()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("MarshalText (-want +got):\n%s", diff)
			}

			// The in-memory model and a fresh parse must agree with what was set.
			if test.value.Len() == 0 {
				if v, ok := d.Get(test.section, test.key); ok {
					t.Errorf("Get(%q, %q) = %v, true after setting empty list; want absent", test.section, test.key, v)
				}
				return
			}
			if v, ok := d.Get(test.section, test.key); !ok || !v.Equal(test.value) {
				t.Errorf("Get(%q, %q) = %v, %t; want %v, true", test.section, test.key, v, ok, test.value)
			}
			reparsed, err := Parse(strings.NewReader(string(got)))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.SectionNames(), reparsed.SectionNames()); diff != "" {
				t.Errorf("SectionNames() differs after reparse (-set +reparsed):\n%s", diff)
			}
			for _, name := range d.SectionNames() {
				if diff := cmp.Diff(d.Settings(name), reparsed.Settings(name)); diff != "" {
					t.Errorf("Settings(%q) differs after reparse (-set +reparsed):\n%s", name, diff)
				}
			}
		})
	}
}

func TestSetSequence(t *testing.T) {
	d := New([]string{
		"[section1]",
		"foo=",
		"#bar=",
		"#xyzzy['thing1']['thing2']='xyzzyvalue'",
		"[section2]",
		"baz=1",
	})
	steps := []struct {
		section string
		key     string
		value   Value
	}{
		{"section1", "foo", String("foovalue")},
		{"section1", "bar", String("barvalue")},
		{"section1", "xyzzy['thing1']['thing2']", String("xyzzyvalue")},
		{"section1", "new", List("a", "b")},
		{"section2", "baz", List("1", "2", "3")},
		{"section1", "new", String("c")},
		{"section3", "fresh", String("yes")},
		{"section2", "baz", String("4")},
	}
	for _, step := range steps {
		if v, ok := d.Get(step.section, step.key); ok && v.Equal(step.value) {
			t.Fatalf("Get(%q, %q) = %v before Set; test expects a change", step.section, step.key, v)
		}
		d.Set(step.section, step.key, step.value)
		if v, ok := d.Get(step.section, step.key); !ok || !v.Equal(step.value) {
			t.Errorf("after Set(%q, %q, %v): Get = %v, %t", step.section, step.key, step.value, v, ok)
		}
	}
	want := []string{
		"[section1]",
		"foo=foovalue",
		"bar=barvalue",
		"xyzzy['thing1']['thing2']=xyzzyvalue",
		"new=c",
		"[section2]",
		"baz=4",
		"[section3]",
		"fresh=yes",
	}
	if diff := cmp.Diff(want, d.Lines()); diff != "" {
		t.Errorf("Lines() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "section1", "section2", "section3"}, d.SectionNames()); diff != "" {
		t.Errorf("SectionNames() (-want +got):\n%s", diff)
	}
}

func TestSetIdempotent(t *testing.T) {
	const source = "# comment\n[DEFAULT]\n  debug = True\n\n[test]\ntest = value1\ntest = value2\n"
	d, err := Parse(strings.NewReader(source))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		d.Set("DEFAULT", "debug", String("True"))
		d.Set("test", "test", List("value1", "value2"))
		got, err := d.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(source, string(got)); diff != "" {
			t.Errorf("MarshalText after Set #%d (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestSetZeroDocument(t *testing.T) {
	d := new(Document)
	d.Set("", "foo", String("bar"))
	d.Set("mysection", "host", String("example.com"))
	got, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if want := "foo=bar\n[mysection]\nhost=example.com\n"; string(got) != want {
		t.Errorf("MarshalText() = %q; want %q", got, want)
	}
}

func TestSetPanics(t *testing.T) {
	tests := []struct {
		name    string
		section string
		key     string
		value   Value
	}{
		{"EmptyKey", "foo", "", String("bar")},
		{"KeyWithEquals", "foo", "a=b", String("bar")},
		{"CommentKey", "foo", "#bar", String("bar")},
		{"SectionWithNewline", "foo\n[bar]", "key", String("bar")},
		{"ValueWithNewline", "foo", "key", List("ok", "bad\nvalue")},
		{"PaddedValue", "foo", "key", String(" padded ")},
		{"TrailingSpaceInList", "foo", "key", List("ok", "bad ")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Set(%q, %q, %v) did not panic", test.section, test.key, test.value)
				}
			}()
			new(Document).Set(test.section, test.key, test.value)
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		section string
		key     string
		want    string
	}{
		{
			name:    "Empty",
			section: "",
			key:     "foo",
			want:    "",
		},
		{
			name:    "Global",
			source:  "junk1=\nfoo=bar\njunk2=\n",
			section: "",
			key:     "foo",
			want:    "junk1=\njunk2=\n",
		},
		{
			name:    "Section",
			source:  "[group]\njunk1=\nfoo=bar\njunk2=\n",
			section: "group",
			key:     "foo",
			want:    "[group]\njunk1=\njunk2=\n",
		},
		{
			name:    "EmptySectionKept",
			source:  "[group]\nfoo=bar\n",
			section: "group",
			key:     "foo",
			want:    "[group]\n",
		},
		{
			name:    "MultipleInSection",
			source:  "[group]\njunk=\nfoo=bar\n; keep me\nfoo=baz\n",
			section: "group",
			key:     "foo",
			want:    "[group]\njunk=\n; keep me\n",
		},
		{
			name:    "OnlyFirstSection",
			source:  "[group]\nfoo=bar\n[other]\nfoo=other\n[group]\nfoo=baz\n",
			section: "group",
			key:     "foo",
			want:    "[group]\n[other]\nfoo=other\n[group]\nfoo=baz\n",
		},
		{
			name:    "CommentedLinesKept",
			source:  "[group]\n#foo=bar\n",
			section: "group",
			key:     "foo",
			want:    "[group]\n#foo=bar\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(test.source))
			if err != nil {
				t.Fatal(err)
			}
			d.Delete(test.section, test.key)
			got, err := d.MarshalText()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("MarshalText (-want +got):\n%s", diff)
			}
			if v, ok := d.Get(test.section, test.key); ok {
				t.Errorf("Get(%q, %q) = %v, true after Delete", test.section, test.key, v)
			}
		})
	}
}
