// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSourceUnavailable is returned (wrapped) when the text of an INI file
// could not be obtained.
var ErrSourceUnavailable = errors.New("ini source unavailable")

// A Document is a parsed INI file. It holds every line of the original text
// so that unmodified lines are written back exactly as they were read.
// The zero value is an empty document.
//
// A Document must not be modified concurrently with any other method call.
type Document struct {
	lines    []Line
	sections []*section // sections[0] is the global section once initialized

	crlf           bool
	noFinalNewline bool
}

// A section is a run of lines starting at a header. Settings refer to lines
// by their index in Document.lines.
type section struct {
	name     string
	header   int // -1 for the global section
	end      int // index after the last line in the section
	settings []*setting
}

type setting struct {
	key   string
	value Value
	lines []int // ascending
}

// New builds a Document from a file's lines. The lines must not include
// line terminators. New never fails: lines it cannot make sense of are kept
// verbatim and otherwise ignored.
func New(lines []string) *Document {
	d := new(Document)
	d.init()
	curr := d.sections[0]
	for i, text := range lines {
		ln := Classify(text)
		d.lines = append(d.lines, ln)
		if ln.Kind == Header {
			curr = &section{name: ln.Name, header: i}
			d.sections = append(d.sections, curr)
		} else if ln.Kind == Setting {
			curr.add(ln.Key, ln.Value, i)
		}
		curr.end = i + 1
	}
	return d
}

// Parse reads an INI file from r. Both LF and CRLF line endings are
// recognized; MarshalText reproduces whichever the file used. The only error
// Parse returns is a read error from r, which wraps ErrSourceUnavailable.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w: %w", ErrSourceUnavailable, err)
	}
	return parseText(string(data)), nil
}

func parseText(text string) *Document {
	if text == "" {
		return New(nil)
	}
	noFinalNewline := !strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	// A lone unterminated line says nothing about line endings.
	crlf := len(lines) > 1 || !noFinalNewline
	for i, line := range lines {
		if i == len(lines)-1 && noFinalNewline {
			break
		}
		if !strings.HasSuffix(line, "\r") {
			crlf = false
			break
		}
	}
	if crlf {
		for i := range lines {
			lines[i] = strings.TrimSuffix(lines[i], "\r")
		}
	}
	d := New(lines)
	d.crlf = crlf
	d.noFinalNewline = noFinalNewline
	return d
}

func (d *Document) init() {
	if len(d.sections) == 0 {
		d.sections = []*section{{name: "", header: -1}}
	}
}

func (s *section) add(key, value string, lineno int) {
	if st := s.setting(key); st != nil {
		st.value = st.value.appendItem(value)
		st.lines = append(st.lines, lineno)
		return
	}
	s.settings = append(s.settings, &setting{
		key:   key,
		value: String(value),
		lines: []int{lineno},
	})
}

func (s *section) setting(key string) *setting {
	for _, st := range s.settings {
		if st.key == key {
			return st
		}
	}
	return nil
}

// start returns the index of the first line after the section's header.
func (s *section) start() int {
	return s.header + 1
}

// section returns the first section with the given name or nil.
func (d *Document) section(name string) *section {
	if d == nil {
		return nil
	}
	for _, s := range d.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// SectionNames returns the names of the sections in the order they appear.
// The first name is always the empty string, which identifies the global
// section: the settings that appear before any section header. A section
// name that appears in more than one header is listed once per header.
func (d *Document) SectionNames() []string {
	if d == nil || len(d.sections) == 0 {
		return []string{""}
	}
	names := make([]string, 0, len(d.sections))
	for _, s := range d.sections {
		names = append(names, s.name)
	}
	return names
}

// HasSection reports whether the document has a section with the given name.
// The global section always exists.
func (d *Document) HasSection(name string) bool {
	return name == "" || d.section(name) != nil
}

// Settings returns a copy of the settings in the first section with the given
// name. Settings("") returns the global section. If there is no such section,
// Settings returns nil.
func (d *Document) Settings(name string) map[string]Value {
	s := d.section(name)
	if s == nil {
		if name == "" {
			return map[string]Value{}
		}
		return nil
	}
	m := make(map[string]Value, len(s.settings))
	for _, st := range s.settings {
		m[st.key] = st.value.clone()
	}
	return m
}

// Get returns the value of the setting with the given key in the first section
// with the given name. Passing an empty section name searches the global
// section. ok is false if the section or the setting does not exist; a setting
// with nothing after its equals sign has a present, empty value.
func (d *Document) Get(sectionName, key string) (_ Value, ok bool) {
	s := d.section(sectionName)
	if s == nil {
		return Value{}, false
	}
	st := s.setting(key)
	if st == nil {
		return Value{}, false
	}
	return st.value.clone(), true
}

// Lines returns the text of the document's lines in order, without line
// terminators.
func (d *Document) Lines() []string {
	if d == nil {
		return nil
	}
	lines := make([]string, 0, len(d.lines))
	for _, ln := range d.lines {
		lines = append(lines, ln.Text)
	}
	return lines
}

// MarshalText serializes the document. Lines that have not been modified are
// written exactly as they were parsed, including comments and whitespace.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil || len(d.lines) == 0 {
		return nil, nil
	}
	eol := "\n"
	if d.crlf {
		eol = "\r\n"
	}
	var buf []byte
	for i, ln := range d.lines {
		buf = append(buf, ln.Text...)
		if i < len(d.lines)-1 || !d.noFinalNewline {
			buf = append(buf, eol...)
		}
	}
	return buf, nil
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	text, err := d.MarshalText()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(text)
	return int64(n), err
}

// UnmarshalText parses the INI data, replacing the contents of d.
func (d *Document) UnmarshalText(data []byte) error {
	*d = *parseText(string(data))
	return nil
}

// IsValidSection reports whether a string can be written as a section name.
// The empty string names the global section.
func IsValidSection(name string) bool {
	return !strings.ContainsAny(name, "\r\n")
}

// IsValidKey reports whether a string can be written as a setting key such
// that the written line is read back as a setting with the same key.
func IsValidKey(key string) bool {
	if key == "" || strings.TrimSpace(key) != key {
		return false
	}
	switch key[0] {
	case '#', ';', '[':
		return false
	}
	return !strings.ContainsAny(key, "=\r\n")
}

// IsValidValue reports whether a string can be written as a setting value
// such that the written line is read back with the same value. Values may
// not span lines or have leading or trailing whitespace.
func IsValidValue(value string) bool {
	return strings.TrimSpace(value) == value && !strings.ContainsAny(value, "\r\n")
}
