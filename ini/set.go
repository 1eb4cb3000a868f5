// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"slices"
)

// Set sets the setting with the given key in the first section with the given
// name to v. If the section name is empty, the setting is placed in the
// global section. Set will panic if IsValidSection(sectionName),
// IsValidKey(key), or IsValidValue for any of v's strings report false.
//
// Set modifies as few lines as it can:
//
//   - If the setting exists, its lines are rewritten in place. Lines that
//     already have the requested text are left alone, so setting a value to
//     its current value changes nothing. A list value with more strings than
//     the setting has lines gets new lines right after the last existing one;
//     one with fewer strings drops the lines at the end. Setting an empty
//     list removes the setting.
//   - Otherwise, if the section has a commented-out line for the key (like
//     "#key=old"), that line is uncommented and given the new value.
//   - Otherwise, the setting is added after the last non-blank line of the
//     section, or in a new section at the end of the document.
//
// Rewritten and new lines follow the indentation and spacing around the
// equals sign of the line they replace or, for new lines, the section's last
// setting.
func (d *Document) Set(sectionName, key string, v Value) {
	if !IsValidSection(sectionName) {
		panic("Document.Set invalid section: " + sectionName)
	}
	if !IsValidKey(key) {
		panic("Document.Set invalid key: " + key)
	}
	for _, s := range v.items {
		if !IsValidValue(s) {
			panic("Document.Set invalid value: " + s)
		}
	}
	d.init()
	s := d.section(sectionName)
	if s == nil {
		if v.Len() > 0 {
			d.appendSection(sectionName, key, v)
		}
		return
	}
	if st := s.setting(key); st != nil {
		d.update(s, st, v)
		return
	}
	if v.Len() == 0 {
		return
	}
	if i := d.findCommented(s, key); i != -1 {
		ln := d.lines[i]
		d.lines[i] = Classify(formatSetting(ln.indent, ln.Key, ln.sep, v.items[0]))
		st := &setting{key: key, value: String(v.items[0]), lines: []int{i}}
		s.settings = append(s.settings, st)
		d.update(s, st, v)
		return
	}
	indent, sep := d.style(s)
	at := d.lastNonBlank(s) + 1
	texts := make([]string, 0, v.Len())
	for _, item := range v.items {
		texts = append(texts, formatSetting(indent, key, sep, item))
	}
	d.insert(s, at, texts)
	st := &setting{key: key, value: v.clone()}
	for i := range texts {
		st.lines = append(st.lines, at+i)
	}
	s.settings = append(s.settings, st)
}

// Delete removes the setting with the given key from the first section with
// the given name, along with all of its lines. Sections are never removed.
// Delete will panic if IsValidSection(sectionName) or IsValidKey(key) report
// false.
func (d *Document) Delete(sectionName, key string) {
	if !IsValidSection(sectionName) {
		panic("Document.Delete invalid section: " + sectionName)
	}
	if !IsValidKey(key) {
		panic("Document.Delete invalid key: " + key)
	}
	s := d.section(sectionName)
	if s == nil {
		return
	}
	if st := s.setting(key); st != nil {
		d.update(s, st, Value{})
	}
}

// update makes st's lines match v. The section must contain st.
func (d *Document) update(s *section, st *setting, v Value) {
	n := min(len(st.lines), v.Len())
	for i := 0; i < n; i++ {
		d.rewrite(st.lines[i], v.items[i])
	}
	switch {
	case v.Len() > len(st.lines):
		last := d.lines[st.lines[len(st.lines)-1]]
		at := st.lines[len(st.lines)-1] + 1
		texts := make([]string, 0, v.Len()-n)
		for _, item := range v.items[n:] {
			texts = append(texts, formatSetting(last.indent, st.key, last.sep, item))
		}
		d.insert(s, at, texts)
		for i := range texts {
			st.lines = append(st.lines, at+i)
		}
	case v.Len() < len(st.lines):
		for len(st.lines) > v.Len() {
			d.remove(st.lines[len(st.lines)-1])
		}
	}
	if v.Len() == 0 {
		s.settings = slices.DeleteFunc(s.settings, func(other *setting) bool {
			return other == st
		})
		return
	}
	st.value = v.clone()
}

// rewrite changes the value on a setting line, keeping its key, indentation,
// and separator. The line is left untouched if its value would not change.
func (d *Document) rewrite(i int, value string) {
	ln := d.lines[i]
	if ln.Value == value {
		return
	}
	d.lines[i] = Classify(formatSetting(ln.indent, ln.Key, ln.sep, value))
}

// findCommented returns the index of the first commented-out line for key in
// s or -1 if there is none.
func (d *Document) findCommented(s *section, key string) int {
	for i := s.start(); i < s.end; i++ {
		if ln := &d.lines[i]; ln.Kind == Comment && ln.commented && ln.Key == key {
			return i
		}
	}
	return -1
}

// lastNonBlank returns the index of the last non-blank line in s, which may be
// its header, or s.start()-1 if there is no such line.
func (d *Document) lastNonBlank(s *section) int {
	for i := s.end - 1; i >= s.start(); i-- {
		if d.lines[i].Kind != Blank {
			return i
		}
	}
	return s.start() - 1
}

// style returns the indentation and separator of the last setting line in s.
func (d *Document) style(s *section) (indent, sep string) {
	last := -1
	for _, st := range s.settings {
		if i := st.lines[len(st.lines)-1]; i > last {
			last = i
		}
	}
	if last == -1 {
		return "", "="
	}
	return d.lines[last].indent, d.lines[last].sep
}

func (d *Document) appendSection(name, key string, v Value) {
	s := &section{name: name, header: len(d.lines)}
	d.lines = append(d.lines, Classify("["+name+"]"))
	st := &setting{key: key, value: v.clone()}
	for _, item := range v.items {
		st.lines = append(st.lines, len(d.lines))
		d.lines = append(d.lines, Classify(formatSetting("", key, "=", item)))
	}
	s.end = len(d.lines)
	s.settings = append(s.settings, st)
	d.sections = append(d.sections, s)
}

// insert adds lines before index at, growing s to contain them. at must be in
// the range [s.start(), s.end].
func (d *Document) insert(s *section, at int, texts []string) {
	n := len(texts)
	if n == 0 {
		return
	}
	lines := make([]Line, 0, n)
	for _, text := range texts {
		lines = append(lines, Classify(text))
	}
	d.lines = slices.Insert(d.lines, at, lines...)
	for _, t := range d.sections {
		if t.header >= at {
			t.header += n
		}
		if t.end > at || t == s {
			t.end += n
		}
		for _, st := range t.settings {
			for j := range st.lines {
				if st.lines[j] >= at {
					st.lines[j] += n
				}
			}
		}
	}
}

// remove deletes the line at index i, which must not be a header.
func (d *Document) remove(i int) {
	d.lines = slices.Delete(d.lines, i, i+1)
	for _, t := range d.sections {
		if t.header > i {
			t.header--
		}
		if t.end > i {
			t.end--
		}
		for _, st := range t.settings {
			st.lines = slices.DeleteFunc(st.lines, func(j int) bool { return j == i })
			for j := range st.lines {
				if st.lines[j] > i {
					st.lines[j]--
				}
			}
		}
	}
}
