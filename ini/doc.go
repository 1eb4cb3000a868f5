// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini reads and edits INI configuration files in the style used by
OpenStack services. See https://en.wikipedia.org/wiki/INI_file.

This package is specifically designed for read-modify-write scenarios: a
Document keeps every line of the file it was parsed from and edits settings
in place, so comments, blank lines, ordering, and whitespace that the caller
did not touch are written back exactly as they were read.

Syntax

An INI file is a sequence of lines. Each line is classified on its own:

	; a comment
	# also a comment
	[section name]
	key = value

A line whose first non-whitespace character is a semicolon (';') or a hash
('#') is a comment. Inline comments are not supported.

A line whose first non-whitespace character is an opening square bracket
('[') and whose last non-whitespace character is a closing square bracket
(']') starts a section. The section name is everything between the first
'[' and the last ']', taken verbatim: names like `branch "master"`, `print$`,
or `monitor:///var/log/*.log` are all fine. An empty header ("[]") does not
start a section; it is kept like any other line that cannot be parsed.

Any other line containing an equals sign ('=') is a setting. The key is the
text before the first equals sign and the value is the text after it, both
with surrounding whitespace removed. Nothing else is interpreted: there are
no quotes, escapes, or continuation lines, so keys like `log file`, `A:`, or
`xyzzy['thing1']['thing2']` are taken as written.

Lines that fit none of these forms are kept but otherwise ignored.

Settings that appear before the first section header belong to the global
section, identified by the empty string (""). The global section always
exists, even if it is empty.

Because values are trimmed when read, Document.Set rejects values with
leading or trailing whitespace (see IsValidValue).

Repeated keys

A key that appears more than once in the same section has a list value, with
one string per occurrence in the order they appear. A key that appears once
has a single string value.

Multiple sections may have the same name. Lookups and edits use the first
one.

Commented-out settings

Configuration files shipped with services often document their defaults as
commented-out settings:

	[database]
	#connection = sqlite://

When Document.Set is asked to set a key that has no active setting in the
section but has a commented-out line like this, it uncomments that line
instead of adding a new one at the end of the section.
*/
package ini
