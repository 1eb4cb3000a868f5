// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package inifile

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textEncoding is the encoding of a file on disk, as identified by its byte
// order mark. Files without one are read and written as-is.
type textEncoding int

const (
	plainText textEncoding = iota
	utf8BOM
	utf16LE
	utf16BE
)

func detectEncoding(prefix []byte) textEncoding {
	switch {
	case bytes.HasPrefix(prefix, []byte{0xef, 0xbb, 0xbf}):
		return utf8BOM
	case bytes.HasPrefix(prefix, []byte{0xff, 0xfe}):
		return utf16LE
	case bytes.HasPrefix(prefix, []byte{0xfe, 0xff}):
		return utf16BE
	default:
		return plainText
	}
}

// decoder returns a transformer that converts the encoding to UTF-8 and
// strips the byte order mark, or nil for plain text.
func (enc textEncoding) decoder() transform.Transformer {
	switch enc {
	case utf8BOM:
		return unicode.UTF8BOM.NewDecoder()
	case utf16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case utf16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	default:
		return nil
	}
}

// encoder returns a transformer that converts UTF-8 to the encoding and adds
// the byte order mark, or nil for plain text.
func (enc textEncoding) encoder() transform.Transformer {
	switch enc {
	case utf8BOM:
		return unicode.UTF8BOM.NewEncoder()
	case utf16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	case utf16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	default:
		return nil
	}
}

func (enc textEncoding) String() string {
	switch enc {
	case plainText:
		return "plain text"
	case utf8BOM:
		return "UTF-8 with BOM"
	case utf16LE:
		return "UTF-16LE"
	case utf16BE:
		return "UTF-16BE"
	default:
		return "unknown encoding"
	}
}
