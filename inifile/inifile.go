// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package inifile loads and saves INI documents on disk. It is responsible for
// everything package ini leaves to its caller: reading the file, serializing
// concurrent editors, keeping the file's text encoding, and writing the result
// back only when it changed.
package inifile

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yourbase/osconfig/ini"
	"golang.org/x/text/transform"
	"zombiezen.com/go/log"
)

// DefaultLockTimeout is the lock timeout Load and Edit use when their options
// do not specify one.
const DefaultLockTimeout = 10 * time.Second

// LoadOptions holds optional parameters for Load.
type LoadOptions struct {
	// LockTimeout is the longest Load waits for an editor to release the
	// file. If zero, DefaultLockTimeout is used. If negative, Load waits
	// until the Context is Done.
	LockTimeout time.Duration
}

// Load reads the INI file at the given path. It holds a shared lock on the
// file while reading, so it never observes a half-written edit. Nil options
// are treated identically as passing the zero value. Errors opening or
// reading the file wrap ini.ErrSourceUnavailable.
func Load(ctx context.Context, path string, opts *LoadOptions) (*ini.Document, error) {
	if opts == nil {
		opts = new(LoadOptions)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load ini file %s: %w: %w", path, ini.ErrSourceUnavailable, err)
	}
	defer f.Close() // Close errors irrelevant for a read-only file.
	lockCtx, cancel := withLockTimeout(ctx, opts.LockTimeout)
	defer cancel()
	unlock, err := lockFile(lockCtx, f, false)
	if err != nil {
		return nil, fmt.Errorf("load ini file %s: %w", path, err)
	}
	defer unlock()
	doc, _, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("load ini file %s: %w", path, err)
	}
	return doc, nil
}

// EditOptions holds optional parameters for Edit.
type EditOptions struct {
	// Create allows Edit to create the file if it does not exist.
	// The new file starts out empty.
	Create bool

	// Perm is the permission bits used when Create makes a new file.
	// If zero, 0644 is used. Existing files keep their permissions.
	Perm os.FileMode

	// LockTimeout is the longest Edit waits for another process to release
	// the file. If zero, DefaultLockTimeout is used. If negative, Edit waits
	// until the Context is Done.
	LockTimeout time.Duration
}

// Edit performs a read-modify-write cycle on the INI file at the given path.
// Nil options are treated identically as passing the zero value.
//
// Edit takes an exclusive lock on the file, parses it, and calls modify with
// the document. If modify returns an error, Edit returns it without writing.
// Otherwise, if the document's text differs from what was read, Edit writes
// it back in place, so the file keeps its owner, permissions, and text
// encoding. changed reports whether the file was written.
func Edit(ctx context.Context, path string, opts *EditOptions, modify func(*ini.Document) error) (changed bool, err error) {
	if opts == nil {
		opts = new(EditOptions)
	}
	flag := os.O_RDWR
	if opts.Create {
		flag |= os.O_CREATE
	}
	perm := opts.Perm
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return false, fmt.Errorf("edit ini file %s: %w: %w", path, ini.ErrSourceUnavailable, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("edit ini file %s: %w", path, closeErr)
		}
	}()

	lockCtx, cancel := withLockTimeout(ctx, opts.LockTimeout)
	defer cancel()
	unlock, err := lockFile(lockCtx, f, true)
	if err != nil {
		return false, fmt.Errorf("edit ini file %s: %w", path, err)
	}
	defer unlock()

	doc, enc, err := read(f)
	if err != nil {
		return false, fmt.Errorf("edit ini file %s: %w", path, err)
	}
	orig, err := doc.MarshalText()
	if err != nil {
		return false, fmt.Errorf("edit ini file %s: %w", path, err)
	}
	if err := modify(doc); err != nil {
		return false, err
	}
	text, err := doc.MarshalText()
	if err != nil {
		return false, fmt.Errorf("edit ini file %s: %w", path, err)
	}
	if bytes.Equal(orig, text) {
		log.Debugf(ctx, "%s already up to date", path)
		return false, nil
	}
	if err := write(f, enc, text); err != nil {
		return false, fmt.Errorf("edit ini file %s: %w", path, err)
	}
	log.Debugf(ctx, "Updated %s", path)
	return true, nil
}

// withLockTimeout bounds the time spent waiting for a file lock. A zero
// timeout means DefaultLockTimeout and a negative one means no bound.
func withLockTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	switch {
	case timeout == 0:
		return context.WithTimeout(ctx, DefaultLockTimeout)
	case timeout > 0:
		return context.WithTimeout(ctx, timeout)
	default:
		return ctx, func() {}
	}
}

// read parses the file from its current offset, decoding it according to any
// byte order mark it starts with.
func read(f *os.File) (*ini.Document, textEncoding, error) {
	br := bufio.NewReader(f)
	// Peek returns fewer bytes for short files, which detectEncoding handles.
	prefix, _ := br.Peek(3)
	enc := detectEncoding(prefix)
	var r io.Reader = br
	if dec := enc.decoder(); dec != nil {
		r = transform.NewReader(br, dec)
	}
	doc, err := ini.Parse(r)
	if err != nil {
		return nil, enc, err
	}
	return doc, enc, nil
}

// write replaces the file's contents with text encoded with enc and flushes
// it to stable storage.
func write(f *os.File, enc textEncoding, text []byte) error {
	if e := enc.encoder(); e != nil {
		var err error
		text, _, err = transform.Bytes(e, text)
		if err != nil {
			return fmt.Errorf("encode as %v: %w", enc, err)
		}
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt(text, 0); err != nil {
		return err
	}
	return syncData(f)
}
