// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package inifile

import (
	"context"
	"os"
)

// lockFile is a no-op on platforms without flock(2). Callers must serialize
// edits to the same file themselves.
func lockFile(ctx context.Context, f *os.File, exclusive bool) (unlock func(), err error) {
	return func() {}, nil
}

func syncData(f *os.File) error {
	return f.Sync()
}
