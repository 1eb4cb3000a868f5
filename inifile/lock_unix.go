// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package inifile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"zombiezen.com/go/log"
)

const (
	initialLockDelay = 10 * time.Millisecond
	maxLockDelay     = 500 * time.Millisecond
)

// lockFile takes an advisory flock(2) lock on f, retrying with exponential
// backoff while another process holds a conflicting lock. lockFile returns an
// error only if the lock could not be taken before the Context is Done.
func lockFile(ctx context.Context, f *os.File, exclusive bool) (unlock func(), err error) {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	fd := int(f.Fd())
	delay := initialLockDelay
	var t *time.Timer
	for {
		err := unix.Flock(fd, how|unix.LOCK_NB)
		if err == nil {
			return func() { unix.Flock(fd, unix.LOCK_UN) }, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			return nil, fmt.Errorf("lock: %w", err)
		}
		log.Debugf(ctx, "Waiting for lock on %s (will retry in %v)", f.Name(), delay)
		if t == nil {
			t = time.NewTimer(delay)
			defer t.Stop()
		} else {
			t.Reset(delay)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("lock: %w", ctx.Err())
		}
		if delay *= 2; delay > maxLockDelay {
			delay = maxLockDelay
		}
	}
}

// syncData flushes f's contents to stable storage.
func syncData(f *os.File) error {
	for {
		err := unix.Fsync(int(f.Fd()))
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}
