// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/yourbase/osconfig/inifile"
)

// Environment variables that provide flag defaults.
const (
	lockTimeoutEnv = "OSCONFIG_LOCK_TIMEOUT"
	debugEnv       = "OSCONFIG_DEBUG"
)

type config struct {
	create      bool
	list        bool
	debug       bool
	lockTimeout time.Duration
}

func defaultConfig() *config {
	return &config{
		debug:       envBool(debugEnv),
		lockTimeout: envDuration(lockTimeoutEnv, inifile.DefaultLockTimeout),
	}
}

func (cfg *config) register(fset *flag.FlagSet) {
	fset.BoolVar(&cfg.create, "create", cfg.create, "create FILE if it does not exist (set only)")
	fset.BoolVar(&cfg.list, "list", cfg.list, "treat the values given to set as a list, even if there is only one")
	fset.BoolVar(&cfg.debug, "v", cfg.debug, "show debug logs (default from $"+debugEnv+")")
	fset.DurationVar(&cfg.lockTimeout, "lock-timeout", cfg.lockTimeout, "how long to wait for another process editing FILE (default from $"+lockTimeoutEnv+")")
}

func (cfg *config) loadOptions() *inifile.LoadOptions {
	return &inifile.LoadOptions{LockTimeout: cfg.inifileLockTimeout()}
}

func (cfg *config) editOptions() *inifile.EditOptions {
	return &inifile.EditOptions{
		Create:      cfg.create,
		LockTimeout: cfg.inifileLockTimeout(),
	}
}

// inifileLockTimeout converts -lock-timeout to the inifile convention.
// Zero means "wait forever" on the command line.
func (cfg *config) inifileLockTimeout() time.Duration {
	if cfg.lockTimeout == 0 {
		return -1
	}
	return cfg.lockTimeout
}

// envDuration returns the value of a duration environment variable. If it is
// empty, unset, or not a valid duration, it returns the default value.
func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}

// envBool returns the value of a boolean environment variable. If it is unset
// or not one of the strings 1, t, T, TRUE, true, or True, then it returns false.
func envBool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
