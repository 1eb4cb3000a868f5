// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// osconfig reads and edits settings in INI configuration files, such as those
// used by OpenStack services, without disturbing comments or formatting.
//
// Usage:
//
//	osconfig [flags] sections FILE
//	osconfig [flags] get FILE SECTION [KEY]
//	osconfig [flags] set FILE SECTION KEY VALUE...
//	osconfig [flags] del FILE SECTION KEY
//
// The global section, holding settings before the first section header, is
// named by the empty string ("").
//
// get exits with status 1 if the section or key does not exist. set only
// writes the file if its content changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/yourbase/osconfig/ini"
	"github.com/yourbase/osconfig/inifile"
	"zombiezen.com/go/log"
)

// Exit codes.
const (
	exitOK      = 0
	exitAbsent  = 1
	exitUsage   = 2
	exitFailure = 3
)

const (
	programName  = "osconfig"
	usageMessage = `usage: osconfig [flags] sections FILE
       osconfig [flags] get FILE SECTION [KEY]
       osconfig [flags] set FILE SECTION KEY VALUE...
       osconfig [flags] del FILE SECTION KEY`
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	cfg    *config
	stdout io.Writer
	stderr io.Writer
}

// errAbsent is returned by get when the requested section or key is missing.
var errAbsent = errors.New("not found")

// usageError is returned for malformed command lines.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := defaultConfig()
	fset := flag.NewFlagSet(programName, flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprintln(stderr, usageMessage)
		fmt.Fprintln(stderr, "\nflags:")
		fset.PrintDefaults()
	}
	cfg.register(fset)
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	log.SetDefault(&logger{w: stderr, showDebug: cfg.debug})

	c := &command{cfg: cfg, stdout: stdout, stderr: stderr}
	var err error
	switch fset.Arg(0) {
	case "sections":
		err = c.sections(ctx, fset.Args()[1:])
	case "get":
		err = c.get(ctx, fset.Args()[1:])
	case "set":
		err = c.set(ctx, fset.Args()[1:])
	case "del":
		err = c.del(ctx, fset.Args()[1:])
	case "":
		err = usageError{"missing command"}
	default:
		err = usageError{fmt.Sprintf("unknown command %q", fset.Arg(0))}
	}
	var usageErr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "%s: %v\n%s\n", programName, err, usageMessage)
		return exitUsage
	case errors.Is(err, errAbsent):
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitAbsent
	default:
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitFailure
	}
}

func (c *command) sections(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError{"sections takes 1 argument"}
	}
	doc, err := inifile.Load(ctx, args[0], c.cfg.loadOptions())
	if err != nil {
		return err
	}
	for _, name := range doc.SectionNames() {
		fmt.Fprintln(c.stdout, name)
	}
	return nil
}

func (c *command) get(ctx context.Context, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return usageError{"get takes 2 or 3 arguments"}
	}
	doc, err := inifile.Load(ctx, args[0], c.cfg.loadOptions())
	if err != nil {
		return err
	}
	section := args[1]
	if len(args) == 2 {
		settings := doc.Settings(section)
		if settings == nil {
			return fmt.Errorf("section %q: %w", section, errAbsent)
		}
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, v := range settings[k].Strings() {
				fmt.Fprintf(c.stdout, "%s=%s\n", k, v)
			}
		}
		return nil
	}
	key := args[2]
	v, ok := doc.Get(section, key)
	if !ok {
		return fmt.Errorf("key %q in section %q: %w", key, section, errAbsent)
	}
	for _, s := range v.Strings() {
		fmt.Fprintln(c.stdout, s)
	}
	return nil
}

func (c *command) set(ctx context.Context, args []string) error {
	if len(args) < 3 || (len(args) == 3 && !c.cfg.list) {
		return usageError{"set takes a file, section, key, and at least one value"}
	}
	path, section, key, values := args[0], args[1], args[2], args[3:]
	if err := validate(section, key, values); err != nil {
		return err
	}
	v := ini.List(values...)
	if len(values) == 1 && !c.cfg.list {
		v = ini.String(values[0])
	}
	changed, err := inifile.Edit(ctx, path, c.cfg.editOptions(), func(doc *ini.Document) error {
		doc.Set(section, key, v)
		return nil
	})
	if err != nil {
		return err
	}
	log.Debugf(ctx, "Set [%s] %s = %v (changed=%t)", section, key, v, changed)
	return nil
}

func (c *command) del(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError{"del takes 3 arguments"}
	}
	path, section, key := args[0], args[1], args[2]
	if err := validate(section, key, nil); err != nil {
		return err
	}
	opts := c.cfg.editOptions()
	opts.Create = false
	changed, err := inifile.Edit(ctx, path, opts, func(doc *ini.Document) error {
		doc.Delete(section, key)
		return nil
	})
	if err != nil {
		return err
	}
	log.Debugf(ctx, "Deleted [%s] %s (changed=%t)", section, key, changed)
	return nil
}

func validate(section, key string, values []string) error {
	if !ini.IsValidSection(section) {
		return usageError{fmt.Sprintf("invalid section name %q", section)}
	}
	if !ini.IsValidKey(key) {
		return usageError{fmt.Sprintf("invalid key %q", key)}
	}
	for _, v := range values {
		if !ini.IsValidValue(v) {
			return usageError{fmt.Sprintf("invalid value %q", v)}
		}
	}
	return nil
}
