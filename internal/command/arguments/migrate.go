// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package arguments parses the command-line arguments of the
// statemover commands into plain option structs, keeping flag handling
// out of the command implementations.
package arguments

import (
	"flag"
	"fmt"
	"io"
)

// Stores holds the options every statemover command shares: the two
// state store roots and the presentation flags.
type Stores struct {
	// SourcePath and DestinationPath are the two positional
	// arguments, in order.
	SourcePath      string
	DestinationPath string

	// NoColor disables colored output.
	NoColor bool

	// ToolCommand is the name or path of the Terraform-compatible
	// binary to drive. Empty means the command's default.
	ToolCommand string

	// ViewType specifies which output format to use: ViewHuman
	// or, with the -json flag, ViewJSON.
	ViewType ViewType

	// json is the raw -json flag; parsing folds it into ViewType.
	json bool
}

// Apply holds the options of the apply command.
type Apply struct {
	Stores

	// AutoApprove skips the interactive confirmation.
	AutoApprove bool

	// Purge removes the run's backups after a successful migration.
	Purge bool
}

// Rollback holds the options of the rollback command.
type Rollback struct {
	Stores

	// AutoApprove skips the interactive confirmation.
	AutoApprove bool
}

// ParseStores parses the shared argument set for the given command
// name.
func ParseStores(name string, args []string) (*Stores, error) {
	var stores Stores
	fs := defaultFlagSet(name)
	fs.BoolVar(&stores.NoColor, "no-color", false, "no-color")
	fs.StringVar(&stores.ToolCommand, "tool", "", "tool")
	fs.BoolVar(&stores.json, "json", false, "json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := stores.takePositional(fs.Args()); err != nil {
		return nil, err
	}
	stores.resolveView()
	return &stores, nil
}

// ParseApply parses the apply command's arguments.
func ParseApply(args []string) (*Apply, error) {
	var apply Apply
	fs := defaultFlagSet("apply")
	fs.BoolVar(&apply.NoColor, "no-color", false, "no-color")
	fs.StringVar(&apply.ToolCommand, "tool", "", "tool")
	fs.BoolVar(&apply.AutoApprove, "auto-approve", false, "auto-approve")
	fs.BoolVar(&apply.Purge, "purge", false, "purge")
	fs.BoolVar(&apply.json, "json", false, "json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := apply.takePositional(fs.Args()); err != nil {
		return nil, err
	}
	apply.resolveView()
	return &apply, nil
}

// ParseRollback parses the rollback command's arguments.
func ParseRollback(args []string) (*Rollback, error) {
	var rollback Rollback
	fs := defaultFlagSet("rollback")
	fs.BoolVar(&rollback.NoColor, "no-color", false, "no-color")
	fs.StringVar(&rollback.ToolCommand, "tool", "", "tool")
	fs.BoolVar(&rollback.AutoApprove, "auto-approve", false, "auto-approve")
	fs.BoolVar(&rollback.json, "json", false, "json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := rollback.takePositional(fs.Args()); err != nil {
		return nil, err
	}
	rollback.resolveView()
	return &rollback, nil
}

func (s *Stores) resolveView() {
	s.ViewType = ViewHuman
	if s.json {
		s.ViewType = ViewJSON
	}
}

func (s *Stores) takePositional(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected exactly two arguments: SOURCE and DESTINATION")
	}
	s.SourcePath = args[0]
	s.DestinationPath = args[1]
	return nil
}

// defaultFlagSet creates a silent FlagSet; the commands render their
// own usage text.
func defaultFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}
