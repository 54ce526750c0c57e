// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package command contains the CLI commands of statemover. Each
// command parses its arguments, builds the immutable run configuration
// and hands off to the migrate orchestrator.
package command

import (
	"context"
	"log"
	"os"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/rafagsiqueira/statemover/internal/command/arguments"
	"github.com/rafagsiqueira/statemover/internal/command/views"
	"github.com/rafagsiqueira/statemover/internal/terminal"
	"github.com/rafagsiqueira/statemover/internal/tfcli"
)

// envTool names the environment variable selecting the
// Terraform-compatible binary, overridden by the -tool flag.
const envTool = "STATEMOVER_TOOL"

// defaultToolCommand is what statemover drives when neither the flag
// nor the environment selects a binary.
const defaultToolCommand = "terraform"

// Meta is the shared state carried by every command.
type Meta struct {
	// Ui handles the interactive bits, such as the apply
	// confirmation.
	Ui cli.Ui

	// Streams are the process's stdout/stderr/stdin; views render
	// through them.
	Streams *terminal.Streams

	// ShutdownCh receives a message for every interrupt the process
	// gets; see commandContext for how a run reacts to them.
	ShutdownCh <-chan struct{}

	// testingOverrides, if set, replaces the external tool with a
	// test double. Only tests set this.
	testingOverrides tfcli.Tool
}

// commandContext returns the context a run executes under. State
// operations are not safe to cancel half way through, so the first
// interrupt only warns; a second interrupt cancels the context, which
// kills any in-flight tool invocation.
func (m *Meta) commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	if m.ShutdownCh != nil {
		shutdownCh := m.ShutdownCh
		go func() {
			select {
			case <-shutdownCh:
			case <-ctx.Done():
				return
			}
			log.Printf("[WARN] command: interrupt received, waiting for the current state operation")
			m.Ui.Error(
				"Interrupt received. State operations are not cancelled mid-flight;\n" +
					"interrupt again to exit immediately, then inspect both stores and use\n" +
					"\"statemover rollback\" if they were left half-migrated.")
			select {
			case <-shutdownCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}
	return ctx, cancel
}

// tool returns the Tool the run will drive: the testing override if
// present, otherwise an Exec for the selected binary.
func (m *Meta) tool(flagValue string) tfcli.Tool {
	if m.testingOverrides != nil {
		return m.testingOverrides
	}
	command := flagValue
	if command == "" {
		command = os.Getenv(envTool)
	}
	if command == "" {
		command = defaultToolCommand
	}
	return tfcli.NewExec(command)
}

// fs returns the filesystem the run's backup and cleanup side effects
// go through.
func (m *Meta) fs() afero.Fs {
	return afero.NewOsFs()
}

// view builds the migrate view for this command's streams and
// presentation flags.
func (m *Meta) view(stores arguments.Stores) views.Migrate {
	v := views.NewView(m.Streams)
	v.Configure(stores.NoColor)
	return views.NewMigrate(stores.ViewType, v)
}
