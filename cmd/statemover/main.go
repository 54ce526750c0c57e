// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// statemover migrates state entries between the working directories of
// a Terraform-compatible tool, based on which declarations were moved
// from the source configuration to the destination configuration.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/mitchellh/cli"

	"github.com/rafagsiqueira/statemover/internal/command"
	"github.com/rafagsiqueira/statemover/internal/logging"
	"github.com/rafagsiqueira/statemover/internal/terminal"
	"github.com/rafagsiqueira/statemover/internal/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	logging.Init()

	streams, err := terminal.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure the terminal: %s\n", err)
		return 1
	}

	ui := &cli.BasicUi{
		Writer:      streams.Stdout.File,
		ErrorWriter: streams.Stderr.File,
		Reader:      streams.Stdin.File,
	}

	meta := command.Meta{
		Ui:         ui,
		Streams:    streams,
		ShutdownCh: makeShutdownCh(),
	}

	c := cli.NewCLI("statemover", version.String())
	c.Args = os.Args[1:]
	c.HelpWriter = streams.Stdout.File
	c.ErrorWriter = streams.Stderr.File
	c.Commands = map[string]cli.CommandFactory{
		"apply": func() (cli.Command, error) {
			return &command.ApplyCommand{Meta: meta}, nil
		},
		"plan": func() (cli.Command, error) {
			return &command.PlanCommand{Meta: meta}, nil
		},
		"purge": func() (cli.Command, error) {
			return &command.PurgeCommand{Meta: meta}, nil
		},
		"rollback": func() (cli.Command, error) {
			return &command.RollbackCommand{Meta: meta}, nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err)
		return 1
	}
	return exitStatus
}

// makeShutdownCh creates an interrupt listener and returns a channel.
// A message will be sent on the channel for every interrupt received.
func makeShutdownCh() <-chan struct{} {
	resultCh := make(chan struct{})

	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, interruptSignals...)
	go func() {
		for range signalCh {
			resultCh <- struct{}{}
		}
	}()

	return resultCh
}
