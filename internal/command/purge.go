// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"

	"github.com/posener/complete"

	"github.com/rafagsiqueira/statemover/internal/command/arguments"
	"github.com/rafagsiqueira/statemover/internal/migrate"
)

// PurgeCommand removes the backup artifacts of both stores. It never
// touches live state and is safe to repeat.
type PurgeCommand struct {
	Meta
}

func (c *PurgeCommand) Run(rawArgs []string) int {
	args, err := arguments.ParseStores("purge", rawArgs)
	if err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error(c.Help())
		return 1
	}
	view := c.view(*args)

	cfg := migrate.Config{
		Mode:            migrate.ModePurge,
		SourcePath:      args.SourcePath,
		DestinationPath: args.DestinationPath,
	}
	runner := migrate.NewRunner(c.tool(args.ToolCommand), c.fs(), cfg)

	ctx, cancel := c.commandContext()
	defer cancel()

	run, err := runner.Run(ctx)
	if err != nil {
		view.Failure(run.FailedDuring, err)
		return 1
	}

	view.PurgeSuccess()
	return 0
}

func (c *PurgeCommand) Help() string {
	helpText := `
Usage: statemover purge [options] SOURCE DESTINATION

  Removes the state backups that previous statemover runs left in
  SOURCE and DESTINATION. Live state is never touched. Purging when no
  backups exist is a no-op.

Options:

  -json            Machine-readable output, one JSON object per line.

  -no-color        Disable colored output.
`
	return strings.TrimSpace(helpText)
}

func (c *PurgeCommand) Synopsis() string {
	return "Remove the state backups of both stores"
}

func (c *PurgeCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictDirs("")
}

func (c *PurgeCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-json":     complete.PredictNothing,
		"-no-color": complete.PredictNothing,
	}
}
