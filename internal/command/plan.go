// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"

	"github.com/posener/complete"

	"github.com/rafagsiqueira/statemover/internal/command/arguments"
	"github.com/rafagsiqueira/statemover/internal/migrate"
)

// PlanCommand simulates the migration: it reports which addresses
// would move without mutating either store, and always cleans up the
// backups it created.
type PlanCommand struct {
	Meta
}

func (c *PlanCommand) Run(rawArgs []string) int {
	args, err := arguments.ParseStores("plan", rawArgs)
	if err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error(c.Help())
		return 1
	}
	view := c.view(*args)

	cfg := migrate.Config{
		Mode:            migrate.ModePlan,
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

	if len(run.MoveSet) == 0 {
		view.NothingToMigrate()
		return 0
	}

	view.Results(run.Results)
	view.PlanSuccess(run.MovedCount)
	return 0
}

func (c *PlanCommand) Help() string {
	helpText := `
Usage: statemover plan [options] SOURCE DESTINATION

  Shows which state entries a migration from SOURCE to DESTINATION
  would move, without mutating anything. The backups created for the
  dry run are removed afterwards.

Options:

  -tool=NAME       Name or path of the Terraform-compatible binary to
                   drive. Defaults to $STATEMOVER_TOOL, then
                   "terraform".

  -json            Machine-readable output, one JSON object per line.

  -no-color        Disable colored output.
`
	return strings.TrimSpace(helpText)
}

func (c *PlanCommand) Synopsis() string {
	return "Show the moves a migration would perform"
}

func (c *PlanCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictDirs("")
}

func (c *PlanCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-tool":     complete.PredictAnything,
		"-json":     complete.PredictNothing,
		"-no-color": complete.PredictNothing,
	}
}
