// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/posener/complete"

	"github.com/rafagsiqueira/statemover/internal/command/arguments"
	"github.com/rafagsiqueira/statemover/internal/migrate"
)

// ApplyCommand performs the migration: it moves every state entry the
// source plan wants to delete into the destination's state.
type ApplyCommand struct {
	Meta
}

func (c *ApplyCommand) Run(rawArgs []string) int {
	args, err := arguments.ParseApply(rawArgs)
	if err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error(c.Help())
		return 1
	}
	view := c.view(args.Stores)

	if !args.AutoApprove {
		if args.ViewType == arguments.ViewJSON {
			view.Error(fmt.Errorf("the -json option requires -auto-approve"))
			return 1
		}
		v, err := c.Ui.Ask(fmt.Sprintf(
			"Migrate state entries from %q to %q?\n  Only 'yes' will be accepted to approve.", args.SourcePath, args.DestinationPath))
		if err != nil {
			view.Error(err)
			return 1
		}
		if v != "yes" {
			c.Ui.Output("Migration cancelled.")
			return 1
		}
	}

	cfg := migrate.Config{
		Mode:            migrate.ModeApply,
		SourcePath:      args.SourcePath,
		DestinationPath: args.DestinationPath,
		PurgeBackups:    args.Purge,
	}
	runner := migrate.NewRunner(c.tool(args.ToolCommand), c.fs(), cfg)

	ctx, cancel := c.commandContext()
	defer cancel()

	run, err := runner.Run(ctx)
	if err != nil {
		view.Results(run.Results)
		view.Failure(run.FailedDuring, err)
		return 1
	}

	if len(run.MoveSet) == 0 {
		view.NothingToMigrate()
		return 0
	}

	view.Results(run.Results)
	view.ApplySuccess(run.MovedCount, run.Destination.Backend)
	return 0
}

func (c *ApplyCommand) Help() string {
	helpText := `
Usage: statemover apply [options] SOURCE DESTINATION

  Moves the state entries that SOURCE's plan wants to delete into
  DESTINATION's state, assuming their declarations were re-added at
  DESTINATION.

  Both stores are backed up before anything is mutated. On failure
  nothing is rolled back automatically; use "statemover rollback".

Options:

  -auto-approve    Skip the interactive confirmation.

  -purge           Remove the run's backups after a successful
                   migration.

  -tool=NAME       Name or path of the Terraform-compatible binary to
                   drive. Defaults to $STATEMOVER_TOOL, then
                   "terraform".

  -json            Machine-readable output, one JSON object per line.
                   Requires -auto-approve.

  -no-color        Disable colored output.
`
	return strings.TrimSpace(helpText)
}

func (c *ApplyCommand) Synopsis() string {
	return "Migrate removed state entries to the destination"
}

func (c *ApplyCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictDirs("")
}

func (c *ApplyCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-auto-approve": complete.PredictNothing,
		"-purge":        complete.PredictNothing,
		"-tool":         complete.PredictAnything,
		"-json":         complete.PredictNothing,
		"-no-color":     complete.PredictNothing,
	}
}
