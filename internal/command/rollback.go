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

// RollbackCommand restores both stores' live state from the backups a
// previous run created. The backups stay in place afterwards.
type RollbackCommand struct {
	Meta
}

func (c *RollbackCommand) Run(rawArgs []string) int {
	parsed, err := arguments.ParseRollback(rawArgs)
	if err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error(c.Help())
		return 1
	}
	view := c.view(parsed.Stores)

	if !parsed.AutoApprove {
		if parsed.ViewType == arguments.ViewJSON {
			view.Error(fmt.Errorf("the -json option requires -auto-approve"))
			return 1
		}
		v, err := c.Ui.Ask(fmt.Sprintf(
			"Restore the state of %q and %q from their backups?\n  Only 'yes' will be accepted to approve.",
			parsed.SourcePath, parsed.DestinationPath))
		if err != nil {
			view.Error(err)
			return 1
		}
		if v != "yes" {
			c.Ui.Output("Rollback cancelled.")
			return 1
		}
	}

	cfg := migrate.Config{
		Mode:            migrate.ModeRollback,
		SourcePath:      parsed.SourcePath,
		DestinationPath: parsed.DestinationPath,
	}
	runner := migrate.NewRunner(c.tool(parsed.ToolCommand), c.fs(), cfg)

	ctx, cancel := c.commandContext()
	defer cancel()

	run, err := runner.Run(ctx)
	if err != nil {
		view.Failure(run.FailedDuring, err)
		return 1
	}

	view.RollbackSuccess()
	return 0
}

func (c *RollbackCommand) Help() string {
	helpText := `
Usage: statemover rollback [options] SOURCE DESTINATION

  Restores the live state of both SOURCE and DESTINATION from the
  backups a previous statemover run created. The backups are left in
  place; use "statemover purge" to remove them once the stores look
  right.

  Fails when either store has no backup.

Options:

  -auto-approve    Skip the interactive confirmation.

  -json            Machine-readable output, one JSON object per line.
                   Requires -auto-approve.

  -no-color        Disable colored output.
`
	return strings.TrimSpace(helpText)
}

func (c *RollbackCommand) Synopsis() string {
	return "Restore both stores from their backups"
}

func (c *RollbackCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictDirs("")
}

func (c *RollbackCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-auto-approve": complete.PredictNothing,
		"-json":         complete.PredictNothing,
		"-no-color":     complete.PredictNothing,
	}
}
