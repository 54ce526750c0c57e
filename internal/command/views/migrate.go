// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"fmt"

	"github.com/mitchellh/go-wordwrap"

	"github.com/rafagsiqueira/statemover/internal/command/arguments"
	"github.com/rafagsiqueira/statemover/internal/command/views/json"
	"github.com/rafagsiqueira/statemover/internal/logging"
	"github.com/rafagsiqueira/statemover/internal/migrate"
)

// Migrate renders the progress and outcome of a migration run.
type Migrate interface {
	// Results renders the per-address outcomes of the Moving stage.
	Results(results []migrate.MoveResult)

	// NothingToMigrate renders the success-with-warning outcome of
	// a run whose plan diff was empty.
	NothingToMigrate()

	// ApplySuccess and PlanSuccess render the terminal message of a
	// successful run of the respective mode. backend is the
	// destination's backend kind as discovered during reconciliation.
	ApplySuccess(moved int, backend migrate.BackendKind)
	PlanSuccess(moved int)

	// PurgeSuccess and RollbackSuccess render the terminal message
	// of the backup-only operations.
	PurgeSuccess()
	RollbackSuccess()

	// Failure renders an aborted run: the stage it failed in, the
	// error, and the recovery hint.
	Failure(stage migrate.RunState, err error)

	// Error renders an error that occurred before any run started,
	// such as an argument problem.
	Error(err error)
}

// NewMigrate returns the Migrate view for the requested format.
func NewMigrate(vt arguments.ViewType, view *View) Migrate {
	switch vt {
	case arguments.ViewJSON:
		return &migrateJSON{view: NewJSONView(view)}
	case arguments.ViewHuman:
		return &migrateHuman{view: view}
	default:
		panic(fmt.Sprintf("unknown view type %v", vt))
	}
}

type migrateHuman struct {
	view *View
}

var _ Migrate = (*migrateHuman)(nil)

func (v *migrateHuman) Results(results []migrate.MoveResult) {
	for _, res := range results {
		switch res.Outcome {
		case migrate.OutcomeMoved:
			v.view.streams.Println(v.view.colorize.Color(fmt.Sprintf("[green]moved:[reset] %s", res.Address)))
		case migrate.OutcomeWouldMove:
			v.view.streams.Println(v.view.colorize.Color(fmt.Sprintf("[yellow]would move:[reset] %s", res.Address)))
		case migrate.OutcomeFailed:
			v.view.streams.Eprintln(v.view.colorize.Color(fmt.Sprintf("[red]failed:[reset] %s", res.Address)))
		}
	}
}

func (v *migrateHuman) NothingToMigrate() {
	v.view.streams.Println(v.view.colorize.Color(wrap(
		"[yellow]Nothing to migrate.[reset] The source plan contains no removals. " +
			"This usually means the moved declarations were not yet removed from the source configuration.")))
}

func (v *migrateHuman) ApplySuccess(moved int, backend migrate.BackendKind) {
	v.view.streams.Println(v.view.colorize.Color(fmt.Sprintf(
		"\n[bold][green]Migration complete![reset] Moved %d %s.", moved, noun(moved))))
	if backend != migrate.BackendUnknown {
		v.view.streams.Println(fmt.Sprintf(
			"The destination's %s backend was reconciled with the migrated state.", backend))
	}
}

func (v *migrateHuman) PlanSuccess(moved int) {
	v.view.streams.Println(v.view.colorize.Color(fmt.Sprintf(
		"\n[bold]Dry run complete.[reset] %d %s would be moved. Run \"statemover apply\" to perform the migration.",
		moved, noun(moved))))
}

func (v *migrateHuman) PurgeSuccess() {
	v.view.streams.Println("Backups purged.")
}

func (v *migrateHuman) RollbackSuccess() {
	v.view.streams.Println(v.view.colorize.Color(
		"[green]Both state stores were restored from their backups.[reset] The backups remain in place."))
}

func (v *migrateHuman) Failure(stage migrate.RunState, err error) {
	v.view.streams.Eprintln(v.view.colorize.Color(fmt.Sprintf(
		"[red][bold]Migration failed while %s:[reset] %s", stage, err)))
	v.view.streams.Eprintln("")
	hint := "No automatic rollback was performed. Inspect both state stores, then run " +
		"\"statemover rollback SOURCE DESTINATION\" to restore the pre-run state from the backups."
	if !logging.IsDebugOrHigher() {
		hint += " Re-run with STATEMOVER_LOG=debug for more detail."
	}
	v.view.streams.Eprintln(wrap(hint))
}

func (v *migrateHuman) Error(err error) {
	v.view.streams.Eprintln(v.view.colorize.Color(fmt.Sprintf("[red]Error:[reset] %s", err)))
}

type migrateJSON struct {
	view *JSONView
}

var _ Migrate = (*migrateJSON)(nil)

func (v *migrateJSON) Results(results []migrate.MoveResult) {
	for _, res := range results {
		v.view.Move(json.NewMove(res))
	}
}

func (v *migrateJSON) NothingToMigrate() {
	v.view.Log("Nothing to migrate: the source plan contains no removals")
}

func (v *migrateJSON) ApplySuccess(moved int, backend migrate.BackendKind) {
	v.view.Summary(json.Summary{Operation: "apply", Moved: moved, Backend: string(backend)})
}

func (v *migrateJSON) PlanSuccess(moved int) {
	v.view.Summary(json.Summary{Operation: "plan", Moved: moved, DryRun: true})
}

func (v *migrateJSON) PurgeSuccess() {
	v.view.Summary(json.Summary{Operation: "purge"})
}

func (v *migrateJSON) RollbackSuccess() {
	v.view.Summary(json.Summary{Operation: "rollback"})
}

func (v *migrateJSON) Failure(stage migrate.RunState, err error) {
	v.view.Error(fmt.Sprintf("migration failed while %s: %s", stage, err))
}

func (v *migrateJSON) Error(err error) {
	v.view.Error(err.Error())
}

func noun(n int) string {
	if n == 1 {
		return "address"
	}
	return "addresses"
}

func wrap(s string) string {
	return wordwrap.WrapString(s, 78)
}
