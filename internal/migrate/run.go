// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package migrate implements the migration orchestrator: it moves the
// state entries that were removed from one configuration's declarations
// into another configuration's state, with a backup/rollback trail, by
// driving a Terraform-compatible binary through tfcli.Tool.
package migrate

import (
	"context"
	"log"
	"os"
	"path/filepath"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rafagsiqueira/statemover/internal/tfcli"
	"github.com/rafagsiqueira/statemover/internal/tracing"
	"github.com/rafagsiqueira/statemover/internal/tracing/traceattrs"
)

// Mode selects which of the user-facing operations a run performs.
type Mode string

const (
	// ModeApply performs the migration for real.
	ModeApply Mode = "apply"

	// ModePlan simulates the migration: every stage up to and
	// including Moving runs, but nothing is mutated, and the
	// backups the run created are always purged afterwards.
	ModePlan Mode = "plan"

	// ModePurge removes backup artifacts only and never touches
	// live state.
	ModePurge Mode = "purge"

	// ModeRollback restores both stores' live state from their
	// backups, leaving the backups in place.
	ModeRollback Mode = "rollback"
)

// RunState is one position of the orchestrator's state machine.
type RunState int

const (
	StateIdle RunState = iota
	StateValidating
	StateBackingUp
	StatePlanning
	StateMoving
	StateReconciling
	StateCleaningUp
	StateRollingBack
	StateDone
	StateFailed
)

var runStateNames = map[RunState]string{
	StateIdle:        "idle",
	StateValidating:  "validating",
	StateBackingUp:   "backing up",
	StatePlanning:    "planning",
	StateMoving:      "moving",
	StateReconciling: "reconciling",
	StateCleaningUp:  "cleaning up",
	StateRollingBack: "rolling back",
	StateDone:        "done",
	StateFailed:      "failed",
}

func (s RunState) String() string {
	if name, ok := runStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Config is the immutable configuration of one run, constructed once
// during validation from the flags and arguments the user gave.
type Config struct {
	Mode Mode

	// SourcePath and DestinationPath are the state store roots as
	// given on the command line; Validating resolves them to
	// absolute paths.
	SourcePath      string
	DestinationPath string

	// PurgeBackups requests removal of the run's backups after a
	// successful migration. ModePlan always purges regardless.
	PurgeBackups bool
}

// DryRun reports whether the run simulates moves instead of performing
// them.
func (c Config) DryRun() bool {
	return c.Mode == ModePlan
}

// Run is the transient aggregate of one invocation: the resolved
// stores, the move set, the per-address outcomes, and the terminal
// status.
type Run struct {
	Mode        Mode
	Source      StateStore
	Destination StateStore

	MoveSet    []ResourceAddress
	Results    []MoveResult
	MovedCount int
	Reconciled bool

	// State is the machine's current position; after Run returns it
	// is either StateDone or StateFailed.
	State RunState

	// FailedDuring records which stage a failed run aborted in.
	// Only meaningful when State is StateFailed.
	FailedDuring RunState
}

// Runner sequences the migration components end to end with fail-fast
// abort semantics. It never rolls anything back on its own: recovery
// is the explicit, separate rollback operation, so that automatic
// "helpful" recovery cannot itself corrupt a state store mid-failure.
type Runner struct {
	tool    tfcli.Tool
	fs      afero.Fs
	backups *BackupStore
	config  Config
}

// NewRunner returns a Runner for one invocation. fs carries every
// filesystem side effect, so tests can run against an in-memory
// filesystem.
func NewRunner(tool tfcli.Tool, fs afero.Fs, config Config) *Runner {
	return &Runner{
		tool:    tool,
		fs:      fs,
		backups: NewBackupStore(fs, tool),
		config:  config,
	}
}

// Run executes the configured operation. The returned Run always
// carries whatever progress was made; when err is non-nil its State is
// StateFailed and FailedDuring names the aborting stage.
func (r *Runner) Run(ctx context.Context) (*Run, error) {
	run := &Run{Mode: r.config.Mode, State: StateIdle}

	ctx, span := tracing.Tracer().Start(ctx, "statemover.run",
		trace.WithAttributes(
			traceattrs.RunStage(run.State.String()),
			traceattrs.DryRun(r.config.DryRun()),
		))
	defer span.End()

	err := r.run(ctx, run)
	if err != nil {
		run.FailedDuring = run.State
		run.State = StateFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return run, err
	}
	run.State = StateDone
	return run, nil
}

func (r *Runner) run(ctx context.Context, run *Run) error {
	if err := r.validate(ctx, run); err != nil {
		return err
	}

	// Purge and rollback never touch live state beyond what the
	// backup store itself does; they terminate right after
	// validation.
	switch r.config.Mode {
	case ModePurge:
		return r.purge(ctx, run)
	case ModeRollback:
		return r.rollback(ctx, run)
	}

	if err := r.backUp(ctx, run); err != nil {
		return err
	}
	if err := r.plan(ctx, run); err != nil {
		return err
	}

	if len(run.MoveSet) > 0 {
		if err := r.move(ctx, run); err != nil {
			return err
		}
		if err := r.reconcile(ctx, run); err != nil {
			return err
		}
	} else {
		// Nothing to migrate is a valid terminal state, commonly
		// meaning the old declarations were never removed from
		// the source configuration. Reconciliation is skipped.
		log.Printf("[WARN] migrate: source plan contains no removals, nothing to migrate")
	}

	return r.cleanUp(ctx, run)
}

// stage transitions the machine and wraps fn in a trace span.
func (r *Runner) stage(ctx context.Context, run *Run, state RunState, fn func(context.Context) error) error {
	log.Printf("[TRACE] migrate: entering state %q", state)
	run.State = state

	ctx, span := tracing.Tracer().Start(ctx, "statemover."+state.String(),
		trace.WithAttributes(traceattrs.RunStage(state.String())))
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *Runner) validate(ctx context.Context, run *Run) error {
	return r.stage(ctx, run, StateValidating, func(ctx context.Context) error {
		source, err := r.resolveStore(r.config.SourcePath)
		if err != nil {
			return err
		}
		destination, err := r.resolveStore(r.config.DestinationPath)
		if err != nil {
			return err
		}

		if r.config.Mode == ModeApply || r.config.Mode == ModePlan {
			empty, err := afero.IsEmpty(r.fs, destination.Path)
			if err != nil {
				return err
			}
			if empty {
				return &ValidationError{Path: destination.Path, Reason: "destination contains no configuration"}
			}

			if err := tfcli.CheckVersion(ctx, r.tool); err != nil {
				return err
			}

			// Both stores must be initialized before any state
			// operation runs against them.
			if _, err := r.tool.Init(ctx, source.Path, tfcli.InitOptions{}); err != nil {
				return err
			}
			if _, err := r.tool.Init(ctx, destination.Path, tfcli.InitOptions{}); err != nil {
				return err
			}
		}

		run.Source = source
		run.Destination = destination
		return nil
	})
}

func (r *Runner) resolveStore(path string) (StateStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return StateStore{}, &ValidationError{Path: path, Reason: err.Error()}
	}
	info, err := r.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return StateStore{}, &ValidationError{Path: abs, Reason: "no such directory"}
		}
		return StateStore{}, err
	}
	if !info.IsDir() {
		return StateStore{}, &ValidationError{Path: abs, Reason: "not a directory"}
	}
	return StateStore{Path: abs}, nil
}

// backUp snapshots the source first: if that fails, the destination
// has not been touched at all.
func (r *Runner) backUp(ctx context.Context, run *Run) error {
	return r.stage(ctx, run, StateBackingUp, func(ctx context.Context) error {
		if err := r.backups.Create(ctx, run.Source); err != nil {
			return err
		}
		return r.backups.Create(ctx, run.Destination)
	})
}

func (r *Runner) plan(ctx context.Context, run *Run) error {
	return r.stage(ctx, run, StatePlanning, func(ctx context.Context) error {
		changes, err := ComputePlan(ctx, r.tool, r.fs, run.Source)
		if err != nil {
			return err
		}
		run.MoveSet = CollapseAddresses(RemovalAddresses(changes))
		log.Printf("[INFO] migrate: %d addresses to migrate", len(run.MoveSet))
		return nil
	})
}

func (r *Runner) move(ctx context.Context, run *Run) error {
	return r.stage(ctx, run, StateMoving, func(ctx context.Context) error {
		results, moved, err := ExecuteMoves(ctx, r.tool, run.Source, run.Destination, run.MoveSet, r.config.DryRun())
		run.Results = results
		run.MovedCount = moved
		trace.SpanFromContext(ctx).SetAttributes(traceattrs.MoveCount(moved))
		return err
	})
}

func (r *Runner) reconcile(ctx context.Context, run *Run) error {
	if run.MovedCount == 0 || r.config.DryRun() {
		return nil
	}
	return r.stage(ctx, run, StateReconciling, func(ctx context.Context) error {
		trace.SpanFromContext(ctx).SetAttributes(traceattrs.StateStorePath(run.Destination.Path))
		kind, err := ReconcileDestination(ctx, r.tool, r.fs, run.Destination)
		run.Destination.Backend = kind
		if err == nil {
			run.Reconciled = true
		}
		return err
	})
}

func (r *Runner) cleanUp(ctx context.Context, run *Run) error {
	if !r.config.PurgeBackups && !r.config.DryRun() {
		return nil
	}
	return r.stage(ctx, run, StateCleaningUp, func(ctx context.Context) error {
		return r.purgeBoth(run)
	})
}

func (r *Runner) purge(ctx context.Context, run *Run) error {
	return r.stage(ctx, run, StateCleaningUp, func(ctx context.Context) error {
		return r.purgeBoth(run)
	})
}

func (r *Runner) purgeBoth(run *Run) error {
	var errs *multierror.Error
	errs = multierror.Append(errs, r.backups.Purge(run.Source))
	errs = multierror.Append(errs, r.backups.Purge(run.Destination))
	return errs.ErrorOrNil()
}

// rollback restores both stores. Each store is attempted even if the
// other fails, and the failures are reported together.
func (r *Runner) rollback(ctx context.Context, run *Run) error {
	return r.stage(ctx, run, StateRollingBack, func(ctx context.Context) error {
		var errs *multierror.Error
		errs = multierror.Append(errs, r.backups.Rollback(run.Source))
		errs = multierror.Append(errs, r.backups.Rollback(run.Destination))
		return errs.ErrorOrNil()
	})
}
