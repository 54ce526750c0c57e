// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"errors"
	"fmt"
)

// ErrBackupAlreadyExists is returned when a backup is requested for a
// state store that already has a live backup. Creating a second backup
// never silently overwrites the first: the existing file is a recovery
// point and may be the only one.
var ErrBackupAlreadyExists = errors.New("a state backup already exists")

// ErrNoBackupFound is returned when a rollback is requested for a
// state store that has no backup to restore from.
var ErrNoBackupFound = errors.New("no state backup found")

// ValidationError indicates that a run could not start because one of
// the configured state store paths is unusable.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid state store path %q: %s", e.Path, e.Reason)
}

// PlanError indicates that the speculative plan against the source
// store could not be produced or decoded.
type PlanError struct {
	Err error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("plan failed: %s", e.Err)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// MoveError indicates that moving a single address failed. The most
// common cause is the address no longer existing in the source state,
// for example because an earlier move in the same run already
// relocated it as part of a module ancestor.
type MoveError struct {
	Address ResourceAddress
	Err     error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("failed to move %s: %s", e.Address, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// ReconcileError indicates that the destination's backend could not be
// re-synchronized after a bulk move. The moves themselves succeeded;
// the destination's working state view may be stale until the user
// re-initializes it.
type ReconcileError struct {
	Err error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("backend reconciliation failed: %s", e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}
