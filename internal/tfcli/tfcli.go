// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package tfcli wraps the Terraform-compatible CLI that statemover
// drives. The orchestrator only ever talks to the external tool through
// the Tool interface defined here, so tests can substitute a fake and
// exercise the full migration state machine without a real binary.
package tfcli

import (
	"context"

	version "github.com/hashicorp/go-version"
)

// Tool is the capability interface over the underlying
// infrastructure-state tool. Every operation is blocking and either
// succeeds or returns an error; the tool itself owns retries,
// prompting, and backend access.
type Tool interface {
	// Init prepares the working directory dir for the other
	// operations. It is idempotent. The raw textual output is
	// returned because callers inspect it for backend signals.
	Init(ctx context.Context, dir string, opts InitOptions) (string, error)

	// Plan produces a speculative plan for dir and saves it to
	// planFile, without mutating any state.
	Plan(ctx context.Context, dir string, planFile string) error

	// ShowPlan renders a previously saved plan file as the tool's
	// JSON plan representation.
	ShowPlan(ctx context.Context, dir string, planFile string) ([]byte, error)

	// StatePull returns the current state content for dir as the
	// tool serializes it.
	StatePull(ctx context.Context, dir string) ([]byte, error)

	// StateMove relocates the state entry at sourceAddr to destAddr.
	// With opts.StateOut set, the updated destination state is
	// written to that file instead of back to dir's own state.
	StateMove(ctx context.Context, dir string, sourceAddr, destAddr string, opts MoveOptions) error

	// Version reports the tool's own version number.
	Version(ctx context.Context) (*version.Version, error)
}

// InitOptions are the flags statemover passes through to the tool's
// init command.
type InitOptions struct {
	// Reconfigure disregards any existing backend configuration.
	Reconfigure bool

	// ForceCopy suppresses prompts and copies existing state into
	// the newly configured backend.
	ForceCopy bool
}

// MoveOptions are the flags statemover passes through to the tool's
// state mv command.
type MoveOptions struct {
	// StateOut is the path of the file the post-move destination
	// state is written to. Empty means the tool's default.
	StateOut string
}

// InitSuccessRemoteBackend is the fragment of init output that
// indicates the tool finished configuring a remote backend. The
// backend reconciler keys off this to decide whether a transient
// local state file needs removing.
const InitSuccessRemoteBackend = "Successfully configured the backend"
