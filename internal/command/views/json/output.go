// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package json defines the payload types of statemover's
// machine-readable UI, emitted one JSON object per line when a command
// runs with the -json flag.
package json

import (
	"github.com/rafagsiqueira/statemover/internal/migrate"
)

// MessageType is the value of the "type" field on every message,
// telling consumers how to decode the rest of the object.
type MessageType string

const (
	// MessageVersion is emitted once at startup, carrying the
	// statemover version and the UI schema version.
	MessageVersion MessageType = "version"

	// MessageLog is a free-form progress or warning message.
	MessageLog MessageType = "log"

	// MessageMove reports one per-address outcome of the Moving
	// stage, under the "move" key.
	MessageMove MessageType = "move"

	// MessageSummary is the terminal message of a successful run,
	// under the "summary" key.
	MessageSummary MessageType = "summary"

	// MessageError reports a failure; a failed run ends with one.
	MessageError MessageType = "error"
)

// Move is the payload of a MessageMove message.
type Move struct {
	Address string `json:"address"`
	Outcome string `json:"outcome"`
}

// NewMove builds the Move payload for one move result.
func NewMove(res migrate.MoveResult) Move {
	return Move{
		Address: string(res.Address),
		Outcome: string(res.Outcome),
	}
}

// Summary is the payload of a MessageSummary message.
type Summary struct {
	// Operation names the command that ran: "apply", "plan",
	// "purge" or "rollback".
	Operation string `json:"operation"`

	// Moved counts the addresses moved, or that would be moved when
	// DryRun is set.
	Moved int `json:"moved"`

	// Backend is the destination's backend kind after an apply
	// reconciled it, "local" or "remote".
	Backend string `json:"backend,omitempty"`

	DryRun bool `json:"dry_run,omitempty"`
}
