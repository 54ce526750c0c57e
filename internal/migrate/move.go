// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/trace"

	"github.com/rafagsiqueira/statemover/internal/tfcli"
	"github.com/rafagsiqueira/statemover/internal/tracing/traceattrs"
)

// Outcome classifies what happened to one address during the Moving
// stage.
type Outcome string

const (
	// OutcomeMoved means the entry now lives in the destination
	// state.
	OutcomeMoved Outcome = "moved"

	// OutcomeWouldMove is the dry-run counterpart of OutcomeMoved.
	OutcomeWouldMove Outcome = "would move"

	// OutcomeFailed means the move was attempted and the tool
	// rejected it. Everything after a failed move is never
	// attempted.
	OutcomeFailed Outcome = "failed"
)

// MoveResult is the per-address record of the Moving stage.
type MoveResult struct {
	Address ResourceAddress
	Outcome Outcome
}

// ExecuteMoves applies each address of the move set against the
// destination's state file. The move operates on the source's live
// state, which earlier successful moves of this same run have already
// mutated, not on the pre-run snapshot.
//
// In dry-run mode nothing is mutated; each address records a "would
// move" outcome and the returned count still increments, so that
// dry-run reports have parity with a real run.
//
// The first failing move aborts the run: the failed address is
// recorded and a MoveError returned, with the remaining addresses
// unattempted.
func ExecuteMoves(ctx context.Context, tool tfcli.Tool, source, destination StateStore, moveSet []ResourceAddress, dryRun bool) ([]MoveResult, int, error) {
	span := trace.SpanFromContext(ctx)
	results := make([]MoveResult, 0, len(moveSet))
	moved := 0

	for _, addr := range moveSet {
		if dryRun {
			log.Printf("[INFO] migrate: would move %s", addr)
			results = append(results, MoveResult{Address: addr, Outcome: OutcomeWouldMove})
			moved++
			continue
		}

		log.Printf("[INFO] migrate: moving %s", addr)
		span.AddEvent("state move", trace.WithAttributes(traceattrs.ResourceAddress(addr.String())))
		err := tool.StateMove(ctx, source.Path, addr.String(), addr.String(), tfcli.MoveOptions{
			StateOut: destination.StateFilePath(),
		})
		if err != nil {
			results = append(results, MoveResult{Address: addr, Outcome: OutcomeFailed})
			return results, moved, &MoveError{Address: addr, Err: err}
		}
		results = append(results, MoveResult{Address: addr, Outcome: OutcomeMoved})
		moved++
	}

	return results, moved, nil
}
