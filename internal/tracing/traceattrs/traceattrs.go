// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package traceattrs

import (
	"go.opentelemetry.io/otel/attribute"
)

// This file contains some functions representing statemover-specific
// semantic conventions, used alongside the general
// OpenTelemetry-specified semantic conventions.
//
// These functions take strings that are expected to be the canonical
// string representation of some more specific type from elsewhere in
// statemover, but we make the caller produce the string representation
// rather than doing it inline because this package needs to avoid
// importing any other packages from this codebase so that the rest of
// statemover can use this package without creating import cycles.

// StateStorePath returns an attribute definition for indicating which
// state store root directory is relevant to a particular trace span.
func StateStorePath(path string) attribute.KeyValue {
	return attribute.String("statemover.store.path", path)
}

// ResourceAddress returns an attribute definition for indicating which
// resource or module address is relevant to a particular trace span.
func ResourceAddress(addr string) attribute.KeyValue {
	return attribute.String("statemover.resource.address", addr)
}

// RunStage returns an attribute definition for indicating which
// orchestrator stage a particular trace span covers.
func RunStage(stage string) attribute.KeyValue {
	return attribute.String("statemover.run.stage", stage)
}

// MoveCount returns an attribute definition for recording how many
// state entries a stage moved.
func MoveCount(n int) attribute.KeyValue {
	return attribute.Int("statemover.move.count", n)
}

// DryRun returns an attribute definition for indicating whether a
// particular run simulates moves instead of performing them.
func DryRun(dryRun bool) attribute.KeyValue {
	return attribute.Bool("statemover.run.dry_run", dryRun)
}
