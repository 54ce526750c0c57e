// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package tfcli

import (
	"context"
	"fmt"

	version "github.com/hashicorp/go-version"
)

// jsonPlanConstraint is the version range of the underlying tool that
// supports rendering a saved plan as JSON via "show -json", which the
// plan-diff resolver depends on.
var jsonPlanConstraint = version.MustConstraints(version.NewConstraint(">= 0.12.0"))

// CheckVersion verifies that the tool behind t is new enough for
// statemover to use. It should run once, before any state store is
// touched.
func CheckVersion(ctx context.Context, t Tool) error {
	v, err := t.Version(ctx)
	if err != nil {
		return err
	}
	if !jsonPlanConstraint.Check(v.Core()) {
		return fmt.Errorf("tool version %s is too old: statemover needs %s for JSON plan output", v, jsonPlanConstraint)
	}
	return nil
}
