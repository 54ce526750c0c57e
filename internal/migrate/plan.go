// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"

	"github.com/rafagsiqueira/statemover/internal/tfcli"
)

// Action is one planned change action as named by the tool's JSON plan
// representation.
type Action string

const (
	ActionNoOp   Action = "no-op"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// PlannedChange is one entry of the source plan's resource_changes
// array: an address plus the set of actions the tool intends for it.
type PlannedChange struct {
	Address ResourceAddress
	Actions []Action
}

// IsRemoval reports whether this change would delete the address from
// the source state. The test is "action set contains delete", so a
// destroy-then-create replacement also qualifies: from the source's
// perspective the declaration was removed, even if the tool plans to
// recreate it. That inclusion is inherited behavior and is preserved
// as-is.
func (c PlannedChange) IsRemoval() bool {
	for _, a := range c.Actions {
		if a == ActionDelete {
			return true
		}
	}
	return false
}

// planDocument is the subset of the tool's JSON plan representation
// that the resolver consumes.
type planDocument struct {
	ResourceChanges []struct {
		Address string `json:"address"`
		Change  struct {
			Actions []string `json:"actions"`
		} `json:"change"`
	} `json:"resource_changes"`
}

// ComputePlan runs a speculative, side-effect-free plan against the
// source store and extracts one PlannedChange per resource_changes
// entry, in the order the tool serialized them. The transient plan
// artifact is removed before returning, regardless of outcome.
func ComputePlan(ctx context.Context, tool tfcli.Tool, fs afero.Fs, source StateStore) ([]PlannedChange, error) {
	planFile := source.PlanFilePath()
	defer func() {
		if err := fs.Remove(planFile); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] migrate: couldn't remove plan artifact %s: %s", planFile, err)
		}
	}()

	if err := tool.Plan(ctx, source.Path, planFilename); err != nil {
		return nil, &PlanError{Err: err}
	}

	raw, err := tool.ShowPlan(ctx, source.Path, planFilename)
	if err != nil {
		return nil, &PlanError{Err: err}
	}

	var doc planDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &PlanError{Err: fmt.Errorf("decoding JSON plan: %w", err)}
	}

	changes := make([]PlannedChange, 0, len(doc.ResourceChanges))
	for _, rc := range doc.ResourceChanges {
		actions := make([]Action, len(rc.Change.Actions))
		for i, a := range rc.Change.Actions {
			actions[i] = Action(a)
		}
		changes = append(changes, PlannedChange{
			Address: ResourceAddress(rc.Address),
			Actions: actions,
		})
	}

	log.Printf("[DEBUG] migrate: source plan has %d resource changes", len(changes))
	return changes, nil
}

// RemovalAddresses filters the plan's changes down to the addresses
// slated for deletion, preserving plan order.
func RemovalAddresses(changes []PlannedChange) []ResourceAddress {
	var addrs []ResourceAddress
	for _, c := range changes {
		if c.IsRemoval() {
			addrs = append(addrs, c.Address)
		}
	}
	return addrs
}
