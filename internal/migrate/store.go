// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"path/filepath"
)

const (
	// StateFilename is the fixed name of a store's local state file.
	// For remote-backed stores it is only a transient pull target.
	StateFilename = "terraform.tfstate"

	// BackupFilename is the fixed backup slot within a store's root.
	// Its existence means "a backup is live".
	BackupFilename = "terraform.tfstate.statemover-backup"

	// planFilename is the transient plan artifact written into the
	// source store during the Planning stage. It never survives a
	// run.
	planFilename = "statemover.tfplan"

	// cacheDirName is the working directory the underlying tool
	// keeps its backend cache in.
	cacheDirName = ".terraform"
)

// BackendKind classifies how a state store's backend persists state.
type BackendKind string

const (
	// BackendUnknown means the store's backend has not been probed
	// yet in this run.
	BackendUnknown BackendKind = ""
	BackendLocal   BackendKind = "local"
	BackendRemote  BackendKind = "remote"
)

// StateStore identifies a directory holding one declared configuration
// and one persisted state. Stores exist before a run, are mutated in
// place by moves, and are never created or destroyed by statemover.
type StateStore struct {
	// Path is the absolute root of the store.
	Path string

	// Backend is the store's backend kind, discovered during the
	// run. Zero until probed.
	Backend BackendKind
}

// StateFilePath returns the store's live (or transient) state file.
func (s StateStore) StateFilePath() string {
	return filepath.Join(s.Path, StateFilename)
}

// BackupFilePath returns the store's fixed backup slot.
func (s StateStore) BackupFilePath() string {
	return filepath.Join(s.Path, BackupFilename)
}

// PlanFilePath returns the transient plan artifact location.
func (s StateStore) PlanFilePath() string {
	return filepath.Join(s.Path, planFilename)
}

// CachedStatePath returns the tool's cached working-state pointer,
// which the reconciler discards before re-initializing.
func (s StateStore) CachedStatePath() string {
	return filepath.Join(s.Path, cacheDirName, StateFilename)
}
