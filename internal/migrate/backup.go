// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"

	"github.com/rafagsiqueira/statemover/internal/tfcli"
)

// BackupStore creates, detects, and purges point-in-time snapshots of
// a state store's state content. Each store has exactly one fixed
// backup slot; all side effects stay inside the store's own directory.
type BackupStore struct {
	fs   afero.Fs
	tool tfcli.Tool
}

// NewBackupStore returns a BackupStore reading and writing snapshot
// files through fs and pulling live state content through tool.
func NewBackupStore(fs afero.Fs, tool tfcli.Tool) *BackupStore {
	return &BackupStore{fs: fs, tool: tool}
}

// Exists reports whether a live backup is present for the store.
func (b *BackupStore) Exists(store StateStore) (bool, error) {
	_, err := b.fs.Stat(store.BackupFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create pulls the store's current state content and writes it to the
// store's backup slot. It fails with ErrBackupAlreadyExists when a
// backup is already present, so that a double invocation can never
// clobber an existing recovery point.
func (b *BackupStore) Create(ctx context.Context, store StateStore) error {
	exists, err := b.Exists(store)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w for %s", ErrBackupAlreadyExists, store.Path)
	}

	content, err := b.tool.StatePull(ctx, store.Path)
	if err != nil {
		return fmt.Errorf("pulling state for backup of %s: %w", store.Path, err)
	}

	log.Printf("[INFO] migrate: backing up state of %s (%d bytes)", store.Path, len(content))
	return afero.WriteFile(b.fs, store.BackupFilePath(), content, 0o644)
}

// Purge deletes the store's backup artifacts. Purging when none exist
// is a no-op, not an error.
func (b *BackupStore) Purge(store StateStore) error {
	err := b.fs.Remove(store.BackupFilePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil {
		log.Printf("[INFO] migrate: purged backup of %s", store.Path)
	}
	return nil
}

// Rollback restores the store's live state file from its backup. The
// backup stays in place afterwards; only an explicit Purge removes it.
// It fails with ErrNoBackupFound when the store has no backup.
func (b *BackupStore) Rollback(store StateStore) error {
	content, err := afero.ReadFile(b.fs, store.BackupFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w for %s", ErrNoBackupFound, store.Path)
		}
		return err
	}

	log.Printf("[INFO] migrate: restoring state of %s from backup", store.Path)
	return afero.WriteFile(b.fs, store.StateFilePath(), content, 0o644)
}
