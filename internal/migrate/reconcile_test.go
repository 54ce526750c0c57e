// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/rafagsiqueira/statemover/internal/tfcli/toolfake"
)

func TestReconcileDestination_localBackend(t *testing.T) {
	fs := afero.NewMemMapFs()
	dest := testStore(t, fs, "/work/dest")

	if err := afero.WriteFile(fs, dest.CachedStatePath(), []byte("stale pointer"), 0o644); err != nil {
		t.Fatalf("err: %s", err)
	}
	if err := afero.WriteFile(fs, dest.StateFilePath(), []byte("migrated state"), 0o644); err != nil {
		t.Fatalf("err: %s", err)
	}

	tool := &toolfake.Tool{
		InitOutput: map[string]string{
			"/work/dest": "Initialized the backend!\n\nTerraform has been successfully initialized!",
		},
	}

	kind, err := ReconcileDestination(context.Background(), tool, fs, dest)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if kind != BackendLocal {
		t.Fatalf("wrong backend kind: %s", kind)
	}

	// The cached working-state pointer is discarded unconditionally.
	if exists, _ := afero.Exists(fs, dest.CachedStatePath()); exists {
		t.Fatal("cached state pointer should be gone")
	}
	// A local backend keeps its live state file.
	if exists, _ := afero.Exists(fs, dest.StateFilePath()); !exists {
		t.Fatal("local state file should survive reconciliation")
	}

	calls := tool.CallsTo("Init")
	if len(calls) != 1 {
		t.Fatalf("wrong number of init calls: %d", len(calls))
	}
	if len(calls[0].Args) != 2 || calls[0].Args[0] != "-reconfigure" || calls[0].Args[1] != "-force-copy" {
		t.Fatalf("re-init should reconfigure with a forced copy, got %#v", calls[0].Args)
	}
}

func TestReconcileDestination_remoteBackend(t *testing.T) {
	fs := afero.NewMemMapFs()
	dest := testStore(t, fs, "/work/dest")

	if err := afero.WriteFile(fs, dest.StateFilePath(), []byte("transient pull target"), 0o644); err != nil {
		t.Fatalf("err: %s", err)
	}

	tool := &toolfake.Tool{
		InitOutput: map[string]string{
			"/work/dest": `Successfully configured the backend "s3"! Terraform will automatically
use this backend unless the backend configuration changes.`,
		},
	}

	kind, err := ReconcileDestination(context.Background(), tool, fs, dest)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if kind != BackendRemote {
		t.Fatalf("wrong backend kind: %s", kind)
	}

	// No stray local copy of remote-backed state may linger.
	if exists, _ := afero.Exists(fs, dest.StateFilePath()); exists {
		t.Fatal("transient local state file should be gone")
	}
}

func TestReconcileDestination_initFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	dest := testStore(t, fs, "/work/dest")
	tool := &toolfake.Tool{
		InitErr: map[string]error{
			"/work/dest": errors.New("backend configuration is invalid"),
		},
	}

	_, err := ReconcileDestination(context.Background(), tool, fs, dest)
	var recErr *ReconcileError
	if !errors.As(err, &recErr) {
		t.Fatalf("wrong error: %v", err)
	}
}
