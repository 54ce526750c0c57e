// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package e2etest

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rafagsiqueira/statemover/internal/e2e"
)

// newMigrateBinary copies the "migrate" fixture, which contains a
// source and destination working directory plus a shell script that
// stands in for the Terraform binary.
func newMigrateBinary(t *testing.T) *e2e.Binary {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("the mock tool is a POSIX shell script")
	}
	return e2e.NewBinary(t, statemoverBin, filepath.Join("testdata", "migrate"))
}

func TestPlanMigration(t *testing.T) {
	t.Parallel()

	sm := newMigrateBinary(t)

	run(t, sm, "plan", "-tool="+sm.Path("mocktool.sh"), "source", "dest").
		Success().
		Contains("would move: aws_s3_bucket.logs").
		Contains("Dry run complete.")

	// A dry run always removes the backups it created.
	if sm.FileExists("source", "terraform.tfstate.statemover-backup") {
		t.Error("source backup was not purged after the dry run")
	}
	if sm.FileExists("dest", "terraform.tfstate.statemover-backup") {
		t.Error("destination backup was not purged after the dry run")
	}
}

func TestApplyMigration(t *testing.T) {
	t.Parallel()

	sm := newMigrateBinary(t)

	run(t, sm, "apply", "-auto-approve", "-tool="+sm.Path("mocktool.sh"), "source", "dest").
		Success().
		Contains("moved: aws_s3_bucket.logs").
		Contains("Migration complete!")

	// Without -purge the recovery points stay around.
	if !sm.FileExists("source", "terraform.tfstate.statemover-backup") {
		t.Error("source backup is missing after apply")
	}

	// A second apply must refuse to clobber the existing backups.
	run(t, sm, "apply", "-auto-approve", "-tool="+sm.Path("mocktool.sh"), "source", "dest").
		Failure().
		StderrContains("a state backup already exists")

	// Rollback restores, purge cleans up, and then a fresh apply is
	// possible again.
	run(t, sm, "rollback", "-auto-approve", "source", "dest").Success()
	run(t, sm, "purge", "source", "dest").Success()
	if sm.FileExists("source", "terraform.tfstate.statemover-backup") {
		t.Error("source backup still present after purge")
	}
}

func TestRollbackWithoutBackups(t *testing.T) {
	t.Parallel()

	sm := newMigrateBinary(t)

	run(t, sm, "rollback", "-auto-approve", "source", "dest").
		Failure().
		StderrContains("no state backup found")
}
