// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/cli"

	"github.com/rafagsiqueira/statemover/internal/migrate"
	"github.com/rafagsiqueira/statemover/internal/terminal"
	"github.com/rafagsiqueira/statemover/internal/tfcli/toolfake"
)

// testStores creates a source and a non-empty destination working
// directory on disk.
func testStores(t *testing.T) (source, dest string) {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	source = filepath.Join(base, "source")
	dest = filepath.Join(base, "dest")
	for _, dir := range []string{source, dest} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("err: %s", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dest, "main.tf"), []byte("# config\n"), 0o644); err != nil {
		t.Fatalf("err: %s", err)
	}
	return source, dest
}

func testMeta(t *testing.T, tool *toolfake.Tool) (Meta, *cli.MockUi, func(*testing.T) *terminal.TestOutput) {
	t.Helper()

	streams, done := terminal.StreamsForTesting(t)
	ui := new(cli.MockUi)
	return Meta{
		Ui:               ui,
		Streams:          streams,
		testingOverrides: tool,
	}, ui, done
}

func TestApply(t *testing.T) {
	source, dest := testStores(t)
	tool := &toolfake.Tool{
		PlanJSON: map[string][]byte{
			source: []byte(`{"resource_changes": [
				{"address": "aws_s3_bucket.logs", "change": {"actions": ["delete"]}}
			]}`),
		},
		States: map[string][]string{
			source: {"aws_s3_bucket.logs"},
		},
	}
	meta, _, done := testMeta(t, tool)

	c := &ApplyCommand{Meta: meta}
	code := c.Run([]string{"-auto-approve", source, dest})
	output := done(t)
	if code != 0 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}

	if !strings.Contains(output.Stdout(), "moved: aws_s3_bucket.logs") {
		t.Fatalf("missing move report:\n%s", output.Stdout())
	}
	if !strings.Contains(output.Stdout(), "Migration complete!") {
		t.Fatalf("missing success message:\n%s", output.Stdout())
	}
	if !strings.Contains(output.Stdout(), "local backend was reconciled") {
		t.Fatalf("missing reconciliation report:\n%s", output.Stdout())
	}

	if got := tool.States[dest]; len(got) != 1 || got[0] != "aws_s3_bucket.logs" {
		t.Fatalf("wrong destination state: %v", got)
	}
}

func TestApply_approveNo(t *testing.T) {
	source, dest := testStores(t)
	meta, ui, done := testMeta(t, &toolfake.Tool{})
	ui.InputReader = strings.NewReader("no\n")

	c := &ApplyCommand{Meta: meta}
	code := c.Run([]string{source, dest})
	output := done(t)
	if code != 1 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}
	if got, want := ui.OutputWriter.String(), "Migration cancelled"; !strings.Contains(got, want) {
		t.Fatalf("expected output to include %q, but was:\n%s", want, got)
	}
}

func TestApply_approveYes(t *testing.T) {
	source, dest := testStores(t)
	tool := &toolfake.Tool{
		PlanJSON: map[string][]byte{
			source: []byte(`{"resource_changes": [
				{"address": "aws_vpc.main", "change": {"actions": ["delete"]}}
			]}`),
		},
		States: map[string][]string{
			source: {"aws_vpc.main"},
		},
	}
	meta, ui, done := testMeta(t, tool)
	ui.InputReader = strings.NewReader("yes\n")

	c := &ApplyCommand{Meta: meta}
	code := c.Run([]string{source, dest})
	output := done(t)
	if code != 0 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}
}

func TestApply_nothingToMigrate(t *testing.T) {
	source, dest := testStores(t)
	meta, _, done := testMeta(t, &toolfake.Tool{})

	c := &ApplyCommand{Meta: meta}
	code := c.Run([]string{"-auto-approve", source, dest})
	output := done(t)
	if code != 0 {
		t.Fatalf("nothing to migrate is a graceful no-op, got: %d\n\n%s", code, output.All())
	}
	if !strings.Contains(output.Stdout(), "Nothing to migrate") {
		t.Fatalf("missing warning:\n%s", output.Stdout())
	}
}

func TestApply_failureSuggestsRollback(t *testing.T) {
	source, dest := testStores(t)
	// A pre-existing backup blocks the run before any mutation.
	if err := os.WriteFile(filepath.Join(source, migrate.BackupFilename), []byte("old"), 0o644); err != nil {
		t.Fatalf("err: %s", err)
	}
	meta, _, done := testMeta(t, &toolfake.Tool{})

	c := &ApplyCommand{Meta: meta}
	code := c.Run([]string{"-auto-approve", source, dest})
	output := done(t)
	if code != 1 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}
	if !strings.Contains(output.Stderr(), "Migration failed while backing up") {
		t.Fatalf("missing failure stage:\n%s", output.Stderr())
	}
	if !strings.Contains(output.Stderr(), "statemover rollback") {
		t.Fatalf("missing recovery hint:\n%s", output.Stderr())
	}
}

func TestApply_badArgs(t *testing.T) {
	meta, ui, _ := testMeta(t, &toolfake.Tool{})

	c := &ApplyCommand{Meta: meta}
	if code := c.Run([]string{"only-one-path"}); code != 1 {
		t.Fatalf("bad: %d", code)
	}
	if got := ui.ErrorWriter.String(); !strings.Contains(got, "SOURCE and DESTINATION") {
		t.Fatalf("missing usage error:\n%s", got)
	}
}

func TestPlan_dryRun(t *testing.T) {
	source, dest := testStores(t)
	statePath := filepath.Join(dest, migrate.StateFilename)
	if err := os.WriteFile(statePath, []byte("pristine"), 0o644); err != nil {
		t.Fatalf("err: %s", err)
	}
	tool := &toolfake.Tool{
		PlanJSON: map[string][]byte{
			source: []byte(`{"resource_changes": [
				{"address": "module.network.aws_vpc.main", "change": {"actions": ["delete"]}}
			]}`),
		},
	}
	meta, _, done := testMeta(t, tool)

	c := &PlanCommand{Meta: meta}
	code := c.Run([]string{source, dest})
	output := done(t)
	if code != 0 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}

	if !strings.Contains(output.Stdout(), "would move: module.network") {
		t.Fatalf("missing dry-run report:\n%s", output.Stdout())
	}
	if calls := tool.CallsTo("StateMove"); len(calls) != 0 {
		t.Fatalf("dry run must not move, got %d calls", len(calls))
	}

	content, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if string(content) != "pristine" {
		t.Fatalf("destination state was mutated: %q", content)
	}

	// plan cleans up its own backups.
	if _, err := os.Stat(filepath.Join(source, migrate.BackupFilename)); !os.IsNotExist(err) {
		t.Fatalf("backup should have been purged, stat err: %v", err)
	}
}

func TestPurge(t *testing.T) {
	source, dest := testStores(t)
	for _, dir := range []string{source, dest} {
		if err := os.WriteFile(filepath.Join(dir, migrate.BackupFilename), []byte("snapshot"), 0o644); err != nil {
			t.Fatalf("err: %s", err)
		}
	}
	meta, _, done := testMeta(t, &toolfake.Tool{})

	c := &PurgeCommand{Meta: meta}
	code := c.Run([]string{source, dest})
	output := done(t)
	if code != 0 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}

	for _, dir := range []string{source, dest} {
		if _, err := os.Stat(filepath.Join(dir, migrate.BackupFilename)); !os.IsNotExist(err) {
			t.Fatalf("backup in %s should be gone, stat err: %v", dir, err)
		}
	}
}

func TestRollback(t *testing.T) {
	source, dest := testStores(t)
	for _, dir := range []string{source, dest} {
		if err := os.WriteFile(filepath.Join(dir, migrate.BackupFilename), []byte("before"), 0o644); err != nil {
			t.Fatalf("err: %s", err)
		}
		if err := os.WriteFile(filepath.Join(dir, migrate.StateFilename), []byte("after"), 0o644); err != nil {
			t.Fatalf("err: %s", err)
		}
	}
	meta, _, done := testMeta(t, &toolfake.Tool{})

	c := &RollbackCommand{Meta: meta}
	code := c.Run([]string{"-auto-approve", source, dest})
	output := done(t)
	if code != 0 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}

	for _, dir := range []string{source, dest} {
		content, err := os.ReadFile(filepath.Join(dir, migrate.StateFilename))
		if err != nil {
			t.Fatalf("err: %s", err)
		}
		if string(content) != "before" {
			t.Fatalf("state in %s not restored: %q", dir, content)
		}
	}
}

func TestRollback_noBackups(t *testing.T) {
	source, dest := testStores(t)
	meta, _, done := testMeta(t, &toolfake.Tool{})

	c := &RollbackCommand{Meta: meta}
	code := c.Run([]string{"-auto-approve", source, dest})
	output := done(t)
	if code != 1 {
		t.Fatalf("bad: %d\n\n%s", code, output.All())
	}
	// The failure names the operation the user actually ran.
	if !strings.Contains(output.Stderr(), "Migration failed while rolling back") {
		t.Fatalf("missing failing stage:\n%s", output.Stderr())
	}
	if !strings.Contains(output.Stderr(), "no state backup found") {
		t.Fatalf("missing error detail:\n%s", output.Stderr())
	}
}
