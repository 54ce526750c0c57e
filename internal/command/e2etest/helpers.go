// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package e2etest

import (
	"regexp"
	"strings"
	"testing"

	"github.com/rafagsiqueira/statemover/internal/e2e"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// SanitizeStderr flattens the error output into one space-separated
// line, so that assertions are not sensitive to wrapping or colors.
func SanitizeStderr(s string) string {
	s = stripAnsi(s)
	return strings.Join(strings.Fields(s), " ")
}

type statemoverResult struct {
	t      *testing.T
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, b *e2e.Binary, args ...string) statemoverResult {
	t.Helper()
	stdout, stderr, err := b.Run(args...)
	return statemoverResult{t: t, stdout: stdout, stderr: stderr, err: err}
}

func (r statemoverResult) Success() statemoverResult {
	r.t.Helper()
	if r.err != nil {
		r.t.Errorf("unexpected error: %s\nstderr:\n%s", r.err, r.stderr)
	}
	return r
}

func (r statemoverResult) Failure() statemoverResult {
	r.t.Helper()
	if r.err == nil {
		r.t.Errorf("expected error, got success\nstdout:\n%s", r.stdout)
	}
	return r
}

func (r statemoverResult) StderrContains(sub string) statemoverResult {
	r.t.Helper()
	if !strings.Contains(SanitizeStderr(r.stderr), sub) {
		r.t.Errorf("missing string in stderr: %q\ngot:\n%s", sub, r.stderr)
	}
	return r
}

func (r statemoverResult) Contains(sub string) statemoverResult {
	r.t.Helper()
	if !strings.Contains(r.stdout, sub) {
		r.t.Errorf("missing string in stdout: %q\ngot:\n%s", sub, r.stdout)
	}
	return r
}
