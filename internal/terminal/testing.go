// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"fmt"
	"os"
	"testing"
)

// StreamsForTesting creates a Streams value that writes to temporary
// files instead of the real stdout/stderr, for tests that need to
// assert on what was printed.
//
// The returned callback reads back everything written so far and must
// be called before the test returns. Stdin is connected to an empty
// file, so any read from it returns EOF.
func StreamsForTesting(t *testing.T) (*Streams, func(*testing.T) *TestOutput) {
	t.Helper()

	stdout, err := os.CreateTemp(t.TempDir(), "stdout")
	if err != nil {
		t.Fatalf("failed to create temporary stdout: %s", err)
	}
	stderr, err := os.CreateTemp(t.TempDir(), "stderr")
	if err != nil {
		t.Fatalf("failed to create temporary stderr: %s", err)
	}
	stdin, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("failed to create temporary stdin: %s", err)
	}

	streams := &Streams{
		Stdout: &OutputStream{File: stdout},
		Stderr: &OutputStream{File: stderr},
		Stdin:  &InputStream{File: stdin},
	}

	close := func(t *testing.T) *TestOutput {
		t.Helper()

		outBytes, err := os.ReadFile(stdout.Name())
		if err != nil {
			t.Fatalf("failed to read temporary stdout: %s", err)
		}
		errBytes, err := os.ReadFile(stderr.Name())
		if err != nil {
			t.Fatalf("failed to read temporary stderr: %s", err)
		}

		return &TestOutput{
			stdout: string(outBytes),
			stderr: string(errBytes),
		}
	}

	t.Cleanup(func() {
		stdout.Close()
		stderr.Close()
		stdin.Close()
	})

	return streams, close
}

// TestOutput is the captured output of a Streams created by
// StreamsForTesting.
type TestOutput struct {
	stdout string
	stderr string
}

func (o *TestOutput) Stdout() string {
	return o.stdout
}

func (o *TestOutput) Stderr() string {
	return o.stderr
}

// All returns the combined output, for tests that don't care which
// stream a message went to.
func (o *TestOutput) All() string {
	return fmt.Sprintf("%s\n%s", o.stdout, o.stderr)
}
