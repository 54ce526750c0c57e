// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package tfcli

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/apparentlymart/go-shquot/shquot"
	version "github.com/hashicorp/go-version"
	shellwords "github.com/mattn/go-shellwords"
)

// envExtraArgs names the environment variable holding extra CLI
// arguments for every tool invocation. Like the underlying tool's own
// TF_CLI_ARGS, they are inserted directly after the subcommand so they
// parse as flags rather than trailing positionals.
const envExtraArgs = "STATEMOVER_ARGS"

// Exec is the production Tool implementation: it invokes the
// configured Terraform-compatible executable as a child process.
type Exec struct {
	// Command is the name or path of the executable, e.g.
	// "terraform" or "tofu". Resolved through PATH if relative.
	Command string

	// Env holds extra environment entries, in os.Environ form,
	// appended to the inherited environment of every invocation.
	Env []string

	// extraArgs parsed from STATEMOVER_ARGS, populated lazily.
	extraArgs     []string
	extraArgsErr  error
	extraArgsOnce bool
}

var _ Tool = (*Exec)(nil)

// NewExec returns an Exec running the given executable.
func NewExec(command string) *Exec {
	return &Exec{Command: command}
}

func (e *Exec) Init(ctx context.Context, dir string, opts InitOptions) (string, error) {
	args := []string{"-input=false"}
	if opts.Reconfigure {
		args = append(args, "-reconfigure")
	}
	if opts.ForceCopy {
		args = append(args, "-force-copy")
	}
	stdout, stderr, err := e.run(ctx, dir, []string{"init"}, args...)
	if err != nil {
		return "", fmt.Errorf("init in %s: %w\n%s", dir, err, stderr)
	}
	return stdout, nil
}

func (e *Exec) Plan(ctx context.Context, dir string, planFile string) error {
	_, stderr, err := e.run(ctx, dir, []string{"plan"}, "-input=false", "-out="+planFile)
	if err != nil {
		return fmt.Errorf("plan in %s: %w\n%s", dir, err, stderr)
	}
	return nil
}

func (e *Exec) ShowPlan(ctx context.Context, dir string, planFile string) ([]byte, error) {
	stdout, stderr, err := e.run(ctx, dir, []string{"show"}, "-json", planFile)
	if err != nil {
		return nil, fmt.Errorf("show -json in %s: %w\n%s", dir, err, stderr)
	}
	return []byte(stdout), nil
}

func (e *Exec) StatePull(ctx context.Context, dir string) ([]byte, error) {
	stdout, stderr, err := e.run(ctx, dir, []string{"state", "pull"})
	if err != nil {
		return nil, fmt.Errorf("state pull in %s: %w\n%s", dir, err, stderr)
	}
	return []byte(stdout), nil
}

func (e *Exec) StateMove(ctx context.Context, dir string, sourceAddr, destAddr string, opts MoveOptions) error {
	var args []string
	if opts.StateOut != "" {
		args = append(args, "-state-out="+opts.StateOut)
	}
	args = append(args, sourceAddr, destAddr)
	_, stderr, err := e.run(ctx, dir, []string{"state", "mv"}, args...)
	if err != nil {
		return fmt.Errorf("state mv %s in %s: %w\n%s", sourceAddr, dir, err, stderr)
	}
	return nil
}

func (e *Exec) Version(ctx context.Context) (*version.Version, error) {
	stdout, stderr, err := e.run(ctx, "", []string{"version"})
	if err != nil {
		return nil, fmt.Errorf("version: %w\n%s", err, stderr)
	}
	v, err := parseVersionOutput(stdout)
	if err != nil {
		return nil, fmt.Errorf("unexpected output from %q version: %w", e.Command, err)
	}
	return v, nil
}

// run executes the given subcommand of the tool in dir, returning its
// buffered stdout and stderr.
func (e *Exec) run(ctx context.Context, dir string, subcommand []string, args ...string) (string, string, error) {
	args, err := e.commandLine(subcommand, args)
	if err != nil {
		return "", "", err
	}

	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.Stdout = &bytes.Buffer{}
	cmd.Stderr = &bytes.Buffer{}
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, e.Env...)

	log.Printf("[DEBUG] tfcli: running %s", shquot.POSIXShell(append([]string{e.Command}, args...)))

	err = cmd.Run()
	stdout := cmd.Stdout.(*bytes.Buffer).String()
	stderr := cmd.Stderr.(*bytes.Buffer).String()

	if err != nil {
		log.Printf("[TRACE] tfcli: %s failed: %s", e.Command, err)
	}
	return stdout, stderr, err
}

// commandLine assembles the full argument list for an invocation,
// placing any STATEMOVER_ARGS extras between the subcommand words and
// the command's own flags and positionals. The tools stop flag parsing
// at the first positional, so extras must come first to be seen as
// flags.
func (e *Exec) commandLine(subcommand []string, args []string) ([]string, error) {
	extra, err := e.extraArguments()
	if err != nil {
		return nil, err
	}
	full := make([]string, 0, len(subcommand)+len(extra)+len(args))
	full = append(full, subcommand...)
	full = append(full, extra...)
	full = append(full, args...)
	return full, nil
}

func (e *Exec) extraArguments() ([]string, error) {
	if !e.extraArgsOnce {
		e.extraArgsOnce = true
		raw := os.Getenv(envExtraArgs)
		if raw != "" {
			args, err := shellwords.Parse(raw)
			if err != nil {
				e.extraArgsErr = fmt.Errorf("invalid %s value %q: %w", envExtraArgs, raw, err)
			} else {
				e.extraArgs = args
			}
		}
	}
	return e.extraArgs, e.extraArgsErr
}

// parseVersionOutput extracts the semantic version from the first line
// of the tool's version output, which looks like "Terraform v1.5.7" or
// "OpenTofu v1.6.2" depending on the binary.
func parseVersionOutput(out string) (*version.Version, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty version output")
	}
	raw := fields[len(fields)-1]
	raw = strings.TrimPrefix(raw, "v")
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("can't parse version from %q: %w", line, err)
	}
	return v, nil
}
