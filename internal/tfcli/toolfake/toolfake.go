// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package toolfake provides a scriptable in-memory implementation of
// tfcli.Tool, for exercising the migration orchestrator without a real
// Terraform-compatible binary on the machine.
package toolfake

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	version "github.com/hashicorp/go-version"
	"github.com/spf13/afero"

	"github.com/rafagsiqueira/statemover/internal/tfcli"
)

// Call records one invocation of the fake.
type Call struct {
	Method string
	Dir    string
	Args   []string
}

// Tool is a fake tfcli.Tool. The zero value is usable; fields script
// the behavior per state store directory.
type Tool struct {
	// FS, when set, makes Plan and StateMove leave the same file
	// side effects the real tool would: a plan artifact, and a
	// -state-out target file.
	FS afero.Fs

	// VersionString is what Version reports. Empty means "1.6.2".
	VersionString string

	// InitOutput maps a directory to the textual init output. A
	// missing entry yields a generic local-backend success banner.
	InitOutput map[string]string

	// InitErr maps a directory to an init failure.
	InitErr map[string]error

	// PlanJSON maps a directory to the document ShowPlan returns. A
	// missing entry yields an empty resource_changes array.
	PlanJSON map[string][]byte

	// PlanErr maps a directory to a plan failure.
	PlanErr map[string]error

	// PullContent maps a directory to the content StatePull
	// returns. A missing entry yields a minimal state document.
	PullContent map[string][]byte

	// PullErr maps a directory to a state pull failure.
	PullErr map[string]error

	// States maps a directory to the addresses currently in its
	// state. StateMove consumes from the source entry (matching
	// module addresses by prefix, the way the real tool does) and
	// appends to the entry of the -state-out target's directory.
	// A nil map disables the emulation and every move succeeds.
	States map[string][]string

	// MoveErr maps a source address to a scripted move failure.
	MoveErr map[string]error

	// Calls records every invocation in order.
	Calls []Call
}

var _ tfcli.Tool = (*Tool)(nil)

func (f *Tool) record(method, dir string, args ...string) {
	f.Calls = append(f.Calls, Call{Method: method, Dir: dir, Args: args})
}

// CallsTo returns the recorded calls of one method, in order.
func (f *Tool) CallsTo(method string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *Tool) Init(_ context.Context, dir string, opts tfcli.InitOptions) (string, error) {
	args := []string{}
	if opts.Reconfigure {
		args = append(args, "-reconfigure")
	}
	if opts.ForceCopy {
		args = append(args, "-force-copy")
	}
	f.record("Init", dir, args...)
	if err := f.InitErr[dir]; err != nil {
		return "", err
	}
	if out, ok := f.InitOutput[dir]; ok {
		return out, nil
	}
	return "Initialized the backend!", nil
}

func (f *Tool) Plan(_ context.Context, dir string, planFile string) error {
	f.record("Plan", dir, planFile)
	if err := f.PlanErr[dir]; err != nil {
		return err
	}
	if f.FS != nil {
		return afero.WriteFile(f.FS, filepath.Join(dir, planFile), []byte("fake plan"), 0o644)
	}
	return nil
}

func (f *Tool) ShowPlan(_ context.Context, dir string, planFile string) ([]byte, error) {
	f.record("ShowPlan", dir, planFile)
	if doc, ok := f.PlanJSON[dir]; ok {
		return doc, nil
	}
	return []byte(`{"resource_changes":[]}`), nil
}

func (f *Tool) StatePull(_ context.Context, dir string) ([]byte, error) {
	f.record("StatePull", dir)
	if err := f.PullErr[dir]; err != nil {
		return nil, err
	}
	if content, ok := f.PullContent[dir]; ok {
		return content, nil
	}
	return []byte(`{"version": 4, "resources": []}` + "\n"), nil
}

func (f *Tool) StateMove(_ context.Context, dir string, sourceAddr, destAddr string, opts tfcli.MoveOptions) error {
	f.record("StateMove", dir, sourceAddr, destAddr, opts.StateOut)
	if err := f.MoveErr[sourceAddr]; err != nil {
		return err
	}

	if f.States != nil {
		moved, remaining := splitState(f.States[dir], sourceAddr)
		if len(moved) == 0 {
			return fmt.Errorf("invalid target address %q: no matching objects found", sourceAddr)
		}
		f.States[dir] = remaining

		destDir := filepath.Dir(opts.StateOut)
		f.States[destDir] = append(f.States[destDir], moved...)
	}

	if f.FS != nil && opts.StateOut != "" {
		content := strings.Join(f.States[filepath.Dir(opts.StateOut)], "\n")
		return afero.WriteFile(f.FS, opts.StateOut, []byte(content), 0o644)
	}
	return nil
}

func (f *Tool) Version(_ context.Context) (*version.Version, error) {
	f.record("Version", "")
	raw := f.VersionString
	if raw == "" {
		raw = "1.6.2"
	}
	return version.NewVersion(raw)
}

// splitState partitions addrs into the ones addr matches (the address
// itself, or any entry under it when addr names a module) and the
// rest.
func splitState(addrs []string, addr string) (moved, remaining []string) {
	for _, a := range addrs {
		if a == addr || strings.HasPrefix(a, addr+".") || strings.HasPrefix(a, addr+"[") {
			moved = append(moved, a)
			continue
		}
		remaining = append(remaining, a)
	}
	return moved, remaining
}
