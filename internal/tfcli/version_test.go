// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package tfcli

import (
	"context"
	"errors"
	"testing"

	version "github.com/hashicorp/go-version"
)

type versionOnlyTool struct {
	Tool

	v   string
	err error
}

func (t versionOnlyTool) Version(context.Context) (*version.Version, error) {
	if t.err != nil {
		return nil, t.err
	}
	return version.NewVersion(t.v)
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		v  string
		ok bool
	}{
		{"0.11.14", false},
		{"0.12.0", true},
		{"0.12.31", true},
		{"1.5.7", true},
		{"1.7.0-beta1", true},
	}

	for _, test := range tests {
		t.Run(test.v, func(t *testing.T) {
			err := CheckVersion(context.Background(), versionOnlyTool{v: test.v})
			if test.ok && err != nil {
				t.Fatalf("err: %s", err)
			}
			if !test.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCheckVersion_toolFailure(t *testing.T) {
	wantErr := errors.New("exec: not found")
	err := CheckVersion(context.Background(), versionOnlyTool{err: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("wrong error: %v", err)
	}
}
