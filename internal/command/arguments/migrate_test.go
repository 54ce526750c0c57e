// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseApply(t *testing.T) {
	tests := map[string]struct {
		args    []string
		want    *Apply
		wantErr bool
	}{
		"positional only": {
			args: []string{"old", "new"},
			want: &Apply{
				Stores: Stores{
					SourcePath:      "old",
					DestinationPath: "new",
					ViewType:        ViewHuman,
				},
			},
		},
		"all flags": {
			args: []string{"-auto-approve", "-purge", "-tool=tofu", "-no-color", "old", "new"},
			want: &Apply{
				Stores: Stores{
					SourcePath:      "old",
					DestinationPath: "new",
					NoColor:         true,
					ToolCommand:     "tofu",
					ViewType:        ViewHuman,
				},
				AutoApprove: true,
				Purge:       true,
			},
		},
		"json": {
			args: []string{"-json", "-auto-approve", "old", "new"},
			want: &Apply{
				Stores: Stores{
					SourcePath:      "old",
					DestinationPath: "new",
					ViewType:        ViewJSON,
					json:            true,
				},
				AutoApprove: true,
			},
		},
		"missing destination": {
			args:    []string{"old"},
			wantErr: true,
		},
		"too many arguments": {
			args:    []string{"old", "new", "extra"},
			wantErr: true,
		},
		"unknown flag": {
			args:    []string{"-frobnicate", "old", "new"},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseApply(test.args)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(Stores{})); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStores_viewType(t *testing.T) {
	got, err := ParseStores("plan", []string{"-json", "a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.ViewType != ViewJSON {
		t.Errorf("ViewType = %s; want json", got.ViewType)
	}

	got, err = ParseStores("plan", []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.ViewType != ViewHuman {
		t.Errorf("ViewType = %s; want human", got.ViewType)
	}
}
