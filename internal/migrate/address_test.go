// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResourceAddress_ModuleKey(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"module.network.aws_vpc.main", "module.network"},
		{"module.network", "module.network"},
		{"module.net[0].aws_vpc.main", "module.net[0]"},
		{"aws_s3_bucket.logs", "aws_s3_bucket.logs"},
		{"aws_s3_bucket.logs[2]", "aws_s3_bucket.logs[2]"},
		{"local_file.single", "local_file.single"},
	}

	for _, test := range tests {
		t.Run(test.addr, func(t *testing.T) {
			got := ResourceAddress(test.addr).ModuleKey()
			if got != ResourceAddress(test.want) {
				t.Fatalf("wrong module key for %s: got %s, want %s", test.addr, got, test.want)
			}
		})
	}
}

func TestCollapseAddresses(t *testing.T) {
	tests := map[string]struct {
		input []ResourceAddress
		want  []ResourceAddress
	}{
		"empty": {
			input: nil,
			want:  nil,
		},
		"bare resources only": {
			input: []ResourceAddress{"aws_s3_bucket.logs", "aws_vpc.main"},
			want:  []ResourceAddress{"aws_s3_bucket.logs", "aws_vpc.main"},
		},
		"module children collapse to one move": {
			input: []ResourceAddress{
				"module.network.aws_vpc.main",
				"module.network.aws_subnet.a",
				"module.network.aws_subnet.b",
			},
			want: []ResourceAddress{"module.network"},
		},
		"module then bare resource": {
			input: []ResourceAddress{
				"module.a.resource.x",
				"module.a.resource.y",
				"resource.z",
			},
			want: []ResourceAddress{"module.a", "resource.z"},
		},
		"distinct modules stay distinct": {
			input: []ResourceAddress{
				"module.a.resource.x",
				"module.b.resource.x",
			},
			want: []ResourceAddress{"module.a", "module.b"},
		},
		"bare resource resets the module marker": {
			// Adjacency-only dedup: module.a reappearing after an
			// unrelated entry is emitted a second time on purpose.
			input: []ResourceAddress{
				"module.a.resource.x",
				"resource.z",
				"module.a.resource.y",
			},
			want: []ResourceAddress{"module.a", "resource.z", "module.a"},
		},
		"indexed module instances": {
			input: []ResourceAddress{
				"module.net[0].aws_vpc.main",
				"module.net[0].aws_subnet.a",
				"module.net[1].aws_vpc.main",
			},
			want: []ResourceAddress{"module.net[0]", "module.net[1]"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := CollapseAddresses(test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Fatalf("wrong move set:\n%s", diff)
			}
		})
	}
}
