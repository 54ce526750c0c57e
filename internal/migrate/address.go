// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"strings"
)

// ResourceAddress is a dotted-path identifier naming either a bare
// resource ("type.name" or "type.name[index]") or a module-scoped
// resource ("module.<name>.<...>"), exactly as the underlying tool
// renders it in its JSON plan.
type ResourceAddress string

func (a ResourceAddress) String() string {
	return string(a)
}

// InModule returns whether the address lives under a module instance.
func (a ResourceAddress) InModule() bool {
	return strings.HasPrefix(string(a), "module.")
}

// ModuleKey returns the first two dotted components of the address,
// e.g. "module.network" for "module.network.aws_vpc.main". Two
// addresses belong to the same module instance exactly when their
// module keys match. For an address with fewer than two components the
// address itself is returned.
func (a ResourceAddress) ModuleKey() ResourceAddress {
	s := string(a)
	first := strings.Index(s, ".")
	if first < 0 {
		return a
	}
	second := strings.Index(s[first+1:], ".")
	if second < 0 {
		return a
	}
	return ResourceAddress(s[:first+1+second])
}

// CollapseAddresses reduces a plan-ordered address stream to the
// minimal move list, collapsing all children of a module instance into
// one module-level move. Moving a module by its module address already
// relocates every entry under it; re-emitting a child would attempt to
// move an address that no longer exists in the source state.
//
// The deduplication is adjacency-only: the current address (truncated
// to its module key if module-scoped) is compared against the address
// emitted by the previous iteration, and skipped when equal. Two
// non-adjacent entries of the same module, separated by an unrelated
// resource, are therefore NOT deduplicated and the second one will
// fail at move time. That behavior is intentional: strengthening the
// dedup would change observable move counts.
func CollapseAddresses(addrs []ResourceAddress) []ResourceAddress {
	var out []ResourceAddress
	var prev ResourceAddress

	for _, addr := range addrs {
		emit := addr
		if addr.InModule() {
			emit = addr.ModuleKey()
		}
		if emit == prev {
			// Another child of the module instance we just
			// emitted.
			continue
		}
		out = append(out, emit)
		prev = emit
	}
	return out
}
