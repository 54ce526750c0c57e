// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package version holds statemover's own version number.
package version

import (
	version "github.com/hashicorp/go-version"
)

// Version is the main version number that is being run at the moment,
// which must be a valid semantic version.
var Version = "0.2.0"

// Prerelease is a marker for the version. If this is "" (empty string)
// then it means that it is a final release. Otherwise, this is a
// pre-release such as "dev" (in development), "beta", "rc1", etc.
var Prerelease = "dev"

// SemVer is an instance of version.Version representing the main
// version without any pre-release information.
var SemVer *version.Version

func init() {
	SemVer = version.Must(version.NewVersion(Version))
}

// String returns the complete version string, including prerelease.
func String() string {
	if Prerelease != "" {
		return Version + "-" + Prerelease
	}
	return Version
}
