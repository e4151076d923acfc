// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Injected via ldflags at build time.
var (
	Version   = "dev"     // semantic version from git tags
	GitCommit = "unknown" // short git commit hash
	BuildTime = "unknown" // build timestamp in RFC3339 format
)
