// SPDX-License-Identifier: MPL-2.0

// Package probe specializes fyes to a locally installed reference yes.
//
// Detect runs the reference with --help, --version, and two options it must
// reject, and splits the output into the blobs internal/compat compiles in.
// A Snapshot records the blobs as TOML so builds can be reproduced without
// the reference present. Generate renders the blobs as Go source, and Verify
// runs a built fyes and the reference side by side and diffs their stdout,
// stderr, and exit status.
package probe
