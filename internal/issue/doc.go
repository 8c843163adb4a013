// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages
// for fyes-probe.
//
// ActionableError carries the failed operation, the resource involved, and
// suggestions. Issue is a catalog entry with Markdown guidance for the
// failures users hit most often when specializing fyes against a reference yes.
package issue
