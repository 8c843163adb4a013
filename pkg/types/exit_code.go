// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the fyes binary, the
// reference probe, and their tests.
//
// This package is a leaf dependency: it imports only the standard library.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is returned for --help, --version, and for a repeat stream
	// whose reader went away (broken pipe or full device).
	ExitSuccess ExitCode = 0
	// ExitFailure is returned for command-line errors and fatal write failures.
	ExitFailure ExitCode = 1
	// ExitSignalBase is added to a signal number by shells reporting a
	// process killed by that signal (e.g. 141 for SIGPIPE).
	ExitSignalBase ExitCode = 128
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// Signal reports the signal number encoded by a shell-style exit status
// (128+n), or 0 when the code does not describe a signal death.
func (c ExitCode) Signal() int {
	if c > ExitSignalBase && c <= 255 {
		return int(c - ExitSignalBase)
	}
	return 0
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
