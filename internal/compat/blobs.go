// SPDX-License-Identifier: MPL-2.0

// Package compat holds the text fyes prints verbatim: help, version, and the
// fixed pieces of its two option error messages.
//
// The text is captured from a reference yes by fyes-probe and compiled in as
// string constants, so it sits in read-only data and is never formatted,
// translated, or reloaded at run time.
package compat

//go:generate go run ../../cmd/fyes-probe generate --locale C --output blobs_gen.go

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/fyes/internal/argv"
)

// ErrInvalidBlobs is the sentinel error wrapped by InvalidBlobError.
var ErrInvalidBlobs = errors.New("invalid compatibility blobs")

type (
	// Blobs is the complete set of reference text.
	//
	// An error message is UnrecognizedPrefix or InvalidPrefix, then the
	// offending option text, then Suffix (closing quote, newline, and the
	// "Try ... --help" line).
	Blobs struct {
		Help               string
		Version            string
		UnrecognizedPrefix string
		InvalidPrefix      string
		Suffix             string
	}

	// InvalidBlobError names the blob that failed validation.
	InvalidBlobError struct {
		Field  string
		Reason string
	}
)

// Default returns the blobs compiled into this build.
func Default() Blobs {
	return Blobs{
		Help:               helpText,
		Version:            versionText,
		UnrecognizedPrefix: unrecognizedPrefix,
		InvalidPrefix:      invalidPrefix,
		Suffix:             errorSuffix,
	}
}

// Error implements the error interface.
func (e *InvalidBlobError) Error() string {
	return fmt.Sprintf("invalid %s blob: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidBlobs for errors.Is() compatibility.
func (e *InvalidBlobError) Unwrap() error { return ErrInvalidBlobs }

// Prefix returns the message prefix for an option error kind.
func (b Blobs) Prefix(kind argv.OptionError) string {
	if kind == argv.InvalidShortOption {
		return b.InvalidPrefix
	}
	return b.UnrecognizedPrefix
}

// Validate checks the shape every reference yes produces: help, version and
// suffix end in a newline, and the prefixes are single-line fragments.
func (b Blobs) Validate() error {
	var errs []error
	for _, f := range []struct {
		name, value string
		terminated  bool
	}{
		{"help", b.Help, true},
		{"version", b.Version, true},
		{"unrecognized-option prefix", b.UnrecognizedPrefix, false},
		{"invalid-option prefix", b.InvalidPrefix, false},
		{"error suffix", b.Suffix, true},
	} {
		switch {
		case f.value == "":
			errs = append(errs, &InvalidBlobError{Field: f.name, Reason: "empty"})
		case f.terminated && !strings.HasSuffix(f.value, "\n"):
			errs = append(errs, &InvalidBlobError{Field: f.name, Reason: "missing trailing newline"})
		case !f.terminated && strings.ContainsRune(f.value, '\n'):
			errs = append(errs, &InvalidBlobError{Field: f.name, Reason: "contains a newline"})
		}
	}
	return errors.Join(errs...)
}
