// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"go/token"
	"time"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the complete fyes-probe configuration.
	Config struct {
		Reference ReferenceConfig `json:"reference" mapstructure:"reference"`
		Generate  GenerateConfig  `json:"generate" mapstructure:"generate"`
		Verify    VerifyConfig    `json:"verify" mapstructure:"verify"`
		UI        UIConfig        `json:"ui" mapstructure:"ui"`
	}

	// ReferenceConfig describes how to run the reference yes.
	ReferenceConfig struct {
		Binary     string        `json:"binary" mapstructure:"binary"`
		LongProbe  string        `json:"long_probe" mapstructure:"long_probe"`
		ShortProbe string        `json:"short_probe" mapstructure:"short_probe"`
		Locale     string        `json:"locale" mapstructure:"locale"`
		Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	// GenerateConfig controls blob source generation.
	GenerateConfig struct {
		// Output is the generated Go file.
		Output string `json:"output" mapstructure:"output"`
		// Package is the package clause of the generated file.
		Package string `json:"package" mapstructure:"package"`
		// Snapshot, when set, is read instead of probing the reference.
		Snapshot string `json:"snapshot" mapstructure:"snapshot"`
	}

	// VerifyConfig controls differential verification.
	VerifyConfig struct {
		// Candidate is the fyes binary under test.
		Candidate string `json:"candidate" mapstructure:"candidate"`
		// HeadBytes bounds how much repeat output is compared.
		HeadBytes int `json:"head_bytes" mapstructure:"head_bytes"`
	}

	// UIConfig holds output preferences.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidConfigError names the setting that failed validation.
	InvalidConfigError struct {
		Key    string
		Reason string
	}
)

// DefaultConfig returns the configuration used when nothing is set.
// The probe strings are the ones build tooling has always used against GNU yes.
func DefaultConfig() *Config {
	return &Config{
		Reference: ReferenceConfig{
			Binary:     "yes",
			LongProbe:  "--bogus_test_option_xyz",
			ShortProbe: "Z",
			Timeout:    10 * time.Second,
		},
		Generate: GenerateConfig{
			Output:  "blobs_gen.go",
			Package: "compat",
		},
		Verify: VerifyConfig{
			Candidate: "./fyes",
			HeadBytes: 200000,
		},
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Key, e.Reason)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the constraints environment overrides can break after the
// CUE schema has been applied.
func (c *Config) Validate() error {
	var errs []error
	if c.Reference.Binary == "" {
		errs = append(errs, &InvalidConfigError{Key: "reference.binary", Reason: "must not be empty"})
	}
	if len(c.Reference.LongProbe) < 3 || c.Reference.LongProbe[:2] != "--" {
		errs = append(errs, &InvalidConfigError{Key: "reference.long_probe", Reason: "must be a --long option"})
	}
	if len(c.Reference.ShortProbe) != 1 || c.Reference.ShortProbe == "-" {
		errs = append(errs, &InvalidConfigError{Key: "reference.short_probe", Reason: "must be a single option character"})
	}
	if c.Reference.Timeout <= 0 {
		errs = append(errs, &InvalidConfigError{Key: "reference.timeout", Reason: "must be positive"})
	}
	if !token.IsIdentifier(c.Generate.Package) {
		errs = append(errs, &InvalidConfigError{Key: "generate.package", Reason: "must be a Go package name"})
	}
	if c.Generate.Output == "" {
		errs = append(errs, &InvalidConfigError{Key: "generate.output", Reason: "must not be empty"})
	}
	if c.Verify.Candidate == "" {
		errs = append(errs, &InvalidConfigError{Key: "verify.candidate", Reason: "must not be empty"})
	}
	if c.Verify.HeadBytes <= 0 {
		errs = append(errs, &InvalidConfigError{Key: "verify.head_bytes", Reason: "must be positive"})
	}
	return errors.Join(errs...)
}
