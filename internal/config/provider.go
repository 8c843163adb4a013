// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions selects where configuration is read from.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath is searched for fyes-probe.cue instead of the working
		// directory when set.
		ConfigDirPath string
	}

	// Provider produces the fyes-probe configuration.
	Provider interface {
		// Load returns the configuration and the file it was read from, or ""
		// when only defaults and the environment applied.
		Load(ctx context.Context, opts LoadOptions) (*Config, string, error)
	}

	// fileProvider layers fyes-probe.cue and FYES_PROBE_* variables over
	// DefaultConfig.
	fileProvider struct{}
)

// NewProvider returns the Provider fyes-probe uses outside tests.
func NewProvider() Provider {
	return fileProvider{}
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
