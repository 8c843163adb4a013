// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/fyes/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the name of the tool this package configures.
	AppName = "fyes-probe"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "fyes-probe"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. FYES_PROBE_REFERENCE_BINARY.
	EnvPrefix = "FYES_PROBE"

	// maxConfigFileSize bounds the config file read into memory.
	maxConfigFileSize int64 = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// loadWithOptions performs option-driven config loading and returns the
// config together with the file it came from ("" for defaults only).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("reference.binary", defaults.Reference.Binary)
	v.SetDefault("reference.long_probe", defaults.Reference.LongProbe)
	v.SetDefault("reference.short_probe", defaults.Reference.ShortProbe)
	v.SetDefault("reference.locale", defaults.Reference.Locale)
	v.SetDefault("reference.timeout", defaults.Reference.Timeout)
	v.SetDefault("generate.output", defaults.Generate.Output)
	v.SetDefault("generate.package", defaults.Generate.Package)
	v.SetDefault("generate.snapshot", defaults.Generate.Snapshot)
	v.SetDefault("verify.candidate", defaults.Verify.Candidate)
	v.SetDefault("verify.head_bytes", defaults.Verify.HeadBytes)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	path := opts.ConfigFilePath
	if path == "" {
		dir := opts.ConfigDirPath
		if dir == "" {
			dir = "."
		}
		if candidate := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt); fileExists(candidate) {
			path = candidate
		}
	} else if !fileExists(path) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run without --config to use the built-in defaults").
			Wrap(fmt.Errorf("config file not found: %s", path)).
			BuildError()
	}

	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the schema shown by 'fyes-probe config schema'").
				Wrap(err).
				BuildError()
		}
		resolvedPath = path
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for stale values").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// Schema returns the embedded CUE schema for config files.
func Schema() string {
	return configSchema
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Fields are optional, so validation is not concrete, and the result is
// decoded to a map so Viper keeps its defaults and environment overrides.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if int64(len(data)) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
