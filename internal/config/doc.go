// SPDX-License-Identifier: MPL-2.0

// Package config loads fyes-probe configuration using Viper with CUE as the
// file format.
//
// Settings come from, in increasing precedence: built-in defaults, a CUE file
// (fyes-probe.cue in the working directory, or the path given with
// --config), and FYES_PROBE_* environment variables. The file is validated
// against an embedded schema (config_schema.cue) before it reaches Viper.
//
// The fyes binary itself has no configuration; nothing here is linked into it.
package config
