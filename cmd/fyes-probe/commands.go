// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/fyes/internal/config"
	"github.com/invowk/fyes/internal/issue"
	"github.com/invowk/fyes/internal/probe"
	"github.com/invowk/fyes/pkg/types"
)

var (
	errConfigLoad        = errors.New("load config")
	errCandidateNotFound = errors.New("candidate binary not found")
	errMismatch          = errors.New("fyes differs from the reference")
)

// addReferenceFlags binds the flags that override reference.* settings.
func addReferenceFlags(cmd *cobra.Command) {
	cmd.Flags().String("reference", "", "reference yes binary (path or name in PATH)")
	cmd.Flags().String("long-probe", "", "long option the reference must reject")
	cmd.Flags().String("short-probe", "", "option character the reference must reject")
	cmd.Flags().String("locale", "", "LC_ALL for reference runs")
}

// applyFlags copies the reference flags and the command's own flags (name
// to *string or *int) into the loaded config, then validates it once.
func (a *app) applyFlags(cmd *cobra.Command, own map[string]any) error {
	c := a.cfg
	dsts := map[string]any{
		"reference":   &c.Reference.Binary,
		"long-probe":  &c.Reference.LongProbe,
		"short-probe": &c.Reference.ShortProbe,
		"locale":      &c.Reference.Locale,
	}
	maps.Copy(dsts, own)

	for name, dst := range dsts {
		if !cmd.Flags().Changed(name) {
			continue
		}
		var err error
		switch dst := dst.(type) {
		case *string:
			*dst, err = cmd.Flags().GetString(name)
		case *int:
			*dst, err = cmd.Flags().GetInt(name)
		default:
			err = fmt.Errorf("flag %s: unsupported destination %T", name, dst)
		}
		if err != nil {
			return err
		}
	}
	return c.Validate()
}

// detect probes the reference described by the config. Flags must have
// been applied.
func (a *app) detect(cmd *cobra.Command) (*probe.Snapshot, error) {
	ref := a.reference()
	a.logger.Debug("probing reference", "binary", ref.Binary, "long", ref.LongProbe, "short", ref.ShortProbe)
	snap, err := probe.Detect(cmd.Context(), a.newRunner(a.cfg), ref)
	if err != nil {
		return nil, err
	}
	a.logger.Info("captured reference", "path", snap.Reference, "version", snap.Version)
	return snap, nil
}

func newDetectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Probe the reference yes and show the captured text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.applyFlags(cmd, nil); err != nil {
				return err
			}
			snap, err := a.detect(cmd)
			if err != nil {
				return err
			}
			blobs, err := snap.ToBlobs()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render("Reference"), PathStyle.Render(snap.Reference))
			fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("version:"), snap.Version)
			fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("quotes: "), snap.Quotes)
			for _, b := range []struct{ name, text string }{
				{"help", blobs.Help},
				{"version", blobs.Version},
				{"unrecognized prefix", blobs.UnrecognizedPrefix},
				{"invalid prefix", blobs.InvalidPrefix},
				{"suffix", blobs.Suffix},
			} {
				fmt.Fprintf(out, "%s %d bytes %q\n", SubtitleStyle.Render(b.name+":"), len(b.text), preview(b.text))
			}
			return nil
		},
	}
	addReferenceFlags(cmd)
	return cmd
}

func preview(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

func newSnapshotCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Probe the reference yes and save the text as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.applyFlags(cmd, nil); err != nil {
				return err
			}
			snap, err := a.detect(cmd)
			if err != nil {
				return err
			}
			if _, err := snap.ToBlobs(); err != nil {
				return err
			}

			var buf bytes.Buffer
			if _, err := snap.WriteTo(&buf); err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			a.logger.Info("wrote snapshot", "path", output)
			return nil
		},
	}
	addReferenceFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "snapshot file (default stdout)")
	return cmd
}

func newGenerateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the compat blobs as Go source",
		Long: `Write the compat blobs as Go source.

Without --snapshot the reference is probed live. Run through go generate in
internal/compat, the default output replaces blobs_gen.go there.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := &a.cfg.Generate
			err := a.applyFlags(cmd, map[string]any{
				"output":   &gen.Output,
				"package":  &gen.Package,
				"snapshot": &gen.Snapshot,
			})
			if err != nil {
				return err
			}

			var snap *probe.Snapshot
			if gen.Snapshot != "" {
				snap, err = probe.ReadSnapshot(gen.Snapshot)
				if err != nil {
					return issue.NewErrorContext().
						WithOperation("read snapshot").
						WithResource(gen.Snapshot).
						Wrap(err).
						BuildError()
				}
			} else if snap, err = a.detect(cmd); err != nil {
				return err
			}

			var src bytes.Buffer
			if err := probe.Generate(&src, snap, gen.Package); err != nil {
				return err
			}
			if gen.Output == "-" {
				_, err = cmd.OutOrStdout().Write(src.Bytes())
				return err
			}
			if err := writeFileAtomic(gen.Output, src.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", gen.Output, err)
			}
			a.logger.Info("generated blobs", "path", gen.Output, "reference", snap.Version)
			return nil
		},
	}
	addReferenceFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "generated Go file, - for stdout")
	cmd.Flags().String("package", "", "package clause of the generated file")
	cmd.Flags().String("snapshot", "", "read blobs from a snapshot instead of probing")
	return cmd
}

// writeFileAtomic replaces path so that a failed run never leaves a
// truncated source file behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func newVerifyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Diff a built fyes against the reference yes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.applyFlags(cmd, map[string]any{
				"candidate":  &a.cfg.Verify.Candidate,
				"head-bytes": &a.cfg.Verify.HeadBytes,
			})
			if err != nil {
				return err
			}

			candidate, err := filepath.Abs(a.cfg.Verify.Candidate)
			if err == nil {
				_, err = os.Stat(candidate)
			}
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("locate fyes").
					WithResource(a.cfg.Verify.Candidate).
					Wrap(fmt.Errorf("%w: %w", errCandidateNotFound, err)).
					BuildError()
			}
			reference, err := exec.LookPath(a.cfg.Reference.Binary)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("locate reference yes").
					WithResource(a.cfg.Reference.Binary).
					Wrap(err).
					BuildError()
			}

			results, err := probe.Verify(cmd.Context(), a.newRunner(a.cfg),
				probe.Target{Path: candidate},
				probe.Target{Path: reference, Argv0: filepath.Base(a.cfg.Reference.Binary)},
				a.cfg.Verify.HeadBytes,
				probe.DefaultCases(),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				args := strings.Join(r.Case.Args, " ")
				if r.OK() {
					fmt.Fprintf(out, "%s %-24s %s\n", SuccessStyle.Render("ok  "), r.Case.Name, SubtitleStyle.Render(args))
					continue
				}
				failed++
				fmt.Fprintf(out, "%s %-24s %s\n", ErrorStyle.Render("FAIL"), r.Case.Name, SubtitleStyle.Render(args))
				for _, d := range r.Diffs {
					fmt.Fprintln(out, diffStyle.Render(d))
				}
			}
			if failed > 0 {
				return &ExitError{
					Code: types.ExitFailure,
					Err:  fmt.Errorf("%w: %d of %d cases", errMismatch, failed, len(results)),
				}
			}
			a.logger.Info("all cases match", "cases", len(results))
			return nil
		},
	}
	addReferenceFlags(cmd)
	cmd.Flags().String("candidate", "", "fyes binary under test")
	cmd.Flags().Int("head-bytes", 0, "bytes of repeat output to compare")
	return cmd
}

func newConfigCommand(a *app) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect fyes-probe configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.cfg
			out := cmd.OutOrStdout()
			for _, kv := range []struct {
				key   string
				value any
			}{
				{"reference.binary", c.Reference.Binary},
				{"reference.long_probe", c.Reference.LongProbe},
				{"reference.short_probe", c.Reference.ShortProbe},
				{"reference.locale", c.Reference.Locale},
				{"reference.timeout", c.Reference.Timeout},
				{"generate.output", c.Generate.Output},
				{"generate.package", c.Generate.Package},
				{"generate.snapshot", c.Generate.Snapshot},
				{"verify.candidate", c.Verify.Candidate},
				{"verify.head_bytes", c.Verify.HeadBytes},
				{"ui.verbose", c.UI.Verbose},
			} {
				fmt.Fprintf(out, "%s = %v\n", kv.key, kv.value)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the CUE schema of fyes-probe.cue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.Schema())
			return err
		},
	})

	return cfgCmd
}
