// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/fyes/internal/compat"
	"github.com/invowk/fyes/internal/config"
	"github.com/invowk/fyes/internal/issue"
	"github.com/invowk/fyes/internal/probe"
	"github.com/invowk/fyes/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// app carries what every subcommand needs. Tests replace the provider
// and the runner.
type app struct {
	provider  config.Provider
	newRunner func(cfg *config.Config) probe.Runner
	logger    *log.Logger
	stdout    io.Writer
	stderr    io.Writer

	cfgFile string
	cfgDir  string
	verbose bool
	cfg     *config.Config
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		provider: config.NewProvider(),
		newRunner: func(cfg *config.Config) probe.Runner {
			return probe.NewExecRunner(cfg.Reference.Locale, cfg.Reference.Timeout)
		},
		logger: log.NewWithOptions(stderr, log.Options{Prefix: config.AppName}),
		stdout: stdout,
		stderr: stderr,
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Specialize and verify fyes against a reference yes",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - specialize fyes to a reference yes") + `

fyes prints help, version and option errors from text compiled into the
binary. fyes-probe captures that text from an installed yes, writes it as
Go source, and compares a built fyes with the reference.

` + SubtitleStyle.Render("Examples:") + `
  fyes-probe detect                     Show what the reference prints
  fyes-probe snapshot -o yes.toml       Save the reference text
  fyes-probe generate --snapshot yes.toml
  fyes-probe verify --candidate ./fyes  Diff fyes against the reference`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd.Context())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./fyes-probe.cue)")

	root.AddCommand(
		newDetectCommand(a),
		newSnapshotCommand(a),
		newGenerateCommand(a),
		newVerifyCommand(a),
		newConfigCommand(a),
	)
	return root
}

func (a *app) loadConfig(ctx context.Context) error {
	cfg, source, err := a.provider.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile, ConfigDirPath: a.cfgDir})
	if err != nil {
		return fmt.Errorf("%w: %w", errConfigLoad, err)
	}
	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	if source != "" {
		a.logger.Debug("loaded config", "path", source)
	}
	a.cfg = cfg
	return nil
}

// reference builds the probe target from the loaded config.
func (a *app) reference() probe.Reference {
	return probe.Reference{
		Binary:     a.cfg.Reference.Binary,
		LongProbe:  a.cfg.Reference.LongProbe,
		ShortProbe: a.cfg.Reference.ShortProbe,
		Locale:     a.cfg.Reference.Locale,
	}
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// execute runs the command tree and returns the process exit status.
func execute(args []string) types.ExitCode {
	a := newApp(os.Stdout, os.Stderr)
	root := newRootCommand(a)
	root.SetArgs(args)

	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return types.ExitSuccess
	}

	a.renderIssue(err)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// renderIssue prints troubleshooting guidance for errors the catalog knows.
func (a *app) renderIssue(err error) {
	id, ok := issueFor(err)
	if !ok {
		return
	}
	var ae *issue.ActionableError
	if a.verbose && errors.As(err, &ae) {
		fmt.Fprintln(a.stderr, ae.Format(true))
	}
	md, renderErr := issue.Get(id).Render("auto")
	if renderErr != nil {
		a.logger.Debug("render issue", "err", renderErr)
		return
	}
	fmt.Fprint(a.stderr, md)
}

func issueFor(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, errCandidateNotFound):
		return issue.CandidateNotFoundId, true
	case errors.Is(err, exec.ErrNotFound):
		return issue.ReferenceNotFoundId, true
	case errors.Is(err, probe.ErrProbeNotFound):
		return issue.ProbeNotFoundId, true
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, errConfigLoad):
		return issue.ConfigLoadFailedId, true
	case errors.Is(err, compat.ErrInvalidBlobs):
		return issue.SnapshotInvalidId, true
	case errors.Is(err, errMismatch):
		return issue.VerifyMismatchId, true
	}
	return 0, false
}
