// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/invowk/fyes/internal/issue"
)

var (
	// ErrProbeNotFound is returned when an error message does not echo the
	// rejected option back.
	ErrProbeNotFound = errors.New("probe text not found in reference output")

	// ErrUnexpectedExit is returned when the reference exits with the wrong
	// status for a probe.
	ErrUnexpectedExit = errors.New("unexpected reference exit status")
)

// Reference describes the yes binary to probe.
type Reference struct {
	// Binary is a path or a name looked up in PATH.
	Binary string
	// LongProbe is a long option the reference must reject, with its dashes.
	LongProbe string
	// ShortProbe is a single option character the reference must reject.
	ShortProbe string
	// Locale is recorded in the snapshot; the Runner is responsible for
	// applying it.
	Locale string
}

// Detect probes ref and returns the captured blobs.
//
// Each error message is split at the echoed probe: everything before it is
// the prefix, and the rest of line 1 (the closing quote) plus line 2 becomes
// the suffix shared by both messages.
func Detect(ctx context.Context, r Runner, ref Reference) (*Snapshot, error) {
	path, err := exec.LookPath(ref.Binary)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("locate reference yes").
			WithResource(ref.Binary).
			WithSuggestion("Install GNU coreutils or set reference.binary").
			Wrap(err).
			BuildError()
	}
	argv0 := filepath.Base(ref.Binary)

	run := func(args ...string) (*Result, error) {
		res, err := r.Run(ctx, Invocation{Path: path, Argv0: argv0, Args: args})
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("run reference yes").
				WithResource(path).
				Wrap(err).
				BuildError()
		}
		return res, nil
	}

	help, err := run("--help")
	if err != nil {
		return nil, err
	}
	if err := expectSuccess("--help", help); err != nil {
		return nil, err
	}
	version, err := run("--version")
	if err != nil {
		return nil, err
	}
	if err := expectSuccess("--version", version); err != nil {
		return nil, err
	}

	long, err := run(ref.LongProbe)
	if err != nil {
		return nil, err
	}
	unrecognized, suffix, err := splitError(ref.LongProbe, long, bytes.Index)
	if err != nil {
		return nil, err
	}

	shortOpt := "-" + ref.ShortProbe
	short, err := run(shortOpt)
	if err != nil {
		return nil, err
	}
	// The short probe is a single character; search from the end so a
	// program name containing it does not match.
	invalid, _, err := splitError(ref.ShortProbe, short, bytes.LastIndex)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Reference:  path,
		Version:    firstLine(version.Stdout),
		Locale:     ref.Locale,
		LongProbe:  ref.LongProbe,
		ShortProbe: ref.ShortProbe,
		Quotes:     QuoteStyle(unrecognized),
		CapturedAt: time.Now().UTC().Truncate(time.Second),
		Blobs: SnapshotBlobs{
			Help:               help.Stdout,
			Version:            version.Stdout,
			UnrecognizedPrefix: unrecognized,
			InvalidPrefix:      invalid,
			Suffix:             suffix,
		},
	}, nil
}

func expectSuccess(opt string, res *Result) error {
	if !res.Code.IsSuccess() {
		return fmt.Errorf("%w: %s exited %s", ErrUnexpectedExit, opt, res.Code)
	}
	if len(res.Stderr) != 0 {
		return fmt.Errorf("%w: %s wrote to stderr", ErrUnexpectedExit, opt)
	}
	return nil
}

// splitError splits the two-line error on res.Stderr around probe.
func splitError(probe string, res *Result, index func(s, sep []byte) int) (prefix, suffix Blob, err error) {
	if res.Code.IsSuccess() {
		return nil, nil, fmt.Errorf("%w: %q was accepted", ErrUnexpectedExit, probe)
	}
	line1, line2, ok := bytes.Cut(res.Stderr, []byte("\n"))
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q: single-line error message", ErrProbeNotFound, probe)
	}
	line2 = bytes.TrimSuffix(line2, []byte("\n"))

	pos := index(line1, []byte(probe))
	if pos < 0 {
		return nil, nil, issue.NewErrorContext().
			WithOperation("split reference error message").
			WithResource(string(line1)).
			WithSuggestion("Choose a probe the reference echoes back verbatim").
			Wrap(fmt.Errorf("%w: %q", ErrProbeNotFound, probe)).
			BuildError()
	}

	prefix = bytes.Clone(line1[:pos])
	suffix = make(Blob, 0, len(line1)-pos-len(probe)+len(line2)+2)
	suffix = append(suffix, line1[pos+len(probe):]...)
	suffix = append(suffix, '\n')
	suffix = append(suffix, line2...)
	suffix = append(suffix, '\n')
	return prefix, suffix, nil
}

func firstLine(b []byte) string {
	line, _, _ := bytes.Cut(b, []byte("\n"))
	return string(line)
}

// QuoteStyle names the opening quote that ends an error prefix.
func QuoteStyle(prefix []byte) string {
	r, _ := utf8.DecodeLastRune(prefix)
	switch r {
	case '\'':
		return "ASCII apostrophe"
	case '\u2018', '\u201c':
		return "UTF-8 curly quotes"
	default:
		return "unknown"
	}
}
