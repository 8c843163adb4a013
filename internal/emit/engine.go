// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"io"

	"github.com/invowk/fyes/internal/argv"
	"github.com/invowk/fyes/internal/compat"
	"github.com/invowk/fyes/pkg/types"
)

// BufferSize is the size of the default output buffer. Repeat mode fills it
// with whole lines, so one write(2) moves up to this many bytes.
const BufferSize = 64 << 10

// buffer is the default output buffer. It lives in static storage so the
// write loop allocates nothing.
var buffer [BufferSize]byte

type (
	// Engine writes the output for a classified Mode.
	// An Engine is not safe for concurrent use.
	Engine struct {
		stdout io.Writer
		stderr io.Writer
		blobs  compat.Blobs
		buf    []byte
	}

	// Option configures an Engine.
	Option func(*Engine)
)

// New creates an Engine for blobs that writes to the standard descriptors
// through the package buffer. Only one default Engine may run at a time.
func New(blobs compat.Blobs, opts ...Option) *Engine {
	e := &Engine{
		stdout: Standard(Stdout),
		stderr: Standard(Stderr),
		blobs:  blobs,
		buf:    buffer[:],
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithStdout sets the destination for help, version, and repeat output.
func WithStdout(w io.Writer) Option {
	return func(e *Engine) { e.stdout = w }
}

// WithStderr sets the destination for option errors.
func WithStderr(w io.Writer) Option {
	return func(e *Engine) { e.stderr = w }
}

// WithBuffer replaces the package buffer. buf must not be empty.
func WithBuffer(buf []byte) Option {
	return func(e *Engine) { e.buf = buf }
}

// Run writes the output for m and returns the exit status. For repeat modes
// Run returns only after a write fails.
func (e *Engine) Run(m argv.Mode) types.ExitCode {
	switch m.Kind {
	case argv.Help:
		return e.once(m.Kind, e.blobs.Help)
	case argv.Version:
		return e.once(m.Kind, e.blobs.Version)
	case argv.Error:
		e.report(m)
		return types.ExitFailure
	default:
		return exitCode(OutcomeOf(e.repeat(m.Operands), argv.Repeat))
	}
}

func (e *Engine) once(kind argv.Kind, text string) types.ExitCode {
	g := gather{w: e.stdout, buf: e.buf}
	err := g.writeString(text)
	if err == nil {
		err = g.flush()
	}
	return exitCode(OutcomeOf(err, kind))
}

// report writes an option error to stderr. Short options are quoted by
// their first option character, the way getopt reports them; long options
// are quoted whole. A failed write changes nothing: the status is 1 anyway.
func (e *Engine) report(m argv.Mode) {
	opt := m.Offending
	if m.Err == argv.InvalidShortOption && len(opt) > 1 {
		opt = opt[1:2]
	}

	g := gather{w: e.stderr, buf: e.buf}
	for _, s := range [...]string{e.blobs.Prefix(m.Err), opt, e.blobs.Suffix} {
		if g.writeString(s) != nil {
			return
		}
	}
	_ = g.flush()
}

// repeat writes the operand line until a write fails, and returns that
// failure.
func (e *Engine) repeat(ops argv.Operands) error {
	if n, ok := Replicate(e.buf, ops); ok {
		chunk := e.buf[:n]
		for {
			if err := WriteAll(e.stdout, chunk); err != nil {
				return err
			}
		}
	}

	// The line is longer than the buffer: stream it one line at a time.
	g := gather{w: e.stdout, buf: e.buf}
	for {
		if err := g.writeLine(ops); err != nil {
			return err
		}
		if err := g.flush(); err != nil {
			return err
		}
	}
}

func exitCode(o Outcome) types.ExitCode {
	if o == Failed {
		return types.ExitFailure
	}
	return types.ExitSuccess
}
