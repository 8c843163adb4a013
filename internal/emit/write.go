// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"errors"
	"io"

	"github.com/invowk/fyes/internal/argv"
	"golang.org/x/sys/unix"
)

const (
	// Written means every byte reached the destination.
	Written Outcome = iota
	// Closed means the reader is gone and the process should stop quietly.
	Closed
	// Failed means the write failed and the process should exit nonzero.
	Failed
)

// Outcome classifies the result of a write for exit-status purposes.
type Outcome uint8

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case Closed:
		return "closed"
	default:
		return "failed"
	}
}

// WriteAll writes p to w, looping over short writes and EINTR until all of
// p is written or w reports another error. A write that makes no progress
// without an error returns io.ErrShortWrite.
func WriteAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		p = p[n:]
		switch {
		case err == nil:
			if n == 0 {
				return io.ErrShortWrite
			}
		case errors.Is(err, unix.EINTR):
		default:
			return err
		}
	}
	return nil
}

// OutcomeOf classifies err from WriteAll for a mode of the given kind.
// EPIPE is a clean stop for every mode; ENOSPC is one only while repeating.
func OutcomeOf(err error, kind argv.Kind) Outcome {
	switch {
	case err == nil:
		return Written
	case errors.Is(err, unix.EPIPE):
		return Closed
	case kind == argv.Repeat && errors.Is(err, unix.ENOSPC):
		return Closed
	default:
		return Failed
	}
}
