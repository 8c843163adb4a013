// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/invowk/fyes/pkg/types"
)

// ExitError carries the status fyes-probe exits with when a command ran to
// completion but its result is a failure, such as verify finding a
// mismatch. execute unwraps it after fang has printed the message.
type ExitError struct {
	Code types.ExitCode
	// Err is what fang prints; nil prints only the status.
	Err error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %s", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
