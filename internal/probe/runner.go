// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/invowk/fyes/pkg/types"
)

type (
	// Invocation is one run of a binary.
	Invocation struct {
		// Path is the binary to execute.
		Path string
		// Argv0 replaces the program name seen by the binary when set.
		// GNU tools print it in error messages.
		Argv0 string
		// Args excludes the program name.
		Args []string
		// StdoutLimit stops reading stdout after this many bytes and closes
		// the pipe. Zero reads until the process exits.
		StdoutLimit int
	}

	// Result is the observable outcome of an Invocation.
	Result struct {
		Stdout []byte
		Stderr []byte
		// Code is the exit status, or 128 plus the signal number when the
		// process was killed by a signal.
		Code types.ExitCode
	}

	// Runner executes invocations.
	Runner interface {
		Run(ctx context.Context, inv Invocation) (*Result, error)
	}

	// ExecRunner runs invocations as child processes.
	ExecRunner struct {
		// Env is the child environment; nil inherits the current one.
		Env []string
		// Timeout bounds each run; zero means no limit beyond ctx.
		Timeout time.Duration
	}
)

// NewExecRunner returns an ExecRunner that sets LC_ALL to locale when it is
// not empty.
func NewExecRunner(locale string, timeout time.Duration) *ExecRunner {
	r := &ExecRunner{Timeout: timeout}
	if locale != "" {
		r.Env = append(os.Environ(), "LC_ALL="+locale)
	}
	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	if inv.Argv0 != "" {
		cmd.Args[0] = inv.Argv0
	}
	cmd.Env = r.Env

	var stdout, stderr bytes.Buffer
	cmd.Stderr = &stderr

	if inv.StdoutLimit <= 0 {
		cmd.Stdout = &stdout
		err := cmd.Run()
		return resultOf(cmd, stdout.Bytes(), stderr.Bytes(), err)
	}

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe for %s: %w", inv.Path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", inv.Path, err)
	}

	buf := make([]byte, inv.StdoutLimit)
	n, readErr := io.ReadFull(pipe, buf)
	// Closing the read end is how a line-limited consumer like head stops
	// the producer.
	_ = pipe.Close()
	err = cmd.Wait()
	if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read stdout of %s: %w", inv.Path, readErr)
	}
	return resultOf(cmd, buf[:n], stderr.Bytes(), err)
}

// resultOf converts a finished command into a Result. Nonzero exits and
// signal deaths are results, not errors.
func resultOf(cmd *exec.Cmd, stdout, stderr []byte, err error) (*Result, error) {
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("run %s: %w", cmd.Path, err)
	}
	if cmd.ProcessState == nil {
		return nil, fmt.Errorf("run %s: process did not start", cmd.Path)
	}
	return &Result{Stdout: stdout, Stderr: stderr, Code: exitCodeOf(cmd.ProcessState)}, nil
}

func exitCodeOf(state *os.ProcessState) types.ExitCode {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return types.ExitSignalBase + types.ExitCode(ws.Signal())
	}
	return types.ExitCode(state.ExitCode())
}
