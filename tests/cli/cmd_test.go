// SPDX-License-Identifier: MPL-2.0

// Package cli contains integration tests that run the built fyes binary
// through testscript.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
)

// closedTimeout bounds a fyes run whose output goes nowhere.
const closedTimeout = 10 * time.Second

var (
	// binaryPath is the path to the built fyes binary.
	binaryPath string
	// projectRoot is the path to the fyes module root.
	projectRoot string
)

func TestMain(m *testing.M) {
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}

	// Walk up to find go.mod
	projectRoot = wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			panic("could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	binDir, err := os.MkdirTemp("", "fyes-cli-")
	if err != nil {
		panic("failed to create bin directory: " + err.Error())
	}
	binaryPath = filepath.Join(binDir, "fyes")

	cmd := exec.CommandContext(context.Background(), "go", "build", "-trimpath", "-o", binaryPath, "./cmd/fyes")
	cmd.Dir = projectRoot
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build fyes: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(binDir)
	os.Exit(code)
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			binDir := filepath.Dir(binaryPath)
			env.Setenv("PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"yeshead":   cmdYesHead,
			"yesfull":   cmdYesFull,
			"yesclosed": cmdYesClosed,
			"yesnofile": cmdYesNoFile,
		},
		ContinueOnError: true,
	})
}

// cmdYesHead runs fyes with the remaining arguments, copies the first N
// lines of its output to stdout, closes the pipe, and prints the exit
// status fyes ended with.
//
//	yeshead N [args...]
func cmdYesHead(ts *testscript.TestScript, neg bool, args []string) {
	n, rest := lineCount(ts, "yeshead", neg, args)
	headLines(ts, exec.Command(binaryPath, rest...), n)
}

// cmdYesNoFile is yeshead with RLIMIT_NOFILE lowered to 3, so fyes has
// no descriptor to spare beyond the standard three.
//
//	yesnofile N [args...]
func cmdYesNoFile(ts *testscript.TestScript, neg bool, args []string) {
	n, rest := lineCount(ts, "yesnofile", neg, args)
	cmd := exec.Command("sh", append([]string{"-c", `ulimit -n 3 && exec "$0" "$@"`, binaryPath}, rest...)...)
	headLines(ts, cmd, n)
}

func lineCount(ts *testscript.TestScript, name string, neg bool, args []string) (int, []string) {
	if neg {
		ts.Fatalf("unsupported: ! %s", name)
	}
	if len(args) < 1 {
		ts.Fatalf("usage: %s N [args...]", name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		ts.Fatalf("%s: bad line count %q", name, args[0])
	}
	return n, args[1:]
}

func headLines(ts *testscript.TestScript, cmd *exec.Cmd, n int) {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	pipe, err := cmd.StdoutPipe()
	ts.Check(err)
	ts.Check(cmd.Start())

	r := bufio.NewReader(pipe)
	for range n {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			ts.Fatalf("read: %v", err)
		}
		fmt.Fprint(ts.Stdout(), line)
		if err != nil {
			break
		}
	}
	pipe.Close()
	fmt.Fprintf(ts.Stdout(), "exit status %d\n", waitStatus(ts, cmd.Wait(), cmd))
	fmt.Fprint(ts.Stderr(), stderr.String())
}

// cmdYesClosed runs fyes with descriptor FD (1 or 2) closed at exec and
// prints whatever reached the other stream and the exit status. fyes that
// does not stop within closedTimeout is killed and reports -1.
//
//	yesclosed FD [args...]
func cmdYesClosed(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! yesclosed")
	}
	if len(args) < 1 || (args[0] != "1" && args[0] != "2") {
		ts.Fatalf("usage: yesclosed 1|2 [args...]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), closedTimeout)
	defer cancel()
	script := `exec "$0" "$@" ` + args[0] + `>&-`
	cmd := exec.CommandContext(ctx, "sh", append([]string{"-c", script, binaryPath}, args[1:]...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	status := waitStatus(ts, cmd.Run(), cmd)

	fmt.Fprint(ts.Stdout(), stdout.String())
	fmt.Fprintf(ts.Stdout(), "exit status %d\n", status)
	fmt.Fprint(ts.Stderr(), stderr.String())
}

// cmdYesFull runs fyes with stdout on /dev/full and prints its exit status.
//
//	yesfull [args...]
func cmdYesFull(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! yesfull")
	}
	full, err := os.OpenFile("/dev/full", os.O_WRONLY, 0)
	if err != nil {
		ts.Fatalf("yesfull: %v", err)
	}
	defer full.Close()

	cmd := exec.Command(binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stdout = full
	cmd.Stderr = &stderr
	fmt.Fprintf(ts.Stdout(), "exit status %d\n", waitStatus(ts, cmd.Run(), cmd))
	fmt.Fprint(ts.Stderr(), stderr.String())
}

// waitStatus returns the exit code, or -1 when fyes was killed by a signal.
func waitStatus(ts *testscript.TestScript, err error, cmd *exec.Cmd) int {
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		ts.Fatalf("run fyes: %v", err)
	}
	return cmd.ProcessState.ExitCode()
}
