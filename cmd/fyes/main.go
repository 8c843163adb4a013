// SPDX-License-Identifier: MPL-2.0

// Command fyes repeatedly writes a line made of its arguments, or "y", to
// standard output until the reader goes away.
//
// Usage:
//
//	fyes [STRING]...
//	fyes OPTION
//
// Only --help and --version are recognized. Help, version and error text are
// compiled in from a reference yes; see internal/compat. fyes reads no
// environment variables, opens no files, and writes nothing but its output.
package main

import (
	"os"

	"github.com/invowk/fyes/internal/argv"
	"github.com/invowk/fyes/internal/compat"
	"github.com/invowk/fyes/internal/emit"
)

func main() {
	args := os.Args
	if len(args) > 0 {
		args = args[1:]
	}
	mode := argv.Classify(args)
	os.Exit(int(emit.New(compat.Default()).Run(mode)))
}
