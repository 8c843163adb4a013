// SPDX-License-Identifier: MPL-2.0

package argv

import "strings"

const (
	// Repeat emits the operand line forever. It is the zero Kind.
	Repeat Kind = iota
	// Help prints the help text.
	Help
	// Version prints the version text.
	Version
	// Error reports an unrecognized or invalid option.
	Error
)

const (
	// UnrecognizedLongOption is a "--name" token other than --help and --version.
	UnrecognizedLongOption OptionError = iota + 1
	// InvalidShortOption is any "-x..." token; no short options exist.
	InvalidShortOption
)

// DefaultLine is repeated when no operands are given.
const DefaultLine = "y"

// defaultOperands backs the operand view used when argv has no operands.
var defaultOperands = []string{DefaultLine}

type (
	// Kind selects what the output engine does.
	Kind uint8

	// OptionError identifies which error template applies to an Error mode.
	OptionError uint8

	// Mode is the result of classifying an argument vector.
	Mode struct {
		Kind Kind
		// Err and Offending are set for Error modes only. Offending is the
		// complete argument that triggered the error, byte for byte.
		Err       OptionError
		Offending string
		// Operands is set for Repeat modes only.
		Operands Operands
	}

	// Operands is a read-only view over an argument slice that leaves out
	// the "--" sentinel which ended option scanning, if any.
	Operands struct {
		args []string
		// cut is the index of the dropped "--" plus one; zero means none.
		cut int
	}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Repeat:
		return "repeat"
	case Help:
		return "help"
	case Version:
		return "version"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// String returns the error kind name.
func (e OptionError) String() string {
	switch e {
	case UnrecognizedLongOption:
		return "unrecognized long option"
	case InvalidShortOption:
		return "invalid short option"
	default:
		return "none"
	}
}

// Len returns the number of operands.
func (o Operands) Len() int {
	if o.cut > 0 {
		return len(o.args) - 1
	}
	return len(o.args)
}

// At returns the i'th operand.
func (o Operands) At(i int) string {
	if o.cut > 0 && i >= o.cut-1 {
		i++
	}
	return o.args[i]
}

// LineLen returns the length of the joined line, without the newline.
func (o Operands) LineLen() int {
	n := o.Len()
	if n == 0 {
		return 0
	}
	size := n - 1
	for i := range n {
		size += len(o.At(i))
	}
	return size
}

// Line joins the operands with single spaces.
func (o Operands) Line() string {
	var b strings.Builder
	b.Grow(o.LineLen())
	for i := range o.Len() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(o.At(i))
	}
	return b.String()
}

// Line returns the line a Repeat mode emits, or "" for other kinds.
func (m Mode) Line() string {
	if m.Kind != Repeat {
		return ""
	}
	return m.Operands.Line()
}
