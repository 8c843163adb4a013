// SPDX-License-Identifier: MPL-2.0

package argv

const (
	helpOption    = "--help"
	versionOption = "--version"
	endOfOptions  = "--"
)

// Classify decides the Mode for args, which excludes the program name.
//
// Tokens are examined left to right until "--". The first token that is
// --help, --version, another "--name", or a "-x" short option decides the
// mode. Otherwise every token except the first "--" is an operand. A lone
// "-" is an operand.
//
// The returned Mode refers to args without copying; callers must not modify
// args while the Mode is in use.
func Classify(args []string) Mode {
	cut := 0
	for i, arg := range args {
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		if arg[1] != '-' {
			return Mode{Kind: Error, Err: InvalidShortOption, Offending: arg}
		}
		switch arg {
		case endOfOptions:
			cut = i + 1
		case helpOption:
			return Mode{Kind: Help}
		case versionOption:
			return Mode{Kind: Version}
		default:
			return Mode{Kind: Error, Err: UnrecognizedLongOption, Offending: arg}
		}
		break
	}

	ops := Operands{args: args, cut: cut}
	if ops.Len() == 0 {
		ops = Operands{args: defaultOperands}
	}
	return Mode{Kind: Repeat, Operands: ops}
}
