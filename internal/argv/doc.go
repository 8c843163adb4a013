// SPDX-License-Identifier: MPL-2.0

// Package argv classifies the fyes argument vector.
//
// Classification is a pure function of the arguments: it decides between
// help, version, a command-line error, or repeating a line built from the
// operands. Only --help and --version are recognized, and only as exact
// tokens. A leading "--" ends option scanning. Arguments are opaque byte
// strings; nothing is decoded, escaped, or copied.
package argv
