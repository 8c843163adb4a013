// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"io"

	"github.com/invowk/fyes/internal/argv"
)

// Replicate fills buf with as many copies of the operand line and its
// newline as fit, and returns the number of bytes used. The result is
// always a whole number of lines. ok is false when one line does not fit.
func Replicate(buf []byte, ops argv.Operands) (n int, ok bool) {
	size := ops.LineLen() + 1
	if size > len(buf) {
		return 0, false
	}

	n = copyLine(buf, ops)
	total := len(buf) - len(buf)%size
	for n < total {
		n += copy(buf[n:total], buf[:n])
	}
	return n, true
}

// copyLine writes one line into buf, which must have room for it.
func copyLine(buf []byte, ops argv.Operands) int {
	n := 0
	last := ops.Len() - 1
	for i := range ops.Len() {
		n += copy(buf[n:], ops.At(i))
		if i < last {
			buf[n] = ' '
			n++
		}
	}
	buf[n] = '\n'
	return n + 1
}

// gather streams a sequence of strings to w through buf, writing only when
// buf fills up or on flush.
type gather struct {
	w   io.Writer
	buf []byte
	n   int
}

func (g *gather) writeString(s string) error {
	for len(s) > 0 {
		if g.n == len(g.buf) {
			if err := g.flush(); err != nil {
				return err
			}
		}
		c := copy(g.buf[g.n:], s)
		g.n += c
		s = s[c:]
	}
	return nil
}

func (g *gather) flush() error {
	err := WriteAll(g.w, g.buf[:g.n])
	g.n = 0
	return err
}

// writeLine streams one operand line and its newline.
func (g *gather) writeLine(ops argv.Operands) error {
	if ops.Len() == 0 {
		return g.writeString("\n")
	}
	last := ops.Len() - 1
	for i := range ops.Len() {
		if err := g.writeString(ops.At(i)); err != nil {
			return err
		}
		sep := " "
		if i == last {
			sep = "\n"
		}
		if err := g.writeString(sep); err != nil {
			return err
		}
	}
	return nil
}
