// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// scriptedWriter is an io.Writer that misbehaves on request: it accepts at
// most maxChunk bytes per call, fails every eintrEvery'th call with EINTR
// before writing anything, and fails with failErr once limit bytes have been
// accepted. A negative limit means no limit.
type scriptedWriter struct {
	out        bytes.Buffer
	maxChunk   int
	eintrEvery int
	limit      int
	failErr    error

	calls int
	sizes []int
}

func (w *scriptedWriter) Write(p []byte) (int, error) {
	w.calls++
	w.sizes = append(w.sizes, len(p))
	if w.eintrEvery > 0 && w.calls%w.eintrEvery == 0 {
		return 0, unix.EINTR
	}
	if w.limit >= 0 && w.out.Len() >= w.limit {
		return 0, w.failErr
	}

	n := len(p)
	if w.maxChunk > 0 && n > w.maxChunk {
		n = w.maxChunk
	}
	if w.limit >= 0 && n > w.limit-w.out.Len() {
		n = w.limit - w.out.Len()
	}
	w.out.Write(p[:n])
	return n, nil
}

// unlimited returns a writer that accepts everything.
func unlimited() *scriptedWriter {
	return &scriptedWriter{limit: -1}
}

// isRepetition reports whether out is a prefix of line repeated forever.
func isRepetition(out []byte, line string) bool {
	for i, b := range out {
		if b != line[i%len(line)] {
			return false
		}
	}
	return true
}
