// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"io"

	"golang.org/x/sys/unix"
)

const (
	// Stdout is the standard output descriptor.
	Stdout FD = 1
	// Stderr is the standard error descriptor.
	Stderr FD = 2
)

// FD writes to a file descriptor with one write(2) per call and no
// buffering, locking, or poller registration.
type FD int

// Write implements io.Writer. Errors are unix.Errno values.
func (fd FD) Write(p []byte) (int, error) {
	n, err := unix.Write(int(fd), p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// closedFD stands in for a descriptor that was closed when the process
// started. Every write fails with EBADF, as it would have without the
// runtime's substitute.
type closedFD struct{}

func (closedFD) Write([]byte) (int, error) { return 0, unix.EBADF }

// Standard returns the writer for a standard descriptor. The Go runtime
// reopens descriptors 0-2 on /dev/null when they are closed at exec; such a
// descriptor is reported as closed rather than written to.
func Standard(fd FD) io.Writer {
	if reopened(fd) {
		return closedFD{}
	}
	return fd
}
