// SPDX-License-Identifier: MPL-2.0

package emit

import "golang.org/x/sys/unix"

// reopened reports whether fd is /dev/null opened read-write, which is how
// the runtime fills a descriptor closed at exec. A shell redirection to
// /dev/null opens it write-only.
func reopened(fd FD) bool {
	fl, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil || fl&unix.O_ACCMODE != unix.O_RDWR {
		return false
	}
	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return false
	}
	rdev := uint64(st.Rdev)
	return st.Mode&unix.S_IFMT == unix.S_IFCHR && unix.Major(rdev) == 1 && unix.Minor(rdev) == 3
}
