// SPDX-License-Identifier: MPL-2.0

// Package emit is the fyes output engine.
//
// It writes help, version, or an option error once, or replicates the
// repeat line into a fixed buffer and writes that buffer until the
// destination refuses more output. Every write goes through WriteAll, which
// resumes partial writes from the first unwritten byte and retries writes
// interrupted before transferring data.
//
// # Exit status
//
//	help, version          0; 1 if stdout fails for any reason but EPIPE
//	option error           1, always; stdout is never touched
//	repeat                 0 on EPIPE or ENOSPC, 1 on any other failure
//
// # Signals
//
// Nothing here installs signal handlers. Writes use write(2) directly on the
// descriptor instead of *os.File, so a closed pipe comes back as EPIPE
// rather than the runtime's SIGPIPE exit, and other termination signals keep
// their default disposition.
package emit
