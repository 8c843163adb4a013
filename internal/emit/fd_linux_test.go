// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"errors"
	"os"
	"testing"

	"github.com/invowk/fyes/internal/argv"
	"github.com/invowk/fyes/pkg/types"
	"golang.org/x/sys/unix"
)

func TestStandard_ReopenedNull(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flag       int
		wantClosed bool
	}{
		// What the runtime installs in place of a closed descriptor.
		{"read-write", os.O_RDWR, true},
		// What a shell >/dev/null redirection installs.
		{"write-only", os.O_WRONLY, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := os.OpenFile(os.DevNull, tt.flag, 0)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			w := Standard(FD(f.Fd()))
			_, isClosed := w.(closedFD)
			if isClosed != tt.wantClosed {
				t.Fatalf("Standard() = %T, want closed %v", w, tt.wantClosed)
			}
			err = WriteAll(w, []byte("y\n"))
			if tt.wantClosed && !errors.Is(err, unix.EBADF) {
				t.Errorf("WriteAll() = %v, want EBADF", err)
			}
			if !tt.wantClosed && err != nil {
				t.Errorf("WriteAll() = %v, want nil", err)
			}
		})
	}
}

func TestStandard_PipeAndRegularFile(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if got := Standard(FD(w.Fd())); got != FD(w.Fd()) {
		t.Errorf("Standard(pipe) = %T, want FD", got)
	}

	f, err := os.OpenFile(t.TempDir()+"/out", os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := Standard(FD(f.Fd())); got != FD(f.Fd()) {
		t.Errorf("Standard(read-write file) = %T, want FD", got)
	}
}

func TestEngine_Run_ClosedAtStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want types.ExitCode
	}{
		{[]string{"--help"}, types.ExitFailure},
		{[]string{"--version"}, types.ExitFailure},
		{nil, types.ExitFailure},
		{[]string{"hello"}, types.ExitFailure},
	}
	for _, tt := range tests {
		e := New(testBlobs,
			WithStdout(closedFD{}),
			WithStderr(closedFD{}),
			WithBuffer(make([]byte, 64)),
		)
		if got := e.Run(argv.Classify(tt.args)); got != tt.want {
			t.Errorf("Run(%q) = %s, want %s", tt.args, got, tt.want)
		}
	}
}
