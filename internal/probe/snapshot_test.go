// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/invowk/fyes/internal/compat"
)

func defaultSnapshot() *Snapshot {
	b := compat.Default()
	return &Snapshot{
		Reference:  "/usr/bin/yes",
		Version:    "yes (GNU coreutils) 9.4",
		Locale:     "C",
		LongProbe:  "--bogus_test_option_xyz",
		ShortProbe: "Z",
		CapturedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Blobs: SnapshotBlobs{
			Help:               Blob(b.Help),
			Version:            Blob(b.Version),
			UnrecognizedPrefix: Blob(b.UnrecognizedPrefix),
			InvalidPrefix:      Blob(b.InvalidPrefix),
			Suffix:             Blob(b.Suffix),
		},
	}
}

func TestSnapshot_FileRoundTrip(t *testing.T) {
	t.Parallel()

	want := defaultSnapshot()
	// Bytes TOML strings cannot hold verbatim.
	want.Blobs.Help = Blob("tab\there \x00 trailing space \n\xff\n")

	path := filepath.Join(t.TempDir(), "snapshot.toml")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := want.WriteTo(f); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot() error = %v", err)
	}
	if !bytes.Equal(got.Blobs.Help, want.Blobs.Help) {
		t.Errorf("Help = %q, want %q", got.Blobs.Help, want.Blobs.Help)
	}
	if !bytes.Equal(got.Blobs.Suffix, want.Blobs.Suffix) {
		t.Errorf("Suffix = %q, want %q", got.Blobs.Suffix, want.Blobs.Suffix)
	}
	if !got.CapturedAt.Equal(want.CapturedAt) {
		t.Errorf("CapturedAt = %v, want %v", got.CapturedAt, want.CapturedAt)
	}
	if got.Version != want.Version || got.ShortProbe != want.ShortProbe {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSnapshot_BlobsAreBase64(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := defaultSnapshot().WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Usage: yes") {
		t.Errorf("snapshot stores help text unencoded:\n%s", out)
	}
	if !strings.Contains(out, "[blobs]") {
		t.Errorf("snapshot missing [blobs] table:\n%s", out)
	}
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "reference = \"yes\"\nshell = \"sh\"\n"},
		{"bad base64", "[blobs]\nhelp = \"not base64!\"\n"},
		{"not toml", "reference = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := DecodeSnapshot(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeSnapshot(%q) error = nil", tt.input)
			}
		})
	}
}

func TestSnapshot_ToBlobsValidates(t *testing.T) {
	t.Parallel()

	s := defaultSnapshot()
	s.Blobs.Suffix = Blob("'")

	if _, err := s.ToBlobs(); !errors.Is(err, compat.ErrInvalidBlobs) {
		t.Errorf("ToBlobs() error = %v, want ErrInvalidBlobs", err)
	}
}

func TestReadSnapshot_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadSnapshot() error = %v, want os.ErrNotExist", err)
	}
}
