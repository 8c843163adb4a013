// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/invowk/fyes/internal/compat"
)

type (
	// Blob is reference text stored base64-encoded so that trailing
	// whitespace and control bytes survive editors and TOML quoting.
	Blob []byte

	// Snapshot is a recorded Detect result.
	Snapshot struct {
		Reference  string        `toml:"reference"`
		Version    string        `toml:"version"`
		Locale     string        `toml:"locale,omitempty"`
		LongProbe  string        `toml:"long_probe"`
		ShortProbe string        `toml:"short_probe"`
		Quotes     string        `toml:"quotes"`
		CapturedAt time.Time     `toml:"captured_at"`
		Blobs      SnapshotBlobs `toml:"blobs"`
	}

	// SnapshotBlobs mirrors compat.Blobs.
	SnapshotBlobs struct {
		Help               Blob `toml:"help"`
		Version            Blob `toml:"version"`
		UnrecognizedPrefix Blob `toml:"unrecognized_prefix"`
		InvalidPrefix      Blob `toml:"invalid_prefix"`
		Suffix             Blob `toml:"suffix"`
	}
)

// MarshalText implements encoding.TextMarshaler.
func (b Blob) MarshalText() ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Blob) UnmarshalText(text []byte) error {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(out, text)
	if err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}
	*b = out[:n]
	return nil
}

// ToBlobs converts s to compat.Blobs and validates the result.
func (s *Snapshot) ToBlobs() (compat.Blobs, error) {
	b := compat.Blobs{
		Help:               string(s.Blobs.Help),
		Version:            string(s.Blobs.Version),
		UnrecognizedPrefix: string(s.Blobs.UnrecognizedPrefix),
		InvalidPrefix:      string(s.Blobs.InvalidPrefix),
		Suffix:             string(s.Blobs.Suffix),
	}
	if err := b.Validate(); err != nil {
		return compat.Blobs{}, err
	}
	return b, nil
}

// WriteTo encodes s as TOML.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// DecodeSnapshot reads a TOML snapshot from r. Unknown keys are rejected.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// ReadSnapshot reads a TOML snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}
