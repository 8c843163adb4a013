// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strconv"
	"strings"
	"text/template"
)

var blobsTemplate = template.Must(template.New("blobs").Funcs(template.FuncMap{
	"literal": literal,
}).Parse(`// Code generated by fyes-probe; DO NOT EDIT.
// Reference: {{.VersionLine}}{{with .Locale}}, LC_ALL={{.}}{{end}}

package {{.Package}}

const helpText = {{literal .Help}}

const versionText = {{literal .VersionText}}

const unrecognizedPrefix = {{literal .UnrecognizedPrefix}}

const invalidPrefix = {{literal .InvalidPrefix}}

const errorSuffix = {{literal .Suffix}}
`))

type templateData struct {
	Package            string
	VersionLine        string
	Locale             string
	Help               string
	VersionText        string
	UnrecognizedPrefix string
	InvalidPrefix      string
	Suffix             string
}

// Generate writes the Go source for package pkg defining the blobs in s.
// The blobs are validated first.
func Generate(w io.Writer, s *Snapshot, pkg string) error {
	b, err := s.ToBlobs()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = blobsTemplate.Execute(&buf, templateData{
		Package:            pkg,
		VersionLine:        s.Version,
		Locale:             s.Locale,
		Help:               b.Help,
		VersionText:        b.Version,
		UnrecognizedPrefix: b.UnrecognizedPrefix,
		InvalidPrefix:      b.InvalidPrefix,
		Suffix:             b.Suffix,
	})
	if err != nil {
		return fmt.Errorf("render blobs: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}
	_, err = w.Write(src)
	return err
}

// literal renders s as a Go string expression with one quoted line per
// source line, joined by +.
func literal(s string) string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strconv.Quote(line)
	}
	return strings.Join(lines, " +\n\t")
}
