// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type (
	// Case is one argument vector run against both binaries.
	Case struct {
		Name string
		Args []string
		// Repeat cases never terminate on their own. Only the first
		// head bytes of stdout are compared; exit status is not, since
		// the reference may die of SIGPIPE where fyes exits 0.
		Repeat bool
	}

	// Target is a binary taking part in verification.
	Target struct {
		Path  string
		Argv0 string
	}

	// CaseResult holds both outcomes of a Case and their differences.
	CaseResult struct {
		Case      Case
		Candidate *Result
		Reference *Result
		Diffs     []string
	}
)

// OK reports whether the two runs matched.
func (r CaseResult) OK() bool { return len(r.Diffs) == 0 }

// DefaultCases returns the argument vectors checked by fyes-probe verify.
func DefaultCases() []Case {
	return []Case{
		{Name: "help", Args: []string{"--help"}},
		{Name: "version", Args: []string{"--version"}},
		{Name: "help-first-wins", Args: []string{"--help", "--version"}},
		{Name: "help-after-operand", Args: []string{"x", "--help"}},
		{Name: "help-with-operand", Args: []string{"--help", "extra"}},
		{Name: "long-prefix", Args: []string{"--helpx"}},
		{Name: "long-unknown", Args: []string{"--bogus"}},
		{Name: "short", Args: []string{"-n"}},
		{Name: "short-help", Args: []string{"-h"}},
		{Name: "short-cluster", Args: []string{"-nx"}},
		{Name: "default", Repeat: true},
		{Name: "operand", Args: []string{"hello"}, Repeat: true},
		{Name: "operands", Args: []string{"a", "b", "c"}, Repeat: true},
		{Name: "empty-operand", Args: []string{""}, Repeat: true},
		{Name: "dash", Args: []string{"-"}, Repeat: true},
		{Name: "separator", Args: []string{"--"}, Repeat: true},
		{Name: "separator-help", Args: []string{"--", "--help"}, Repeat: true},
		{Name: "separator-twice", Args: []string{"--", "--"}, Repeat: true},
		{Name: "separator-after-operand", Args: []string{"a", "--", "b"}, Repeat: true},
		{Name: "whitespace", Args: []string{"a b", "\tc\n"}, Repeat: true},
	}
}

// Verify runs every case against candidate and reference and reports the
// differences. Cases run concurrently; an error aborts the remaining ones.
func Verify(ctx context.Context, r Runner, candidate, reference Target, headBytes int, cases []Case) ([]CaseResult, error) {
	results := make([]CaseResult, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range cases {
		g.Go(func() error {
			limit := 0
			if c.Repeat {
				limit = headBytes
			}
			got, err := r.Run(ctx, Invocation{Path: candidate.Path, Argv0: candidate.Argv0, Args: c.Args, StdoutLimit: limit})
			if err != nil {
				return fmt.Errorf("case %s: candidate: %w", c.Name, err)
			}
			want, err := r.Run(ctx, Invocation{Path: reference.Path, Argv0: reference.Argv0, Args: c.Args, StdoutLimit: limit})
			if err != nil {
				return fmt.Errorf("case %s: reference: %w", c.Name, err)
			}
			results[i] = CaseResult{Case: c, Candidate: got, Reference: want, Diffs: compare(c, got, want)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func compare(c Case, got, want *Result) []string {
	var diffs []string
	if d := diffBytes("stdout", got.Stdout, want.Stdout); d != "" {
		diffs = append(diffs, d)
	}
	if d := diffBytes("stderr", got.Stderr, want.Stderr); d != "" {
		diffs = append(diffs, d)
	}
	if !c.Repeat && got.Code != want.Code {
		diffs = append(diffs, fmt.Sprintf("exit status: candidate %s, reference %s", got.Code, want.Code))
	}
	return diffs
}

// diffBytes describes the first difference between got and want, or returns
// "" when they are equal.
func diffBytes(stream string, got, want []byte) string {
	if bytes.Equal(got, want) {
		return ""
	}
	n := min(len(got), len(want))
	at := n
	for i := range n {
		if got[i] != want[i] {
			at = i
			break
		}
	}
	return fmt.Sprintf("%s: candidate %d bytes, reference %d bytes, first difference at byte %d",
		stream, len(got), len(want), at)
}
