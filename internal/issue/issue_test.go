// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ReferenceNotFoundId, false, "Reference yes not found"},
		{ProbeNotFoundId, false, "Probe option not found"},
		{ConfigLoadFailedId, false, "fyes-probe.cue"},
		{SnapshotInvalidId, false, "Snapshot is not usable"},
		{VerifyMismatchId, false, "differs from the reference"},
		{CandidateNotFoundId, false, "fyes binary not found"},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, issue.Id())
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) != 6 {
		t.Fatalf("Values() returned %d issues, want 6", len(issues))
	}
	for i, issue := range issues {
		if want := Id(i + 1); issue.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), want)
		}
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	issue := Get(ReferenceNotFoundId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ExtLinks() is empty")
	}
	links[0] = "https://changed.example.com"
	if issue.ExtLinks()[0] == links[0] {
		t.Error("ExtLinks() returned the internal slice")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "See also") {
		t.Error("Render() with links should contain 'See also'")
	}
	if !strings.Contains(rendered, "https://docs.example.com") || !strings.Contains(rendered, "https://external.example.com") {
		t.Errorf("Render() output missing links: %q", rendered)
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{id: Id(9998), mdMsg: "# Test Issue\n\nNo links here."}
	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestIssue_Render_Glamour(t *testing.T) {
	rendered, err := Get(VerifyMismatchId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "go generate ./internal/compat") {
		t.Errorf("Render() output lost the code block: %q", rendered)
	}
}
