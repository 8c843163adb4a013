// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ReferenceNotFoundId Id = iota + 1
	ProbeNotFoundId
	ConfigLoadFailedId
	SnapshotInvalidId
	VerifyMismatchId
	CandidateNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the glamour style at
// stylePath ("auto", "dark", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	referenceNotFoundIssue = &Issue{
		id: ReferenceNotFoundId,
		mdMsg: `
# Reference yes not found!

fyes-probe captures help, version and error text from a locally installed
yes. The configured binary could not be started.

## Things you can try:
- Install GNU coreutils, or point the probe at another yes:
~~~
$ fyes-probe detect --reference /usr/local/opt/coreutils/bin/gyes
~~~

- Generate from a saved snapshot instead of a live binary:
~~~
$ fyes-probe generate --snapshot yes.toml
~~~`,
		extLinks: []HttpLink{"https://www.gnu.org/software/coreutils/"},
	}

	probeNotFoundIssue = &Issue{
		id: ProbeNotFoundId,
		mdMsg: `
# Probe option not found in the error output!

The reference rejected the probe option, but its message does not contain the
probe text, so it cannot be split into a prefix and a suffix.

## Common causes:
- The reference is not GNU yes (BusyBox and BSD yes accept any operand)
- A locale translates or transliterates the message

## Things you can try:
- Force a plain locale:
~~~
$ FYES_PROBE_REFERENCE_LOCALE=C fyes-probe detect
~~~

- Choose different probe strings with --long-probe and --short-probe`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load fyes-probe.cue!

## Things you can try:
- Print the schema and compare field names and types:
~~~
$ fyes-probe config schema
~~~

- Unset stale FYES_PROBE_* environment variables`,
	}

	snapshotInvalidIssue = &Issue{
		id: SnapshotInvalidId,
		mdMsg: `
# Snapshot is not usable!

A snapshot must contain all five blobs, with help, version and the error
suffix ending in a newline.

## Things you can try:
- Take a fresh snapshot:
~~~
$ fyes-probe snapshot --output yes.toml
~~~`,
	}

	verifyMismatchIssue = &Issue{
		id: VerifyMismatchId,
		mdMsg: `
# fyes differs from the reference!

At least one invocation produced different stdout, stderr or exit status.

## Things you can try:
- Regenerate the blobs on this machine and rebuild:
~~~
$ go generate ./internal/compat
$ go build -o fyes ./cmd/fyes
~~~

- Compare in the same locale the blobs were captured in`,
	}

	candidateNotFoundIssue = &Issue{
		id: CandidateNotFoundId,
		mdMsg: `
# fyes binary not found!

## Things you can try:
- Build it first:
~~~
$ CGO_ENABLED=0 go build -trimpath -ldflags='-s -w' -o fyes ./cmd/fyes
~~~

- Pass its path with --candidate`,
	}

	issues = map[Id]*Issue{
		referenceNotFoundIssue.Id(): referenceNotFoundIssue,
		probeNotFoundIssue.Id():     probeNotFoundIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		snapshotInvalidIssue.Id():   snapshotInvalidIssue,
		verifyMismatchIssue.Id():    verifyMismatchIssue,
		candidateNotFoundIssue.Id(): candidateNotFoundIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id - b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
