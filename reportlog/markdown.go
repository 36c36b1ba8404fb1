package reportlog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/xerrors"
)

// renderMarkdown builds the report as a Markdown table. It doesn't
// depend on goldmark itself — goldmark is the renderer for -format=html
// one step further down (renderHTML), and -format=md passes this output
// through goldmark before it's written (renderMarkdownValidated).
func renderMarkdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Library)
	if r.RecordedVersion != "" || r.ActualVersion != "" {
		fmt.Fprintf(&b, "Recorded version: `%s` — actual version: `%s` (%s)\n\n", r.RecordedVersion, r.ActualVersion, r.VersionRelation)
	}

	if len(r.Findings) == 0 {
		b.WriteString("No breaking changes found.\n")
		return b.String()
	}

	b.WriteString("| Path | Required | Actual | Reason |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "| `%s` | `%s` | `%s` | %s |\n", f.Path, f.Required, f.Actual, f.Reason)
	}
	return b.String()
}

// renderMarkdownValidated renders the report's Markdown form and runs
// it through goldmark.Convert before returning it, returning any error
// that conversion reports. goldmark parses any input as Markdown, so
// this does not reject a malformed table; such a table simply renders
// as plain text.
func renderMarkdownValidated(r Report) ([]byte, error) {
	md := renderMarkdown(r)
	var discard bytes.Buffer
	if err := goldmark.Convert([]byte(md), &discard); err != nil {
		return nil, xerrors.Errorf("reportlog: generated Markdown failed validation: %w", err)
	}
	return []byte(md), nil
}

// renderHTML renders the report's Markdown form to HTML via goldmark
// with its table extension enabled, and surfaces a conversion failure
// rather than silently falling back to the raw Markdown.
func renderHTML(r Report) ([]byte, error) {
	md := renderMarkdown(r)
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.Table)).Convert([]byte(md), &buf); err != nil {
		return nil, xerrors.Errorf("reportlog: rendering report to HTML: %w", err)
	}
	return buf.Bytes(), nil
}
