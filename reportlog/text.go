package reportlog

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// renderText is the default rendering: one line per finding, in the
// same "print records as plain lines unless -json" style
// cmd/deadcode.printObjects uses for its own default output.
func renderText(r Report) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", r.Library)
	if r.RecordedVersion != "" || r.ActualVersion != "" {
		fmt.Fprintf(&b, " (recorded %s, actual %s, %s)", r.RecordedVersion, r.ActualVersion, r.VersionRelation)
	}
	b.WriteString("\n")

	if len(r.Findings) == 0 {
		b.WriteString("no breaking changes found\n")
		return []byte(b.String())
	}

	for _, f := range r.Findings {
		fmt.Fprintf(&b, "BREAKING %s: required %s, got %s (%s)\n", f.Path, f.Required, f.Actual, f.Reason)
	}
	return []byte(b.String())
}

func unknownFormatError(format Format) error {
	return xerrors.Errorf("reportlog: unknown format %q", format)
}
