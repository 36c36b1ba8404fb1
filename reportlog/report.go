// Package reportlog renders a regression-check outcome in one of
// several formats: plain text, JSON, and Markdown/HTML via goldmark.
package reportlog

import (
	"github.com/go-noregrets/noregrets/libver"
	"github.com/go-noregrets/noregrets/replayer"
)

// Report is everything one regression check run produced.
type Report struct {
	Library         string
	RecordedVersion string
	ActualVersion   string
	VersionRelation libver.Relation
	Findings        []replayer.BreakingPath
}

// Format selects a Report's rendering.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "md"
	HTML     Format = "html"
)

// Render produces r in the requested format.
func Render(format Format, r Report) ([]byte, error) {
	switch format {
	case Text, "":
		return renderText(r), nil
	case JSON:
		return renderJSON(r)
	case Markdown:
		return renderMarkdownValidated(r)
	case HTML:
		return renderHTML(r)
	default:
		return nil, unknownFormatError(format)
	}
}
