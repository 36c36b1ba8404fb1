package reportlog

import "encoding/json"

// wireFinding mirrors cmd/deadcode's own jsonEdge/jsonFunction
// convention: a small struct with json tags, built fresh from the
// domain type rather than tagging replayer.BreakingPath itself, so
// replayer stays decoupled from the on-disk/wire shape.
type wireFinding struct {
	Path     string `json:"path"`
	Required string `json:"required"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason"`
}

type wireReport struct {
	Library         string        `json:"library"`
	RecordedVersion string        `json:"recordedVersion,omitempty"`
	ActualVersion   string        `json:"actualVersion,omitempty"`
	VersionRelation string        `json:"versionRelation,omitempty"`
	Findings        []wireFinding `json:"findings"`
}

func renderJSON(r Report) ([]byte, error) {
	w := wireReport{
		Library:         r.Library,
		RecordedVersion: r.RecordedVersion,
		ActualVersion:   r.ActualVersion,
		VersionRelation: string(r.VersionRelation),
		Findings:        make([]wireFinding, len(r.Findings)),
	}
	for i, f := range r.Findings {
		w.Findings[i] = wireFinding{
			Path:     f.Path.String(),
			Required: f.Required.String(),
			Actual:   f.Actual.String(),
			Reason:   f.Reason,
		}
	}
	return json.MarshalIndent(w, "", "  ")
}
