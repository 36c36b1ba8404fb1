// Package libver compares the subject-library version recorded in a
// model against the version reported by the library under replay,
// annotating a regression-check report with how they relate
//.
package libver

import "golang.org/x/mod/semver"

// Relation describes how an actual library version compares to the
// version a model was recorded against.
type Relation string

const (
	Same Relation = "same"
	Upgraded Relation = "upgraded"
	Downgraded Relation = "downgraded"
	Unknown Relation = "unknown"
)

// Annotation is the version-comparison context attached to a
// regression-check report.
type Annotation struct {
	Recorded string
	Actual string
	Relation Relation
}

// Annotate compares recorded (the model's LibraryVersion) against
// actual (the version reported by the library under test). Either
// string being empty or not valid semver yields Unknown rather than a
// guess — libver never reports a relation it can't actually compute.
func Annotate(recorded, actual string) Annotation {
	a := Annotation{Recorded: recorded, Actual: actual, Relation: Unknown}
	if !IsValid(recorded) || !IsValid(actual) {
		return a
	}
	switch Compare(recorded, actual) {
	case 0:
		a.Relation = Same
	case -1:
		a.Relation = Upgraded
	case 1:
		a.Relation = Downgraded
	}
	return a
}

// Compare is semver.Compare, tolerant of version strings missing the
// "v" prefix x/mod/semver requires (subject-library versions in
// practice are often written "1.2.3", not "v1.2.3").
func Compare(a, b string) int {
	return semver.Compare(normalize(a), normalize(b))
}

// IsValid reports whether v is a recognizable version string, after
// the same "v" prefix tolerance Compare applies.
func IsValid(v string) bool {
	return v != "" && semver.IsValid(normalize(v))
}

func normalize(v string) string {
	if v == "" || v[0] == 'v' {
		return v
	}
	return "v" + v
}
