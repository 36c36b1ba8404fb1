// Package typelattice classifies runtime values produced or consumed
// across the subject-library boundary into a small, closed set of type
// tags.
//
// The lattice has two layers: a coarse Tag (one of eleven kinds) and,
// in covariant positions only, a finer Literal that additionally
// records a primitive's exact value. This mirrors the distinction the
// tracer needs between "this call returns a string" (useful for
// compatibility checking) and "this call returns the string ok"
// (useful for distinguishing status-code-like return values).
package typelattice

// Tag is one of the closed set of type tags a traced value classifies to.
type Tag string

const (
	Null Tag = "null"
	Undefined Tag = "undefined"
	String Tag = "string"
	Number Tag = "number"
	Boolean Tag = "boolean"
	Array Tag = "array"
	Object Tag = "object"
	Function Tag = "function"
	Map Tag = "map"
	Set Tag = "set"
	Error Tag = "error"
)

// IsPrimitive reports whether t is one of the three primitive tags
// that are eligible for literal refinement in covariant position.
func (t Tag) IsPrimitive() bool {
	switch t {
	case String, Number, Boolean:
		return true
	default:
		return false
	}
}

// Type is the recorded type at a path-tree node: either a bare Tag or,
// for a covariant primitive, a Literal refinement. The zero Type (Tag
// == "") denotes "nothing recorded yet".
type Type struct {
	Tag Tag
	Literal *Literal // non-nil only when Tag.IsPrimitive() and the position was covariant
}

// IsBottom reports whether no type has been recorded yet.
func (t Type) IsBottom() bool { return t.Tag == "" }

// Bare returns t stripped of any literal refinement, i.e. just its Tag.
func (t Type) Bare() Type { return Type{Tag: t.Tag} }

// String renders t for diagnostics and log records.
func (t Type) String() string {
	if t.Literal != nil {
		return t.Literal.String()
	}
	return string(t.Tag)
}

// Equal reports structural equality, including literal shape — the
// comparison compatible() §4.7 rule 3 relies on.
func (t Type) Equal(u Type) bool {
	if t.Tag != u.Tag {
		return false
	}
	if (t.Literal == nil) != (u.Literal == nil) {
		return false
	}
	if t.Literal != nil {
		return t.Literal.Equal(*u.Literal)
	}
	return true
}
