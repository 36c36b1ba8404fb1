package pathalgebra

import "strings"

// Path is an ordered sequence of components, rooted at a Require
// . The zero value is an empty path and is never itself a
// valid observed path, but is a convenient base for building one.
type Path []Component

// Equal reports structural equality on every component's identity
// keys.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

// Append returns a new path with c appended, leaving p untouched.
func (p Path) Append(c Component) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = c
	return out
}

// Variance of a path is covariant when the count of Arg and WriteProp
// components along it is even, contravariant when odd.
type Variance bool

const (
	Covariant Variance = true
	Contravariant Variance = false
)

func (v Variance) String() string {
	if v == Covariant {
		return "covariant"
	}
	return "contravariant"
}

// Variance computes the path's variance: the parity of the count of
// components along it that are arg or writeProp. An even count
// (including zero) is covariant; an odd count is contravariant.
func (p Path) Variance() Variance {
	count := 0
	for _, c := range p {
		if c.isContravariant() {
			count++
		}
	}
	return Variance(count%2 == 0)
}

// String renders the path as a dotted/bracketed chain, e.g.
// require("lib").accessProp("id").arg(ab12c3,0).
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(c.String())
	}
	return b.String()
}
