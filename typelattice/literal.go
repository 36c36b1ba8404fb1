package typelattice

import (
	"fmt"
	"math"
)

// Literal is a primitive-literal refinement: a primitive tag plus the
// exact value observed. Only produced in covariant positions: the library's own output is precise enough to be worth
// remembering verbatim, whereas a client-supplied argument is recorded
// only by shape.
type Literal struct {
	PrimType Tag // String, Number, or Boolean
	Value any // string, float64, or bool
}

// sentinel string encodings for the two float values JSON cannot
// represent natively.
const (
	sentinelInfinity = "Infinity"
	sentinelNaN = "NaN"
)

// String renders the literal for diagnostics, encoding the float
// sentinels the same way persistence does.
func (l Literal) String() string {
	if l.PrimType == Number {
		if f, ok := l.Value.(float64); ok {
			if s, ok := encodeNumberSentinel(f); ok {
				return fmt.Sprintf("%s(%s)", l.PrimType, s)
			}
		}
	}
	return fmt.Sprintf("%s(%v)", l.PrimType, l.Value)
}

// Equal reports whether two literals carry the same primitive type and
// value. NaN is compared by sentinel identity (NaN == NaN here),
// matching the persisted round-trip rather than IEEE-754 semantics,
// since the model's notion of "same literal" is about what was
// serialized, not floating-point equality.
func (l Literal) Equal(m Literal) bool {
	if l.PrimType != m.PrimType {
		return false
	}
	if l.PrimType == Number {
		lf, lok := l.Value.(float64)
		mf, mok := m.Value.(float64)
		if lok && mok {
			if math.IsNaN(lf) && math.IsNaN(mf) {
				return true
			}
			return lf == mf
		}
	}
	return l.Value == m.Value
}

// encodeNumberSentinel returns the persisted string form of f if f is
// +Inf or NaN ; -Inf is left to normal JSON-number
// handling failure, as the original system makes no provision for it
// and this port doesn't invent one.
func encodeNumberSentinel(f float64) (string, bool) {
	switch {
	case math.IsInf(f, +1):
		return sentinelInfinity, true
	case math.IsNaN(f):
		return sentinelNaN, true
	default:
		return "", false
	}
}

// decodeNumberSentinel is the inverse of encodeNumberSentinel, used by
// modelfile when parsing a persisted literal.
func decodeNumberSentinel(s string) (float64, bool) {
	switch s {
	case sentinelInfinity:
		return math.Inf(+1), true
	case sentinelNaN:
		return math.NaN(), true
	default:
		return 0, false
	}
}

// EncodeSentinel exposes encodeNumberSentinel to other packages
// (modelfile) that must serialize a Literal to JSON.
func EncodeSentinel(f float64) (string, bool) { return encodeNumberSentinel(f) }

// DecodeSentinel exposes decodeNumberSentinel to other packages that
// must parse a persisted number literal.
func DecodeSentinel(s string) (float64, bool) { return decodeNumberSentinel(s) }
