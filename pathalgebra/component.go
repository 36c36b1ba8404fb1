// Package pathalgebra defines the access-path components and the
// variance rule: the closed vocabulary of ways a
// value can be obtained from, or supplied to, the subject library.
package pathalgebra

import "fmt"

// Kind discriminates the six path-component variants. The set is
// closed; switches over Kind should be exhaustive rather than reach
// for an extensible registry.
type Kind int

const (
	KindRequire Kind = iota
	KindAccessProp
	KindWriteProp
	KindArg
	KindCall
	KindNew
)

func (k Kind) String() string {
	switch k {
	case KindRequire:
		return "require"
	case KindAccessProp:
		return "accessProp"
	case KindWriteProp:
		return "writeProp"
	case KindArg:
		return "arg"
	case KindCall:
		return "call"
	case KindNew:
		return "new"
	default:
		return fmt.Sprintf("pathalgebra.Kind(%d)", int(k))
	}
}

// Component is one edge label in an access path. Its identity keys
// are whatever fields the concrete variant exposes;
// Equal compares exactly those.
type Component interface {
	Kind() Kind
	Equal(Component) bool
	String() string

	// isContravariant reports whether this single component
	// contributes to the variance parity: true for Arg
	// and WriteProp, false for the other four kinds.
	isContravariant() bool
}

// Require is the root component: acquisition of the subject module by
// name.
type Require struct{ ModuleName string }

func (Require) Kind() Kind { return KindRequire }
func (Require) isContravariant() bool { return false }
func (r Require) String() string { return fmt.Sprintf("require(%q)", r.ModuleName) }
func (r Require) Equal(c Component) bool { o, ok := c.(Require); return ok && o.ModuleName == r.ModuleName }

// AccessProp reads a named property.
type AccessProp struct{ PropName string }

func (AccessProp) Kind() Kind { return KindAccessProp }
func (AccessProp) isContravariant() bool { return false }
func (a AccessProp) String() string { return fmt.Sprintf("accessProp(%q)", a.PropName) }
func (a AccessProp) Equal(c Component) bool { o, ok := c.(AccessProp); return ok && o.PropName == a.PropName }

// WriteProp writes a named property.
type WriteProp struct{ PropName string }

func (WriteProp) Kind() Kind { return KindWriteProp }
func (WriteProp) isContravariant() bool { return true }
func (w WriteProp) String() string { return fmt.Sprintf("writeProp(%q)", w.PropName) }
func (w WriteProp) Equal(c Component) bool { o, ok := c.(WriteProp); return ok && o.PropName == w.PropName }

// Arg is the argId-th positional argument of call site callId.
type Arg struct {
	CallID string
	ArgID int
}

func (Arg) Kind() Kind { return KindArg }
func (Arg) isContravariant() bool { return true }
func (a Arg) String() string { return fmt.Sprintf("arg(%s,%d)", a.CallID, a.ArgID) }
func (a Arg) Equal(c Component) bool {
	o, ok := c.(Arg)
	return ok && o.CallID == a.CallID && o.ArgID == a.ArgID
}

// Call is the result of an ordinary function invocation.
type Call struct{ CallID string }

func (Call) Kind() Kind { return KindCall }
func (Call) isContravariant() bool { return false }
func (c Call) String() string { return fmt.Sprintf("call(%s)", c.CallID) }
func (c Call) Equal(o Component) bool { other, ok := o.(Call); return ok && other.CallID == c.CallID }

// New is the result of a constructor invocation.
type New struct{ CallID string }

func (New) Kind() Kind { return KindNew }
func (New) isContravariant() bool { return false }
func (n New) String() string { return fmt.Sprintf("new(%s)", n.CallID) }
func (n New) Equal(o Component) bool { other, ok := o.(New); return ok && other.CallID == n.CallID }
