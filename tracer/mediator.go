// Package tracer implements the trace-side interposition layer: a
// Mediator stands in for every Object or Func value acquired from the
// subject library, recording each further access, write, or
// invocation into a pathtree.Tree as it happens.
//
// Go has no equivalent of mediating an arbitrary statically-typed
// value the way a dynamic-language proxy can, so mediation here is
// scoped to the typelattice.Object/typelattice.Func SDK surface a
// hostbridge.Provider builds its exposed API out of.
package tracer

import (
	"golang.org/x/xerrors"

	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/pathtree"
	"github.com/go-noregrets/noregrets/typelattice"
)

// Tracer owns the path tree accumulated over one traced run.
type Tracer struct {
	Tree *pathtree.Tree
}

// New starts a fresh trace.
func New() *Tracer {
	return &Tracer{Tree: pathtree.New()}
}

// Require mediates the acquisition of a named subject library: the
// root of every access path.
func (tr *Tracer) Require(moduleName string, value any) *Mediator {
	path := pathalgebra.Path{pathalgebra.Require{ModuleName: moduleName}}
	if m, ok := tr.record(path, value).(*Mediator); ok {
		return m
	}
	// The subject library's root is expected to be an Object or Func;
	// fall back to wrapping directly so a malformed Provider still
	// traces rather than panics.
	return &Mediator{tracer: tr, path: path, value: value}
}

// Mediator is the Go analogue of a JS Proxy trap set: it remembers the
// access path that produced it and mediates every further Get, Set,
// Call, or New against that path.
type Mediator struct {
	tracer *Tracer
	path pathalgebra.Path
	value any
}

// Path exposes the access path that produced m. The tracer uses this
// to recognize when an already-wrapped value is handed back into the
// library as an argument, i.e. a ρ-relation.
func (m *Mediator) Path() pathalgebra.Path { return m.path }

// Get mediates a property read.
func (m *Mediator) Get(propName string) (any, error) {
	obj, ok := unwrap(m.value).(typelattice.Object)
	if !ok {
		return nil, xerrors.Errorf("tracer: accessProp(%q): underlying value is not an Object", propName)
	}
	path := m.path.Append(pathalgebra.AccessProp{PropName: propName})
	v, present := obj[propName]
	if !present {
		v = typelattice.NotPresent
	}
	return m.tracer.record(path, v), nil
}

// Set mediates a property write , a contravariant
// position.
func (m *Mediator) Set(propName string, value any) error {
	obj, ok := unwrap(m.value).(typelattice.Object)
	if !ok {
		return xerrors.Errorf("tracer: writeProp(%q): underlying value is not an Object", propName)
	}
	path := m.path.Append(pathalgebra.WriteProp{PropName: propName})
	m.tracer.recordRaw(path, value)
	obj[propName] = unwrap(value)
	return nil
}

// Call mediates an ordinary function invocation.
func (m *Mediator) Call(args ...any) (any, error) {
	return m.invoke(args, false)
}

// New mediates a constructor invocation. Go has no `new Foo()`
// operator for arbitrary callables, so constructor intent is expressed
// by calling New instead of Call; the result is always wrapped,
// matching a constructor's object-producing contract.
func (m *Mediator) New(args ...any) (any, error) {
	return m.invoke(args, true)
}

func (m *Mediator) invoke(args []any, isNew bool) (any, error) {
	fn, ok := unwrap(m.value).(typelattice.Func)
	if !ok {
		kind := "call"
		if isNew {
			kind = "new"
		}
		return nil, xerrors.Errorf("tracer: %s: underlying value is not a Func", kind)
	}

	callID := newCallID()
	var sitePath pathalgebra.Path
	if isNew {
		sitePath = m.path.Append(pathalgebra.New{CallID: callID})
	} else {
		sitePath = m.path.Append(pathalgebra.Call{CallID: callID})
	}

	rawArgs := make([]any, len(args))
	for i, a := range args {
		argPath := sitePath.Append(pathalgebra.Arg{CallID: callID, ArgID: i})
		m.tracer.recordRaw(argPath, a)
		rawArgs[i] = unwrap(a)
	}

	result, err := fn(rawArgs)
	if err != nil {
		// Exceptions raised by the subject library are the caller's to
		// handle. A call that threw gets no recorded type of its own;
		// its argument paths, recorded above, remain in the tree.
		return nil, err
	}

	wrapped := m.tracer.record(sitePath, result)
	if isNew {
		if wm, ok := wrapped.(*Mediator); ok {
			return wm, nil
		}
		return &Mediator{tracer: m.tracer, path: sitePath, value: result}, nil
	}
	return wrapped, nil
}

// record classifies value at path, stores it in the tree, and — when
// the classified tag is Object or Function — returns a *Mediator
// wrapping value at path so that further traffic through it continues
// to be traced. Terminal (primitive, array, map, set, error) values
// are returned unwrapped, matching the original's treatment of leaf
// values as opaque once recorded.
func (tr *Tracer) record(path pathalgebra.Path, value any) any {
	typ := tr.recordRaw(path, value)
	switch typ.Tag {
	case typelattice.Object, typelattice.Function:
		return &Mediator{tracer: tr, path: path, value: value}
	default:
		return unwrap(value)
	}
}

// recordRaw classifies and stores value at path without deciding
// whether to wrap the result, and records a ρ-relation when value
// already carries its own access path.
func (tr *Tracer) recordRaw(path pathalgebra.Path, value any) typelattice.Type {
	covariant := path.Variance() == pathalgebra.Covariant
	typ := typelattice.Classify(unwrap(value), covariant)
	tr.Tree.Record(path, typ)
	if wm, ok := value.(*Mediator); ok {
		tr.Tree.Rho.Add(wm.path, path)
	}
	return typ
}

// unwrap returns the raw subject-library value a Mediator stands in
// for, or v itself if it isn't a Mediator.
func unwrap(v any) any {
	if m, ok := v.(*Mediator); ok {
		return m.value
	}
	return v
}
