package typelattice

import "reflect"

// Classify returns the type tag for v, refining it into a Literal when
// covariant is true and v is a primitive.
//
// Dispatch order is fixed and must not be reordered: the more specific
// kinds (error, array, map, set) must be checked ahead of the generic
// object fallback.
//
// 1. nil / missing -> Null / Undefined
// 2. error -> Error
// 3. array/slice -> Array
// 4. map (and the set idiom) -> Map / Set
// 5. string/number/bool -> primitive, refined in covariant position
// 6. everything else -> Object, or Function if callable
func Classify(v any, covariant bool) Type {
	if v == nil {
		return Type{Tag: Null}
	}
	if missing, ok := v.(Missing); ok && bool(missing) {
		return Type{Tag: Undefined}
	}
	if _, ok := v.(error); ok {
		return Type{Tag: Error}
	}
	if _, ok := v.(Object); ok {
		return Type{Tag: Object}
	}
	if _, ok := v.(Func); ok {
		return Type{Tag: Function}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Type{Tag: Null}
		}
		if rv.Kind() == reflect.Interface {
			return Classify(rv.Elem().Interface(), covariant)
		}
		return classifyObjectOrFunction(rv)

	case reflect.Slice, reflect.Array:
		return Type{Tag: Array}

	case reflect.Map:
		if rv.IsNil() {
			return Type{Tag: Null}
		}
		if isSetShaped(rv.Type()) {
			return Type{Tag: Set}
		}
		return Type{Tag: Map}

	case reflect.String:
		if covariant {
			return Type{Tag: String, Literal: &Literal{PrimType: String, Value: rv.String()}}
		}
		return Type{Tag: String}

	case reflect.Bool:
		if covariant {
			return Type{Tag: Boolean, Literal: &Literal{PrimType: Boolean, Value: rv.Bool()}}
		}
		return Type{Tag: Boolean}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if covariant {
			return Type{Tag: Number, Literal: &Literal{PrimType: Number, Value: toFloat64(rv)}}
		}
		return Type{Tag: Number}

	case reflect.Func:
		return Type{Tag: Function}

	default:
		return classifyObjectOrFunction(rv)
	}
}

// Object is a subject-library object: a named bag of properties, the
// Go analogue of a plain JS object. Providers build their exposed
// surface out of Object and Func values so that the tracer's Mediator
// can mediate arbitrary subject libraries without needing to reflect
// over statically-typed Go function signatures. A bare map[string]any
// returned as *data* (not as part of the object model) still
// classifies as Map, since Object is a distinct named type.
type Object map[string]any

// Func is a subject-library function or constructor. Args are passed
// positionally, matching the arg(callId, argId) addressing scheme
// used to record call arguments.
type Func func(args []any) (any, error)

// Missing is the sentinel value a Loader or Mediator passes to
// Classify to denote "the library has no such property/slot", as
// opposed to a present value that happens to be nil.
type Missing bool

// NotPresent is the canonical Missing sentinel.
const NotPresent = Missing(true)

// classifyObjectOrFunction handles struct/pointer-to-struct values
// that are neither array-, map-, nor primitive-shaped: Object, unless
// the value itself is callable (a bound method value reached this far
// only if it wasn't already caught by reflect.Func above, which in
// practice does not happen, but the fallback keeps the dispatch total).
func classifyObjectOrFunction(rv reflect.Value) Type {
	if rv.Kind() == reflect.Func {
		return Type{Tag: Function}
	}
	return Type{Tag: Object}
}

// isSetShaped recognizes the conventional Go idiom for a set,
// map[K]struct{}, as the analogue of a JS Set.
// Go has no built-in Set type, so this heuristic is the natural
// mapping: a map whose element type carries no data.
func isSetShaped(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}

func toFloat64(rv reflect.Value) float64 {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	default:
		return 0
	}
}
