// Package replayer implements the Replayer phase : it
// walks a reconstructed modeltree.Tree against a new build of the
// subject library, demand-driving the traversal one sibling at a time
// in recorded order, synthesizing values for positions the replayer
// itself must supply, and reporting every path whose observed type is
// no longer compatible with what tracing recorded.
package replayer

import "github.com/go-noregrets/noregrets/typelattice"

// Compatible reports whether actual (observed during replay) is an
// acceptable match for required (recorded during tracing). Rules are
// applied in order; the first that matches decides the outcome:
//
//  1. required == undefined is always compatible: a model records
//     "undefined" for a slot the library may simply no longer expose,
//     and a library is free to continue omitting it.
//  2. required == object structurally widens to accept object,
//     function, map, or set: all four are callable-or-property-bearing
//     shapes from a covariant call site's perspective, and recording
//     only the coarser "object" tag for what tracing observed must not
//     make a library free to swap amongst them look like a break.
//  3. null is compatible with anything, and anything is compatible
//     with required == null: defensive null-handling is ubiquitous
//     and not a meaningful breaking change on its own.
//  4. equal tags are compatible regardless of literal refinement —
//     literal precision exists for the synthesizer, not as an
//     equality constraint the replayer enforces.
//  5. anything else — a tag change — is incompatible.
func Compatible(actual, required typelattice.Type) bool {
	if required.Tag == typelattice.Undefined {
		return true
	}
	if required.Tag == typelattice.Object {
		switch actual.Tag {
		case typelattice.Object, typelattice.Function, typelattice.Map, typelattice.Set:
			return true
		}
	}
	if actual.Tag == typelattice.Null || required.Tag == typelattice.Null {
		return true
	}
	if actual.Tag == required.Tag {
		return true
	}
	return false
}
