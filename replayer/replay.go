package replayer

import (
	"sort"

	"github.com/go-noregrets/noregrets/modeltree"
	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

// BreakingPath is one access path whose observed type no longer
// matches what tracing recorded.
type BreakingPath struct {
	Path     pathalgebra.Path
	Required typelattice.Type
	Actual   typelattice.Type
	Reason   string
}

// Replayer drives one replay pass over a reconstructed model tree.
type Replayer struct {
	tree     *modeltree.Tree
	breaking []BreakingPath
	rhoSink  map[modeltree.NodeID]modeltree.NodeID // sink -> source
}

// New starts a replay against tree.
func New(tree *modeltree.Tree) *Replayer {
	rhoSink := make(map[modeltree.NodeID]modeltree.NodeID, len(tree.Rho))
	for _, link := range tree.Rho {
		rhoSink[link.Sink] = link.Source
	}
	return &Replayer{tree: tree, rhoSink: rhoSink}
}

// Run replays the whole tree against library — the actual root value
// acquired from the (possibly new) subject library under test — and
// returns every BreakingPath found.
//
// Nodes are visited in ascending recorded Order rather than a plain
// per-branch depth-first walk, so that an arg node naming a ρ-relation
// can pull its source node's value from anywhere else in the tree —
// forcing that node to be visited out of turn if it hasn't been yet —
// rather than only ever seeing sources that happen to live earlier in
// the same branch.
func (r *Replayer) Run(library any) []BreakingPath {
	r.breaking = nil
	root := r.tree.Node(r.tree.Root())
	root.Obj = library
	root.Processed = true

	ids := make([]modeltree.NodeID, 0, r.tree.Len()-1)
	for i := 1; i < r.tree.Len(); i++ {
		ids = append(ids, modeltree.NodeID(i))
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.tree.Node(ids[i]).Order < r.tree.Node(ids[j]).Order
	})

	for _, id := range ids {
		r.resolve(id)
	}
	return r.breaking
}

// resolve returns id's replay-time value, visiting it — and,
// recursively, whatever unprocessed ancestor or ρ-source it demands —
// first if it hasn't been visited yet. A node is marked Processed as
// soon as its visit starts (or its value is supplied as an argument),
// so a resolve on an already-Processed node is just a lookup of Obj,
// never a second visit; Obj stays nil for a node whose visit reported
// a break before producing a value.
func (r *Replayer) resolve(id modeltree.NodeID) any {
	node := r.tree.Node(id)
	if node.Processed {
		return node.Obj
	}
	parentActual := r.resolve(node.Parent)
	// Resolving the parent can process id as a side effect — an
	// invocation marks every one of its own Arg children Processed —
	// so re-check before visiting it again.
	node = r.tree.Node(id)
	if node.Processed {
		return node.Obj
	}
	r.visit(id, parentActual)
	return r.tree.Node(id).Obj
}

func (r *Replayer) visit(id modeltree.NodeID, parentActual any) {
	node := r.tree.Node(id)
	node.Processed = true

	switch c := node.Comp.(type) {
	case pathalgebra.Require:
		r.visitRequire(node, parentActual)
	case pathalgebra.AccessProp:
		r.visitAccessProp(node, c, parentActual)
	case pathalgebra.WriteProp:
		r.visitWriteProp(node, c, parentActual)
	case pathalgebra.Call:
		r.visitInvoke(node, parentActual, false)
	case pathalgebra.New:
		r.visitInvoke(node, parentActual, true)
	case pathalgebra.Arg:
		// Reached directly only when synthesizeArgs never ran for the
		// call that owns this arg: that call's parent was empty or no
		// longer a Func, or the call belongs to a synthesized callback,
		// whose arguments come from the library under test. There is
		// nothing further to resolve without a live invocation to
		// attach it to.
	}
}

// visitRequire adopts parentActual — the actual root value acquired
// from the library under test — as the Require node's own value,
// checking it against whatever tracing recorded for the library's
// root shape.
func (r *Replayer) visitRequire(node *modeltree.Node, parentActual any) {
	covariant := r.tree.PathOf(node.ID).Variance() == pathalgebra.Covariant
	actualType := typelattice.Classify(parentActual, covariant)
	r.check(node, actualType)
	node.Obj = parentActual
}

func (r *Replayer) visitAccessProp(node *modeltree.Node, c pathalgebra.AccessProp, parentActual any) {
	if isEmptyValue(parentActual) {
		// The ancestor that went missing already reported it; a node
		// underneath it isn't a further break, just unreachable.
		node.Obj = typelattice.NotPresent
		node.Empty = true
		return
	}
	obj, ok := parentActual.(typelattice.Object)
	if !ok {
		r.record(node, typelattice.Type{Tag: typelattice.Undefined}, "parent is no longer an Object")
		return
	}

	v, present := obj[c.PropName]
	if !present {
		v = typelattice.NotPresent
	}

	covariant := r.tree.PathOf(node.ID).Variance() == pathalgebra.Covariant
	actualType := typelattice.Classify(v, covariant)
	r.check(node, actualType)

	node.Obj = v
	node.Empty = actualType.Tag == typelattice.Undefined || actualType.Tag == typelattice.Null
}

func (r *Replayer) visitWriteProp(node *modeltree.Node, c pathalgebra.WriteProp, parentActual any) {
	if isEmptyValue(parentActual) {
		node.Obj = typelattice.NotPresent
		node.Empty = true
		return
	}
	obj, ok := parentActual.(typelattice.Object)
	if !ok {
		r.record(node, typelattice.Type{Tag: typelattice.Undefined}, "parent is no longer an Object, cannot write")
		return
	}
	value := r.argValue(node)
	obj[c.PropName] = value
	node.Obj = value
}

func (r *Replayer) visitInvoke(node *modeltree.Node, parentActual any, isNew bool) {
	if isEmptyValue(parentActual) {
		node.Obj = typelattice.NotPresent
		node.Empty = true
		return
	}
	fn, ok := parentActual.(typelattice.Func)
	if !ok {
		kind := "call"
		if isNew {
			kind = "new"
		}
		r.record(node, typelattice.Type{Tag: typelattice.Undefined}, "parent is no longer a Func, cannot "+kind)
		return
	}

	args := r.synthesizeArgs(node)

	result, err := fn(args)
	if err != nil {
		r.record(node, typelattice.Type{Tag: typelattice.Error}, "call raised an error where tracing recorded a normal return: "+err.Error())
		return
	}

	covariant := r.tree.PathOf(node.ID).Variance() == pathalgebra.Covariant
	actualType := typelattice.Classify(result, covariant)
	r.check(node, actualType)
	node.Obj = result
}

// synthesizeArgs builds the positional argument slice for a Call/New
// node from its recorded Arg children. Each child is resolved through
// argValue, which also marks it Processed, so resolve never revisits
// it once the invocation itself has run.
func (r *Replayer) synthesizeArgs(node *modeltree.Node) []any {
	maxArg := -1
	for _, byArg := range node.Arg {
		for argID := range byArg {
			if argID > maxArg {
				maxArg = argID
			}
		}
	}
	if maxArg < 0 {
		return nil
	}
	args := make([]any, maxArg+1)
	for _, byArg := range node.Arg {
		for argID, childID := range byArg {
			args[argID] = r.argValue(r.tree.Node(childID))
		}
	}
	return args
}

// argValue supplies the replay-time value for a contravariant position
// (a writeProp's right-hand side, or one Arg child of a call). If node
// is a ρ-relation's sink, the value already flowing there is the source
// node's own reconstructed value — resolved, visiting it out of turn if
// necessary, rather than synthesized fresh. Otherwise a plausible value
// is synthesized from node's own recorded shape.
func (r *Replayer) argValue(node *modeltree.Node) any {
	var value any
	if sourceID, ok := r.rhoSink[node.ID]; ok {
		value = r.resolve(sourceID)
	} else {
		value = r.synthesize(node)
	}
	node.Processed = true
	node.Obj = value
	return value
}

// isEmptyValue reports whether v is the kind of absent/missing value
// that a prior visit on an ancestor already reported as a break, so
// that a descendant under it can go quiet instead of piling on a
// second report for the same underlying cause.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	missing, ok := v.(typelattice.Missing)
	return ok && bool(missing)
}

func (r *Replayer) check(node *modeltree.Node, actual typelattice.Type) {
	if !Compatible(actual, node.Type) {
		r.record(node, actual, "observed type is incompatible with the recorded type")
	}
}

func (r *Replayer) record(node *modeltree.Node, actual typelattice.Type, reason string) {
	r.breaking = append(r.breaking, BreakingPath{
		Path:     r.tree.PathOf(node.ID),
		Required: node.Type,
		Actual:   actual,
		Reason:   reason,
	})
}
