package replayer

import (
	"errors"

	"github.com/go-noregrets/noregrets/modeltree"
	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

// synthesize produces a plausible value for node, for the contravariant
// positions the replayer itself must supply rather than observe: a
// writeProp's right-hand side, and a call or new's arguments. Primitive
// and collection shapes are cheap placeholders; Object and Function
// shapes are subtree-servicing, built from node's own recorded
// children, so that a later read into them — by the traversal itself,
// or by the library under test invoking a synthesized callback — sees
// the shape tracing actually recorded rather than an empty stub.
func (r *Replayer) synthesize(node *modeltree.Node) any {
	t := node.Type
	switch t.Tag {
	case typelattice.Null:
		return nil
	case typelattice.Undefined:
		return typelattice.NotPresent
	case typelattice.String:
		if t.Literal != nil {
			return t.Literal.Value
		}
		return ""
	case typelattice.Number:
		if t.Literal != nil {
			return t.Literal.Value
		}
		return float64(0)
	case typelattice.Boolean:
		if t.Literal != nil {
			return t.Literal.Value
		}
		return false
	case typelattice.Array:
		return []any{}
	case typelattice.Map:
		return map[string]any{}
	case typelattice.Set:
		return map[string]struct{}{}
	case typelattice.Object:
		return r.synthesizeObject(node)
	case typelattice.Function:
		return r.synthesizeFunc(node)
	case typelattice.Error:
		return errors.New("synthesized error")
	default:
		return nil
	}
}

// synthesizeObject builds a stand-in Object with one entry per AccessProp
// child actually recorded on node, so a later accessProp(q) against it
// finds exactly the shape tracing observed. A property never recorded
// on node is, correctly, simply absent from the map.
func (r *Replayer) synthesizeObject(node *modeltree.Node) typelattice.Object {
	obj := typelattice.Object{}
	for propName, childID := range node.AccessProp {
		obj[propName] = r.synthesize(r.tree.Node(childID))
	}
	return obj
}

// synthesizeFunc builds a stand-in Func that services node's own
// recorded call children: invoked, it looks for a Call or New child
// whose recorded argument types match the arguments it was actually
// given and, on a match, returns that call's own (recursively
// synthesized) recorded result. An invocation matching no recorded call
// shape is itself a signature change; it is reported the same way any
// other incompatibility is, and the invocation returns a zero value
// rather than leaving the caller with nothing at all.
func (r *Replayer) synthesizeFunc(node *modeltree.Node) typelattice.Func {
	return func(args []any) (any, error) {
		for _, childID := range r.tree.Children(node.ID) {
			callNode := r.tree.Node(childID)
			switch callNode.Comp.(type) {
			case pathalgebra.Call, pathalgebra.New:
			default:
				continue
			}
			if !argsMatch(r.tree, callNode, args) {
				continue
			}
			callNode.Processed = true
			value := r.synthesize(callNode)
			callNode.Obj = value
			return value, nil
		}
		r.record(node, typelattice.Type{Tag: typelattice.Undefined}, "callback invoked with an argument signature no trace recorded")
		return float64(0), nil
	}
}

// argsMatch reports whether args (the arguments a synthesized callback
// was actually invoked with) are compatible, positionally, with the
// types callNode's own Arg children recorded.
func argsMatch(tree *modeltree.Tree, callNode *modeltree.Node, args []any) bool {
	var byArg map[int]modeltree.NodeID
	for _, m := range callNode.Arg {
		byArg = m
		break
	}
	if len(byArg) != len(args) {
		return false
	}
	for argID, a := range args {
		childID, ok := byArg[argID]
		if !ok {
			return false
		}
		got := typelattice.Classify(a, false)
		if !Compatible(got, tree.Node(childID).Type) {
			return false
		}
	}
	return true
}
