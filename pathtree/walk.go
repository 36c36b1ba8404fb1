package pathtree

import "sort"

// Observed is one terminal node rendered as (path, type, order) — the
// unit the persistence layer (modelfile) serializes.
type Observed struct {
	ID NodeID
	Order int
}

// Observations returns every node still reachable from the root at
// which a path actually terminated (Type is not bottom), sorted by
// Order ascending; subtrees that Compress detached are left out.
// Replaying these in ascending order reproduces the temporal order in
// which paths were first observed. Orders are distinct; on a tree that
// has not been compressed they are exactly [0, N).
func (t *Tree) Observations() []Observed {
	var out []Observed
	stack := []NodeID{t.Root()}
	for len(stack) > 0 {
		n := t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.Type.IsBottom() {
			out = append(out, Observed{ID: n.ID, Order: n.Order})
		}
		for _, group := range []map[string]NodeID{n.Require, n.AccessProp, n.WriteProp, n.Call, n.New} {
			for _, c := range group {
				stack = append(stack, c)
			}
		}
		for _, byArg := range n.Arg {
			for _, c := range byArg {
				stack = append(stack, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
