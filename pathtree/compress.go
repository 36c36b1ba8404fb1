package pathtree

import "sort"

// Policy selects which hash compression dedups call-sibling subtrees
// under.
type Policy int

const (
	// Loose is the original tool's behavior: siblings collapse when
	// their h_noArgs values match, i.e. argument subtrees are ignored.
	Loose Policy = iota
	// Strict additionally requires h_full equality, preserving
	// distinguishing argument evidence at the cost of compressing
	// less aggressively.
	Strict
)

// Compress applies structural-hash compression to the
// whole tree under policy, starting from the root. Call siblings whose
// dedup key matches, and whose subtree does not touch a ρ-relation,
// are collapsed down to one representative (the earliest-observed of
// the group) until no more pairs match, then recursion continues into
// the surviving children.
func (t *Tree) Compress(policy Policy) {
	t.compressNode(t.Root(), policy)
}

func (t *Tree) compressNode(id NodeID, policy Policy) {
	n := t.nodes[id]

	// Group call-children by dedup key; repeat-until-fixed-point falls
	// out naturally because each group is collapsed to at most one
	// non-protected survivor in a single pass (no new groups form from
	// an already-processed node's children at this level).
	groups := map[[2]uint64][]string{}
	for callID, childID := range n.Call {
		key := t.dedupKey(childID, policy)
		groups[key] = append(groups[key], callID)
	}
	for _, callIDs := range groups {
		if len(callIDs) < 2 {
			continue
		}
		var protected, candidates []string
		for _, cid := range callIDs {
			if t.touchesRho(n.Call[cid]) {
				protected = append(protected, cid)
			} else {
				candidates = append(candidates, cid)
			}
		}
		_ = protected
		if len(candidates) < 2 {
			continue
		}
		sort.Slice(candidates, func(i, j int) bool {
			return t.nodes[n.Call[candidates[i]]].Order < t.nodes[n.Call[candidates[j]]].Order
		})
		keep := n.Call[candidates[0]]
		for _, cid := range candidates[1:] {
			other := n.Call[cid]
			if t.equalSubtree(keep, other, policy) {
				delete(n.Call, cid)
			}
			// On a genuine hash collision without structural equality,
			// the pair is left alone rather than risk discarding
			// distinguishing evidence.
		}
	}

	for _, childID := range n.Require {
		t.compressNode(childID, policy)
	}
	for _, childID := range n.AccessProp {
		t.compressNode(childID, policy)
	}
	for _, childID := range n.WriteProp {
		t.compressNode(childID, policy)
	}
	for _, childID := range n.Call {
		t.compressNode(childID, policy)
	}
	for _, childID := range n.New {
		t.compressNode(childID, policy)
	}
	for _, byArg := range n.Arg {
		for _, childID := range byArg {
			t.compressNode(childID, policy)
		}
	}
}

func (t *Tree) dedupKey(id NodeID, policy Policy) [2]uint64 {
	hFull, hNoArgs := t.computeHashes(id)
	if policy == Strict {
		return hFull
	}
	return hNoArgs
}

// touchesRho reports whether id's subtree contains a path that
// participates in a ρ-relation: a prefix test of the node's own path
// against every relation, computed on first use and cached.
func (t *Tree) touchesRho(id NodeID) bool {
	n := t.nodes[id]
	if n.rhoChecked {
		return n.touchesRho_
	}
	n.touchesRho_ = t.Rho.TouchesPath(t.PathOf(id))
	n.rhoChecked = true
	return n.touchesRho_
}

// equalSubtree is the direct structural-equality fallback Design Notes
// §9 calls for when two subtrees share a hash: it walks both subtrees
// comparing every group's key set and, recursively, every matched
// child, while excluding the arg group exactly as h_noArgs does under
// Loose policy (so the fallback agrees with whichever criterion
// produced the candidate match).
func (t *Tree) equalSubtree(a, b NodeID, policy Policy) bool {
	na, nb := t.nodes[a], t.nodes[b]
	if !na.Type.Equal(nb.Type) {
		return false
	}
	if !equalKeyedGroup(na.Require, nb.Require, t, policy) {
		return false
	}
	if !equalKeyedGroup(na.AccessProp, nb.AccessProp, t, policy) {
		return false
	}
	if !equalKeyedGroup(na.WriteProp, nb.WriteProp, t, policy) {
		return false
	}
	if !equalKeyedGroup(na.Call, nb.Call, t, policy) {
		return false
	}
	if !equalKeyedGroup(na.New, nb.New, t, policy) {
		return false
	}
	if policy == Strict {
		if len(na.Arg) != len(nb.Arg) {
			return false
		}
		for callID, byArgA := range na.Arg {
			byArgB, ok := nb.Arg[callID]
			if !ok || len(byArgA) != len(byArgB) {
				return false
			}
			for argID, childA := range byArgA {
				childB, ok := byArgB[argID]
				if !ok || !t.equalSubtree(childA, childB, policy) {
					return false
				}
			}
		}
	}
	return true
}

func equalKeyedGroup(a, b map[string]NodeID, t *Tree, policy Policy) bool {
	if len(a) != len(b) {
		return false
	}
	for k, childA := range a {
		childB, ok := b[k]
		if !ok || !t.equalSubtree(childA, childB, policy) {
			return false
		}
	}
	return true
}
