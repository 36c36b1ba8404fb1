// Package modeltree reconstructs a replay-side model tree from a
// persisted modelfile.Model : a rooted, list-of-children
// tree annotated with the mutable state the replayer mutates as it
// visits nodes (processed, empty, obj).
package modeltree

import (
	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

// NodeID indexes into a Tree's node arena, same convention as
// pathtree.NodeID and for the same reason.
type NodeID int

const noParent NodeID = -1

// Node is one vertex of the reconstructed model tree, plus the
// per-node state the replayer mutates as it visits
// the tree: Processed marks a node already handled by the traversal,
// Empty marks a node the replayer determined has nothing observable
// behind it (e.g. a missing property), and Obj holds whatever
// replay-time value the node resolved to once visited.
type Node struct {
	ID NodeID
	Parent NodeID
	Comp pathalgebra.Component
	Type typelattice.Type
	Order int

	Require map[string]NodeID
	AccessProp map[string]NodeID
	WriteProp map[string]NodeID
	Call map[string]NodeID
	New map[string]NodeID
	Arg map[string]map[int]NodeID

	Processed bool
	Empty bool
	Obj any
}

func newNode(id, parent NodeID, comp pathalgebra.Component) *Node {
	return &Node{
		ID: id,
		Parent: parent,
		Comp: comp,
		Require: map[string]NodeID{}, AccessProp: map[string]NodeID{},
		WriteProp: map[string]NodeID{}, Call: map[string]NodeID{},
		New: map[string]NodeID{}, Arg: map[string]map[int]NodeID{},
	}
}

// Children returns id's direct children across every kind, sorted by
// Order, the order the demand-driven replay traversal visits siblings
// in.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.nodes[id]
	var out []NodeID
	for _, c := range n.Require {
		out = append(out, c)
	}
	for _, c := range n.AccessProp {
		out = append(out, c)
	}
	for _, c := range n.WriteProp {
		out = append(out, c)
	}
	for _, c := range n.Call {
		out = append(out, c)
	}
	for _, c := range n.New {
		out = append(out, c)
	}
	for _, byArg := range n.Arg {
		for _, c := range byArg {
			out = append(out, c)
		}
	}
	sortByOrder(out, t)
	return out
}

func sortByOrder(ids []NodeID, t *Tree) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && t.nodes[ids[j-1]].Order > t.nodes[ids[j]].Order; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// RhoLink is a ρ-relation resolved to the two nodes it connects.
type RhoLink struct {
	Source NodeID
	Sink NodeID
}

// Tree is the replay-side reconstruction of a traced run.
type Tree struct {
	nodes []*Node
	Rho []RhoLink
}

// Root returns the root node's ID, always 0.
func (t *Tree) Root() NodeID { return 0 }

// Node returns the node at id.
func (t *Tree) Node(id NodeID) *Node { return t.nodes[id] }

// Len returns the number of nodes in the arena, including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// PathOf reconstructs the full access path ending at id.
func (t *Tree) PathOf(id NodeID) pathalgebra.Path {
	var comps []pathalgebra.Component
	for n := t.nodes[id]; n.Comp != nil; n = t.nodes[n.Parent] {
		comps = append(comps, n.Comp)
	}
	path := make(pathalgebra.Path, len(comps))
	for i, c := range comps {
		path[len(comps)-1-i] = c
	}
	return path
}

func (t *Tree) alloc(parent NodeID, comp pathalgebra.Component) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, newNode(id, parent, comp))
	return id
}

func (t *Tree) child(parent NodeID, comp pathalgebra.Component) NodeID {
	p := t.nodes[parent]
	switch c := comp.(type) {
	case pathalgebra.Require:
		return t.lookupOrAlloc(p.Require, parent, comp, c.ModuleName)
	case pathalgebra.AccessProp:
		return t.lookupOrAlloc(p.AccessProp, parent, comp, c.PropName)
	case pathalgebra.WriteProp:
		return t.lookupOrAlloc(p.WriteProp, parent, comp, c.PropName)
	case pathalgebra.Call:
		return t.lookupOrAlloc(p.Call, parent, comp, c.CallID)
	case pathalgebra.New:
		return t.lookupOrAlloc(p.New, parent, comp, c.CallID)
	case pathalgebra.Arg:
		byArg, ok := p.Arg[c.CallID]
		if !ok {
			byArg = map[int]NodeID{}
			p.Arg[c.CallID] = byArg
		}
		if id, ok := byArg[c.ArgID]; ok {
			return id
		}
		id := t.alloc(parent, comp)
		byArg[c.ArgID] = id
		return id
	default:
		panic("modeltree: unknown component kind")
	}
}

func (t *Tree) lookupOrAlloc(m map[string]NodeID, parent NodeID, comp pathalgebra.Component, key string) NodeID {
	if id, ok := m[key]; ok {
		return id
	}
	id := t.alloc(parent, comp)
	m[key] = id
	return id
}

// find walks from the root along path without allocating, returning
// (id, true) if every component already has a matching child, or
// (0, false) as soon as one doesn't.
func (t *Tree) find(path pathalgebra.Path) (NodeID, bool) {
	cur := t.Root()
	for _, comp := range path {
		p := t.nodes[cur]
		var next NodeID
		var ok bool
		switch c := comp.(type) {
		case pathalgebra.Require:
			next, ok = p.Require[c.ModuleName]
		case pathalgebra.AccessProp:
			next, ok = p.AccessProp[c.PropName]
		case pathalgebra.WriteProp:
			next, ok = p.WriteProp[c.PropName]
		case pathalgebra.Call:
			next, ok = p.Call[c.CallID]
		case pathalgebra.New:
			next, ok = p.New[c.CallID]
		case pathalgebra.Arg:
			byArg, exists := p.Arg[c.CallID]
			if !exists {
				return 0, false
			}
			next, ok = byArg[c.ArgID]
		}
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}
