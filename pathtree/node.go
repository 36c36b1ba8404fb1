// Package pathtree implements the trace-side path tree:
// a prefix-shared tree of every access path observed during tracing,
// plus its structural-hash compression.
//
// Nodes live in an arena (Tree.nodes) addressed by stable NodeID
// indices rather than pointers: the tree can otherwise become cyclic
// once a constructor's result flows back into the library as an
// argument to itself (a ρ-relation whose source and sink paths
// overlap), and indices keep traversal explicit and stack-safe where
// pointers would not.
package pathtree

import (
	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/rho"
	"github.com/go-noregrets/noregrets/typelattice"
)

// NodeID is a stable index into a Tree's node arena. The root is
// always NodeID 0.
type NodeID int

// noParent marks the root node, whose Comp is also nil.
const noParent NodeID = -1

// Node is one vertex of the path tree: the path component labeling the
// incoming edge, the type recorded for the complete path ending here
// (if any), the observation order, a parent back-pointer, the six
// keyed child collections , and compression bookkeeping.
type Node struct {
	ID NodeID
	Parent NodeID
	Comp pathalgebra.Component // nil only for the root
	Type typelattice.Type // IsBottom() until a path ends here
	Order int // -1 until Type is set

	Require map[string]NodeID
	AccessProp map[string]NodeID
	WriteProp map[string]NodeID
	Call map[string]NodeID
	New map[string]NodeID
	Arg map[string]map[int]NodeID

	hashed bool
	hFull [2]uint64
	hNoArgs [2]uint64
	rhoChecked bool
	touchesRho_ bool
}

func newNode(id, parent NodeID, comp pathalgebra.Component) *Node {
	return &Node{
		ID: id,
		Parent: parent,
		Comp: comp,
		Order: -1,
		Require: map[string]NodeID{}, AccessProp: map[string]NodeID{},
		WriteProp: map[string]NodeID{}, Call: map[string]NodeID{},
		New: map[string]NodeID{}, Arg: map[string]map[int]NodeID{},
	}
}

// Tree is the arena holding every node observed so far, plus the
// run-wide ρ-relation set and the monotonic order
// counter.
type Tree struct {
	nodes []*Node
	nextOrder int
	Rho rho.Set
}

// New creates an empty tree with just a root node.
func New() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, newNode(0, noParent, nil))
	return t
}

// Root returns the root node's ID, always 0.
func (t *Tree) Root() NodeID { return 0 }

// Node returns the node at id. Panics on an out-of-range id, which
// would indicate a programming error (an id obtained from anywhere
// other than this same Tree).
func (t *Tree) Node(id NodeID) *Node { return t.nodes[id] }

// Len returns the number of nodes in the arena, including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// PathOf reconstructs the full access path ending at id by walking
// parent pointers to the root.
func (t *Tree) PathOf(id NodeID) pathalgebra.Path {
	var comps []pathalgebra.Component
	for n := t.nodes[id]; n.Comp != nil; n = t.nodes[n.Parent] {
		comps = append(comps, n.Comp)
	}
	// comps was built root-ward; reverse into root-to-leaf order.
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
