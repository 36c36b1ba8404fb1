package pathtree

import (
	"fmt"

	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

// Record walks the tree from the root along path, creating one child
// per component as needed, and stores typ on the terminal node if (and
// only if) nothing has been recorded there yet . It returns the terminal
// node's id.
//
// Record(path, t) is idempotent : calling it
// twice with the same (path, t) leaves the tree unchanged beyond the
// first call.
func (t *Tree) Record(path pathalgebra.Path, typ typelattice.Type) NodeID {
	cur := t.Root()
	for _, comp := range path {
		cur = t.child(cur, comp)
	}
	n := t.nodes[cur]
	if n.Type.IsBottom() {
		n.Type = typ
		n.Order = t.nextOrder
		t.nextOrder++
	}
	return cur
}

// child returns the existing child of parent labeled by comp,
// allocating a fresh node if none exists yet.
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
		panic(fmt.Sprintf("pathtree: unknown component kind %T", comp))
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
