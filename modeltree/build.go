package modeltree

import (
	"golang.org/x/xerrors"

	"github.com/go-noregrets/noregrets/modelfile"
)

// Build reconstructs a Tree from a persisted model: every PathEntry is
// inserted in increasing Order , then every ρ-relation is dereferenced to the
// two nodes it names. A ρ-relation naming a path absent from Paths is
// model corruption  and Build reports it as an error rather
// than silently dropping the relation.
func Build(m *modelfile.Model) (*Tree, error) {
	t := &Tree{}
	t.nodes = append(t.nodes, newNode(0, noParent, nil))

	entries := make([]modelfile.PathEntry, len(m.Paths))
	copy(entries, m.Paths)
	sortByEntryOrder(entries)

	for _, e := range entries {
		cur := t.Root()
		for _, comp := range e.Path {
			cur = t.child(cur, comp)
		}
		n := t.nodes[cur]
		n.Type = e.Type
		n.Order = e.Order
	}

	for _, r := range m.Rho {
		source, ok := t.find(r.Source)
		if !ok {
			return nil, xerrors.Errorf("modeltree: model corruption: rho source path %s has no matching node", r.Source)
		}
		sink, ok := t.find(r.Sink)
		if !ok {
			return nil, xerrors.Errorf("modeltree: model corruption: rho sink path %s has no matching node", r.Sink)
		}
		t.Rho = append(t.Rho, RhoLink{Source: source, Sink: sink})
	}

	return t, nil
}

func sortByEntryOrder(entries []modelfile.PathEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].Order > entries[j].Order; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}
