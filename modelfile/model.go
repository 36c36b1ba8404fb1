// Package modelfile implements model persistence : the
// JSON on-disk representation of a path tree's observations and
// ρ-relations, consumed by noregrets-check and produced by
// noregrets-trace.
package modelfile

import (
	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/pathtree"
	"github.com/go-noregrets/noregrets/typelattice"
)

// Model is the persisted form of one traced run: every observed
// (path, type, order) triple, the library's name and recorded version,
// and every ρ-relation witnessed during tracing.
type Model struct {
	Library string
	LibraryVersion string
	Paths []PathEntry
	Rho []RhoEntry
}

// PathEntry is one terminal observation.
type PathEntry struct {
	Path pathalgebra.Path
	Type typelattice.Type
	Order int
}

// RhoEntry is one persisted ρ-relation.
type RhoEntry struct {
	Source pathalgebra.Path
	Sink pathalgebra.Path
}

// FromTree builds a Model from a completed (and, typically, already
// compressed) trace tree.
func FromTree(library, libraryVersion string, tree *pathtree.Tree) *Model {
	m := &Model{Library: library, LibraryVersion: libraryVersion}
	for _, o := range tree.Observations() {
		node := tree.Node(o.ID)
		m.Paths = append(m.Paths, PathEntry{
			Path: tree.PathOf(o.ID),
			Type: node.Type,
			Order: o.Order,
		})
	}
	for _, r := range tree.Rho.All() {
		m.Rho = append(m.Rho, RhoEntry{Source: r.Source, Sink: r.Sink})
	}
	return m
}
