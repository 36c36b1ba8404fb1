// Package rho holds ρ-relations : witnesses that a value
// produced at one access path was later handed back into the subject
// library as an argument somewhere else. Relations are held here at the
// path level, the form persistence and compression use; modeltree
// resolves them to node identities for replay.
package rho

import "github.com/go-noregrets/noregrets/pathalgebra"

// Relation is an ordered pair (source, sink): the value produced at
// Source flowed into the library again at Sink.
type Relation struct {
	Source pathalgebra.Path
	Sink pathalgebra.Path
}

// Set is an insertion-ordered collection of ρ-relations. Order matters
// for deterministic persistence.
type Set struct {
	relations []Relation
}

// Add records (source, sink). Duplicate relations are kept only once.
func (s *Set) Add(source, sink pathalgebra.Path) {
	for _, r := range s.relations {
		if r.Source.Equal(source) && r.Sink.Equal(sink) {
			return
		}
	}
	s.relations = append(s.relations, Relation{Source: source, Sink: sink})
}

// All returns the relations in recorded order. The caller must not
// mutate the result.
func (s *Set) All() []Relation {
	return s.relations
}

// Len reports the number of distinct relations.
func (s *Set) Len() int { return len(s.relations) }

// TouchesPath reports whether any relation mentions path as either its
// source or sink, for any prefix-extension of path — i.e. whether a
// subtree rooted here must be protected from compression.
func (s *Set) TouchesPath(path pathalgebra.Path) bool {
	for _, r := range s.relations {
		if isPrefixOf(path, r.Source) || isPrefixOf(path, r.Sink) {
			return true
		}
	}
	return false
}

func isPrefixOf(prefix, full pathalgebra.Path) bool {
	if len(prefix) > len(full) {
		return false
	}
	return prefix.Equal(full[:len(prefix)])
}
