package hostbridge

import (
	"github.com/go-noregrets/noregrets/pathtree"
	"github.com/go-noregrets/noregrets/tracer"
)

// Harness is the test-framework-shim execution mode : a client
// that looks like a minimal describe/it suite registers its cases
// against a Harness instead of running business logic directly, and
// RunSuite drives every case to completion, single-threaded and in
// registration order.
type Harness struct {
	suites []suite
}

type suite struct {
	name string
	cases []testCase
}

type testCase struct {
	name string
	fn Client
}

// Describe opens a named group of cases; register registers them.
func (h *Harness) Describe(name string, register func(it func(caseName string, fn Client))) {
	s := suite{name: name}
	it := func(caseName string, fn Client) {
		s.cases = append(s.cases, testCase{name: caseName, fn: fn})
	}
	register(it)
	h.suites = append(h.suites, s)
}

// CaseResult reports the outcome of one registered case.
type CaseResult struct {
	Suite string
	Case string
	Err error
}

// RunSuite executes every case a program registered on a fresh
// Harness, each against its own mediated Loader sharing one path tree
// , and returns one CaseResult per case in
// registration order plus the accumulated tree.
func RunSuite(reg *Registry, passthrough map[string]any, program func(h *Harness)) ([]CaseResult, *pathtree.Tree, error) {
	h := &Harness{}
	program(h)

	tr := tracer.New()
	var results []CaseResult
	for _, s := range h.suites {
		for _, c := range s.cases {
			l := newLoader(reg, tr, passthrough)
			err := c.fn(l)
			results = append(results, CaseResult{Suite: s.name, Case: c.name, Err: err})
		}
	}
	return results, tr.Tree, nil
}
