package modeltree

import (
	"testing"

	"github.com/go-noregrets/noregrets/modelfile"
	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

func TestBuildReconstructsTreeAndRho(t *testing.T) {
	lib := pathalgebra.Path{pathalgebra.Require{ModuleName: "lib"}}
	greet := lib.Append(pathalgebra.AccessProp{PropName: "greet"})
	call := greet.Append(pathalgebra.Call{CallID: "c1"})
	arg := call.Append(pathalgebra.Arg{CallID: "c1", ArgID: 0})

	m := &modelfile.Model{
		Library: "lib",
		Paths: []modelfile.PathEntry{
			{Path: lib, Type: typelattice.Type{Tag: typelattice.Object}, Order: 0},
			{Path: greet, Type: typelattice.Type{Tag: typelattice.Function}, Order: 1},
			{Path: arg, Type: typelattice.Type{Tag: typelattice.Object}, Order: 3},
			{Path: call, Type: typelattice.Type{Tag: typelattice.Object}, Order: 2},
		},
		Rho: []modelfile.RhoEntry{
			{Source: lib, Sink: arg},
		},
	}

	tree, err := Build(m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tree.Len() != 5 { // root + 4 entries
		t.Fatalf("got %d nodes, want 5", tree.Len())
	}
	if len(tree.Rho) != 1 {
		t.Fatalf("got %d rho links, want 1", len(tree.Rho))
	}

	callID, ok := tree.find(call)
	if !ok {
		t.Fatalf("call path not found after Build")
	}
	children := tree.Children(tree.Root())
	if len(children) != 1 {
		t.Fatalf("root should have exactly one child (require), got %d", len(children))
	}
	_ = callID
}

func TestBuildReportsCorruptionOnDanglingRho(t *testing.T) {
	lib := pathalgebra.Path{pathalgebra.Require{ModuleName: "lib"}}
	nowhere := lib.Append(pathalgebra.AccessProp{PropName: "ghost"})
	m := &modelfile.Model{
		Library: "lib",
		Paths: []modelfile.PathEntry{
			{Path: lib, Type: typelattice.Type{Tag: typelattice.Object}, Order: 0},
		},
		Rho: []modelfile.RhoEntry{
			{Source: lib, Sink: nowhere},
		},
	}
	if _, err := Build(m); err == nil {
		t.Fatalf("expected an error for a rho relation whose sink was never observed")
	}
}
