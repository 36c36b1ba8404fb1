package tracer

import (
	"testing"

	"github.com/go-noregrets/noregrets/typelattice"
)

func counter() typelattice.Object {
	n := 0
	return typelattice.Object{
		"inc": typelattice.Func(func(args []any) (any, error) {
			n++
			return float64(n), nil
		}),
		"label": "counter",
	}
}

func TestRequireRecordsRootPath(t *testing.T) {
	tr := New()
	root := tr.Require("lib", counter())

	if tr.Tree.Len() != 2 { // root arena node + the require node
		t.Fatalf("got %d nodes after Require, want 2", tr.Tree.Len())
	}
	if root.Path().String() != `require("lib")` {
		t.Fatalf("unexpected root path: %s", root.Path())
	}
}

func TestGetThenCallRecordsFunctionAndResult(t *testing.T) {
	tr := New()
	root := tr.Require("lib", counter())

	incAny, err := root.Get("inc")
	if err != nil {
		t.Fatalf("Get(inc): %v", err)
	}
	inc, ok := incAny.(*Mediator)
	if !ok {
		t.Fatalf("Get(inc) = %T, want *Mediator", incAny)
	}

	result, err := inc.Call()
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result != float64(1) {
		t.Fatalf("got result %v, want 1", result)
	}

	labelAny, err := root.Get("label")
	if err != nil {
		t.Fatalf("Get(label): %v", err)
	}
	if labelAny != "counter" {
		t.Fatalf("got label %v, want %q", labelAny, "counter")
	}
}

func TestSetRecordsWriteProp(t *testing.T) {
	tr := New()
	root := tr.Require("lib", counter())

	if err := root.Set("label", "renamed"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw := unwrap(root).(typelattice.Object)
	if raw["label"] != "renamed" {
		t.Fatalf("Set did not mutate the underlying object: %v", raw["label"])
	}
}

func TestRhoRelationRecordedWhenWrappedValueFlowsBackAsArg(t *testing.T) {
	tr := New()
	var captured any
	lib := typelattice.Object{
		"make": typelattice.Func(func(args []any) (any, error) {
			return typelattice.Object{"id": "thing"}, nil
		}),
		"accept": typelattice.Func(func(args []any) (any, error) {
			captured = args[0]
			return nil, nil
		}),
	}
	root := tr.Require("lib", lib)

	makeAny, _ := root.Get("make")
	make_ := makeAny.(*Mediator)
	thing, err := make_.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	thingMediator := thing.(*Mediator)

	acceptAny, _ := root.Get("accept")
	accept := acceptAny.(*Mediator)
	if _, err := accept.Call(thingMediator); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if captured == nil {
		t.Fatalf("accept was not invoked with the raw value")
	}

	if tr.Tree.Rho.Len() != 1 {
		t.Fatalf("got %d rho relations, want 1", tr.Tree.Rho.Len())
	}
	rel := tr.Tree.Rho.All()[0]
	if !rel.Source.Equal(thingMediator.Path()) {
		t.Fatalf("rho source = %s, want %s", rel.Source, thingMediator.Path())
	}
}

func TestCallOnNonFuncMediatorErrors(t *testing.T) {
	tr := New()
	root := tr.Require("lib", counter())
	if _, err := root.Call(); err == nil {
		t.Fatalf("Call on an Object mediator should error")
	}
}
