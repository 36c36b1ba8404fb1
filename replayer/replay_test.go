package replayer

import (
	"testing"

	"github.com/go-noregrets/noregrets/modelfile"
	"github.com/go-noregrets/noregrets/modeltree"
	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

func buildModel(t *testing.T, greetReturnTag typelattice.Tag) *modeltree.Tree {
	t.Helper()
	lib := pathalgebra.Path{pathalgebra.Require{ModuleName: "lib"}}
	greet := lib.Append(pathalgebra.AccessProp{PropName: "greet"})
	call := greet.Append(pathalgebra.Call{CallID: "c1"})
	arg0 := call.Append(pathalgebra.Arg{CallID: "c1", ArgID: 0})

	m := &modelfile.Model{
		Library: "lib",
		Paths: []modelfile.PathEntry{
			{Path: lib, Type: typelattice.Type{Tag: typelattice.Object}, Order: 0},
			{Path: greet, Type: typelattice.Type{Tag: typelattice.Function}, Order: 1},
			{Path: arg0, Type: typelattice.Type{Tag: typelattice.String}, Order: 2},
			{Path: call, Type: typelattice.Type{Tag: greetReturnTag}, Order: 3},
		},
	}
	tree, err := modeltree.Build(m)
	if err != nil {
		t.Fatalf("modeltree.Build: %v", err)
	}
	return tree
}

func TestRunNoBreakageWhenShapeUnchanged(t *testing.T) {
	tree := buildModel(t, typelattice.String)
	lib := typelattice.Object{
		"greet": typelattice.Func(func(args []any) (any, error) {
			return "hello " + args[0].(string), nil
		}),
	}
	breaking := New(tree).Run(lib)
	if len(breaking) != 0 {
		t.Fatalf("expected no breaking paths, got %+v", breaking)
	}
}

func TestRunReportsTagChangeOnReturnValue(t *testing.T) {
	tree := buildModel(t, typelattice.String)
	lib := typelattice.Object{
		"greet": typelattice.Func(func(args []any) (any, error) {
			return float64(42), nil
		}),
	}
	breaking := New(tree).Run(lib)
	if len(breaking) != 1 {
		t.Fatalf("expected exactly 1 breaking path, got %d: %+v", len(breaking), breaking)
	}
	if breaking[0].Required.Tag != typelattice.String || breaking[0].Actual.Tag != typelattice.Number {
		t.Fatalf("unexpected breaking path: %+v", breaking[0])
	}
}

func TestRunReportsMissingFunction(t *testing.T) {
	tree := buildModel(t, typelattice.String)
	lib := typelattice.Object{}
	breaking := New(tree).Run(lib)
	if len(breaking) != 1 {
		t.Fatalf("expected exactly 1 breaking path for the missing function, got %d: %+v", len(breaking), breaking)
	}
	if breaking[0].Required.Tag != typelattice.Function {
		t.Fatalf("unexpected breaking path: %+v", breaking[0])
	}
}

func TestRunReportsFunctionNowErroring(t *testing.T) {
	tree := buildModel(t, typelattice.String)
	lib := typelattice.Object{
		"greet": typelattice.Func(func(args []any) (any, error) {
			return nil, errBoom
		}),
	}
	breaking := New(tree).Run(lib)
	if len(breaking) != 1 {
		t.Fatalf("expected exactly 1 breaking path, got %d: %+v", len(breaking), breaking)
	}
	if breaking[0].Reason == "" {
		t.Fatalf("expected a reason to be recorded")
	}
}

var errBoom = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
