package modelfile

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

func sampleModel() *Model {
	return &Model{
		Library:        "lib",
		LibraryVersion: "v1.2.0",
		Paths: []PathEntry{
			{
				Path:  pathalgebra.Path{pathalgebra.Require{ModuleName: "lib"}},
				Type:  typelattice.Type{Tag: typelattice.Object},
				Order: 0,
			},
			{
				Path: pathalgebra.Path{
					pathalgebra.Require{ModuleName: "lib"},
					pathalgebra.AccessProp{PropName: "greet"},
				},
				Type:  typelattice.Type{Tag: typelattice.Function},
				Order: 1,
			},
			{
				Path: pathalgebra.Path{
					pathalgebra.Require{ModuleName: "lib"},
					pathalgebra.AccessProp{PropName: "greet"},
					pathalgebra.Call{CallID: "ab12c3"},
				},
				Type: typelattice.Type{
					Tag:     typelattice.String,
					Literal: &typelattice.Literal{PrimType: typelattice.String, Value: "hello"},
				},
				Order: 2,
			},
			{
				Path: pathalgebra.Path{
					pathalgebra.Require{ModuleName: "lib"},
					pathalgebra.AccessProp{PropName: "limit"},
				},
				Type: typelattice.Type{
					Tag:     typelattice.Number,
					Literal: &typelattice.Literal{PrimType: typelattice.Number, Value: math.Inf(1)},
				},
				Order: 3,
			},
		},
		Rho: []RhoEntry{
			{
				Source: pathalgebra.Path{pathalgebra.Require{ModuleName: "lib"}},
				Sink: pathalgebra.Path{
					pathalgebra.Require{ModuleName: "lib"},
					pathalgebra.AccessProp{PropName: "greet"},
					pathalgebra.Call{CallID: "ab12c3"},
					pathalgebra.Arg{CallID: "ab12c3", ArgID: 0},
				},
			},
		},
	}
}

func TestEncodeDecodeRoundTrips(t *testing.T) {
	want := sampleModel()
	data, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Library != want.Library || got.LibraryVersion != want.LibraryVersion {
		t.Fatalf("library/version mismatch: got %+v", got)
	}
	if len(got.Paths) != len(want.Paths) {
		t.Fatalf("got %d paths, want %d", len(got.Paths), len(want.Paths))
	}
	for i := range want.Paths {
		if !got.Paths[i].Path.Equal(want.Paths[i].Path) {
			t.Fatalf("path %d: got %s, want %s", i, got.Paths[i].Path, want.Paths[i].Path)
		}
		if !got.Paths[i].Type.Equal(want.Paths[i].Type) {
			t.Fatalf("path %d type: got %v, want %v", i, got.Paths[i].Type, want.Paths[i].Type)
		}
		if got.Paths[i].Order != want.Paths[i].Order {
			t.Fatalf("path %d order: got %d, want %d", i, got.Paths[i].Order, want.Paths[i].Order)
		}
	}
	if len(got.Rho) != 1 || !got.Rho[0].Source.Equal(want.Rho[0].Source) || !got.Rho[0].Sink.Equal(want.Rho[0].Sink) {
		t.Fatalf("rho relation did not round-trip: %v", cmp.Diff(want.Rho, got.Rho))
	}
}

func TestEncodeUsesInfinitySentinelForInfiniteNumberLiteral(t *testing.T) {
	m := sampleModel()
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), `"value": "Infinity"`) {
		t.Fatalf("encoded JSON did not use the Infinity sentinel:\n%s", data)
	}
}
