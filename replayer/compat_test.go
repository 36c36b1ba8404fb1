package replayer

import (
	"testing"

	"github.com/go-noregrets/noregrets/typelattice"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		name     string
		actual   typelattice.Type
		required typelattice.Type
		want     bool
	}{
		{"exact tag match", typelattice.Type{Tag: typelattice.String}, typelattice.Type{Tag: typelattice.String}, true},
		{"required undefined always compatible", typelattice.Type{Tag: typelattice.Number}, typelattice.Type{Tag: typelattice.Undefined}, true},
		{"actual null is always compatible", typelattice.Type{Tag: typelattice.Null}, typelattice.Type{Tag: typelattice.Object}, true},
		{"required null is always compatible", typelattice.Type{Tag: typelattice.Object}, typelattice.Type{Tag: typelattice.Null}, true},
		{"tag change is incompatible", typelattice.Type{Tag: typelattice.Number}, typelattice.Type{Tag: typelattice.String}, false},
		{"literal differs but tag matches", typelattice.Type{Tag: typelattice.String, Literal: &typelattice.Literal{PrimType: typelattice.String, Value: "b"}}, typelattice.Type{Tag: typelattice.String, Literal: &typelattice.Literal{PrimType: typelattice.String, Value: "a"}}, true},
		{"required object widens to accept function", typelattice.Type{Tag: typelattice.Function}, typelattice.Type{Tag: typelattice.Object}, true},
		{"required object widens to accept map", typelattice.Type{Tag: typelattice.Map}, typelattice.Type{Tag: typelattice.Object}, true},
		{"required object widens to accept set", typelattice.Type{Tag: typelattice.Set}, typelattice.Type{Tag: typelattice.Object}, true},
		{"required object does not widen to accept array", typelattice.Type{Tag: typelattice.Array}, typelattice.Type{Tag: typelattice.Object}, false},
		{"required function does not widen to accept object", typelattice.Type{Tag: typelattice.Object}, typelattice.Type{Tag: typelattice.Function}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.actual, tt.required); got != tt.want {
				t.Errorf("Compatible(%v, %v) = %v, want %v", tt.actual, tt.required, got, tt.want)
			}
		})
	}
}
