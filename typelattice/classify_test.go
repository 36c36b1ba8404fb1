package typelattice

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		value any
		covariant bool
		want Type
	}{
		{"nil", nil, true, Type{Tag: Null}},
		{"missing", NotPresent, true, Type{Tag: Undefined}},
		{"error", errors.New("boom"), true, Type{Tag: Error}},
		{"array", []int{1, 2, 3}, true, Type{Tag: Array}},
		{"map", map[string]int{"a": 1}, true, Type{Tag: Map}},
		{"set", map[string]struct{}{"a": {}}, true, Type{Tag: Set}},
		{"string covariant", "hello", true, Type{Tag: String, Literal: &Literal{PrimType: String, Value: "hello"}}},
		{"string contravariant", "hello", false, Type{Tag: String}},
		{"number covariant", 42, true, Type{Tag: Number, Literal: &Literal{PrimType: Number, Value: 42.0}}},
		{"bool covariant", true, true, Type{Tag: Boolean, Literal: &Literal{PrimType: Boolean, Value: true}}},
		{"function", func() {}, true, Type{Tag: Function}},
		{"object", struct{ X int }{1}, true, Type{Tag: Object}},
		{"sdk object", Object{"x": 1}, true, Type{Tag: Object}},
		{"sdk func", Func(func(args []any) (any, error) { return nil, nil }), true, Type{Tag: Function}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.value, tt.covariant)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%v, %v) mismatch (-want +got):\n%s", tt.value, tt.covariant, diff)
			}
		})
	}
}

func TestTypeEqualWidening(t *testing.T) {
	// Two literals of the same primitive tag but different values must
	// compare unequal: Equal does not widen a literal to its bare tag.
	first := Type{Tag: String, Literal: &Literal{PrimType: String, Value: "a"}}
	second := Type{Tag: String, Literal: &Literal{PrimType: String, Value: "b"}}
	if first.Equal(second) {
		t.Fatalf("distinct literals compared equal")
	}
}
