package libver

import "testing"

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name           string
		recorded       string
		actual         string
		wantRelation   Relation
	}{
		{"same version", "1.2.0", "1.2.0", Same},
		{"upgraded, no v prefix", "1.2.0", "1.3.0", Upgraded},
		{"downgraded, mixed v prefix", "v2.0.0", "1.9.0", Downgraded},
		{"unknown on empty actual", "1.2.0", "", Unknown},
		{"unknown on garbage version", "not-a-version", "1.2.0", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Annotate(tt.recorded, tt.actual)
			if got.Relation != tt.wantRelation {
				t.Errorf("Annotate(%q, %q).Relation = %q, want %q", tt.recorded, tt.actual, got.Relation, tt.wantRelation)
			}
		})
	}
}
