package pathalgebra

import "testing"

func TestVarianceParity(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want Variance
	}{
		{"root", Path{Require{"lib"}}, Covariant},
		{"read", Path{Require{"lib"}, AccessProp{"greet"}}, Covariant},
		{"one write", Path{Require{"lib"}, WriteProp{"x"}}, Contravariant},
		{"call result", Path{Require{"lib"}, AccessProp{"id"}, Call{"c1"}}, Covariant},
		{"arg itself", Path{Require{"lib"}, AccessProp{"id"}, Arg{"c1", 0}}, Contravariant},
		{"two writes", Path{Require{"lib"}, WriteProp{"a"}, WriteProp{"b"}}, Covariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.Variance(); got != tt.want {
				t.Errorf("Variance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathEqual(t *testing.T) {
	a := Path{Require{"lib"}, Arg{"c1", 0}}
	b := Path{Require{"lib"}, Arg{"c1", 0}}
	c := Path{Require{"lib"}, Arg{"c1", 1}}
	if !a.Equal(b) {
		t.Errorf("expected equal paths")
	}
	if a.Equal(c) {
		t.Errorf("expected unequal paths")
	}
}
