package match

import (
	"math"
	"testing"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b TokenSet
		want float64
	}{
		{"both empty", TokenSet{}, TokenSet{}, 0.0},
		{"left empty", TokenSet{}, NewTokenSet("go"), 0.0},
		{"right empty", NewTokenSet("go"), TokenSet{}, 0.0},
		{"identical", NewTokenSet("go", "redis"), NewTokenSet("go", "redis"), 1.0},
		{"disjoint", NewTokenSet("go"), NewTokenSet("rust"), 0.0},
		{"half overlap", NewTokenSet("go", "redis"), NewTokenSet("go", "rust"), 1.0 / 3.0},
		{"subset", NewTokenSet("go"), NewTokenSet("go", "redis", "rust"), 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJaccardBoundsAndSymmetry(t *testing.T) {
	sets := []TokenSet{
		{},
		NewTokenSet("python"),
		NewTokenSet("python", "sql", "aws"),
		NewTokenSet("react", "sql"),
		Tokenize("Go Kubernetes Docker Terraform"),
	}

	for i, a := range sets {
		for j, b := range sets {
			got := Jaccard(a, b)
			if got < 0.0 || got > 1.0 {
				t.Errorf("Jaccard(sets[%d], sets[%d]) = %v out of [0,1]", i, j, got)
			}
			if rev := Jaccard(b, a); rev != got {
				t.Errorf("Jaccard not symmetric: %v vs %v", got, rev)
			}
		}
		if len(a) > 0 && Jaccard(a, a) != 1.0 {
			t.Errorf("Jaccard(a, a) != 1.0 for non-empty set %v", a)
		}
	}
}
