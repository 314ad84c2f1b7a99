package match

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TokenSet
	}{
		{
			name: "empty",
			in:   "",
			want: TokenSet{},
		},
		{
			name: "separators only",
			in:   " ,./!()",
			want: TokenSet{},
		},
		{
			name: "lowercases and splits",
			in:   "Python FastAPI PostgreSQL",
			want: NewTokenSet("python", "fastapi", "postgresql"),
		},
		{
			name: "keeps plus and hash",
			in:   "C++ and C# developer",
			want: NewTokenSet("c++", "and", "c#", "developer"),
		},
		{
			name: "collapses duplicates",
			in:   "go go GO",
			want: NewTokenSet("go"),
		},
		{
			name: "mixed punctuation",
			in:   "react, node.js / TypeScript",
			want: NewTokenSet("react", "node", "js", "typescript"),
		},
		{
			name: "digits survive",
			in:   "401k ES2015",
			want: NewTokenSet("401k", "es2015"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	const in = "Senior Go / Kubernetes engineer, C++ experience"
	first := Tokenize(in)
	second := Tokenize(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tokenize not deterministic: %v vs %v", first, second)
	}
}

func TestTokenSetIntersects(t *testing.T) {
	a := NewTokenSet("python", "sql")
	b := NewTokenSet("sql", "excel")
	c := NewTokenSet("figma")

	if !a.Intersects(b) {
		t.Error("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected a and c not to intersect")
	}
	if c.Intersects(TokenSet{}) {
		t.Error("empty set must not intersect anything")
	}
}
