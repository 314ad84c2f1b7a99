// Package match implements the lexical matching primitives: word-set
// tokenization and Jaccard similarity over token sets.
package match

// TokenSet is a set of lowercase word tokens.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from the given tokens.
func NewTokenSet(tokens ...string) TokenSet {
	s := make(TokenSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the token.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Add inserts a token into the set.
func (s TokenSet) Add(token string) {
	s[token] = struct{}{}
}

// Intersects reports whether the two sets share at least one token.
func (s TokenSet) Intersects(other TokenSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if large.Has(t) {
			return true
		}
	}
	return false
}

// Tokenize splits text into a set of lowercase word tokens. A token is a
// maximal run of [a-zA-Z0-9+#] so stacks like "c++" and "c#" survive; every
// other character is a separator. Empty input yields an empty set.
func Tokenize(text string) TokenSet {
	tokens := make(TokenSet)
	start := -1
	for i := 0; i < len(text); i++ {
		if isTokenByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens.Add(lower(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens.Add(lower(text[start:]))
	}
	return tokens
}

func isTokenByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '+' || c == '#':
		return true
	}
	return false
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
