package match

// Jaccard returns |a ∩ b| / |a ∪ b|. Either set being empty yields exactly
// 0.0 (a deliberate floor, not an "undefined" signal); the result is always
// within [0, 1] and equals 1 only for identical non-empty sets.
func Jaccard(a, b TokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	intersection := 0
	for t := range small {
		if large.Has(t) {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
