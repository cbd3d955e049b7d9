package nlp

// TokenSet is the set of distinct tokens of one text span.
type TokenSet map[string]struct{}

func NewTokenSet(tokens []string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Jaccard returns |A ∩ B| / |A ∪ B| over the distinct tokens of a and b,
// and 0 when either side is empty.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	return JaccardSets(NewTokenSet(a), NewTokenSet(b))
}

// JaccardSets is Jaccard for sets that were already built, so pattern sets
// can be computed once and reused for every message.
func JaccardSets(a, b TokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for t := range small {
		if _, ok := large[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
