package slides

// Similarity scores the transition between tag sets a and b.
//
// With c the number of tags of a that are also in b, x the number of tags of
// a that are not in b, and s = |a|+|b|, the score is min(c, x, s-x-c). Counts
// are taken from a's side only, so the result is not symmetric in general:
// Similarity({1}, {1,2,3}) is 0 while Similarity({1,2,3}, {1}) is 1. Scores
// produced by the sequencer and the scorer rely on this exact rule.
//
// The result is always within [0, min(|a|,|b|)] and is 0 when either set is
// empty, when the sets are disjoint, or when a equals b.
func Similarity(a, b TagSet) int {
	c := commonCount(a, b)
	x := len(a) - c
	s := len(a) + len(b)
	return min(c, x, s-x-c)
}

// commonCount counts the members of a that are also in b.
func commonCount(a, b TagSet) int {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}
	return n
}
