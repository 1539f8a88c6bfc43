package search

import "strings"

// ApproxRanker scores a field by the fewest edits needed to turn the query
// into some substring of the field, relative to the query length. Match
// location is ignored, so a typo anywhere in a long body still matches.
type ApproxRanker struct{}

// Rank implements Ranker.
func (ApproxRanker) Rank(docs []Document, query string, opts RankOptions) []Scored {
	return rank(docs, query, opts, approxScores)
}

func approxScores(query string, texts []string) []float64 {
	q := []rune(query)
	scores := make([]float64, len(texts))
	for i, text := range texts {
		switch {
		case text == "" || len(q) == 0:
			scores[i] = -1
		case strings.Contains(text, query):
			scores[i] = 0
		default:
			scores[i] = float64(substringDistance(q, []rune(text))) / float64(len(q))
		}
	}
	return scores
}

// substringDistance returns the minimum edit distance between q and any
// substring of t.
func substringDistance(q, t []rune) int {
	m := len(q)
	col := make([]int, m+1)
	for i := range col {
		col[i] = i
	}
	best := col[m]

	for _, c := range t {
		diag := col[0]
		col[0] = 0
		for i := 1; i <= m; i++ {
			left := col[i]
			cost := 1
			if q[i-1] == c {
				cost = 0
			}
			col[i] = min(left+1, col[i-1]+1, diag+cost)
			diag = left
		}
		if col[m] < best {
			best = col[m]
			if best == 0 {
				return 0
			}
		}
	}
	return best
}
