package search

import (
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// SubsequenceRanker matches when the query characters appear in order in a
// field. A field scores 0 when the matched characters are contiguous and
// approaches 1 as they spread out.
type SubsequenceRanker struct{}

// Rank implements Ranker.
func (SubsequenceRanker) Rank(docs []Document, query string, opts RankOptions) []Scored {
	return rank(docs, query, opts, subsequenceScores)
}

// fieldTexts implements fuzzy.Source for a slice of field values.
type fieldTexts []string

func (ft fieldTexts) String(i int) string {
	return ft[i]
}

func (ft fieldTexts) Len() int {
	return len(ft)
}

func subsequenceScores(query string, texts []string) []float64 {
	scores := make([]float64, len(texts))
	for i := range scores {
		scores[i] = -1
	}

	queryLen := utf8.RuneCountInString(query)
	if queryLen == 0 {
		return scores
	}

	for _, m := range fuzzy.FindFrom(query, fieldTexts(texts)) {
		if len(m.MatchedIndexes) == 0 {
			continue
		}
		text := texts[m.Index]
		first := m.MatchedIndexes[0]
		last := m.MatchedIndexes[len(m.MatchedIndexes)-1]
		span := utf8.RuneCountInString(text[first:last]) + 1

		compactness := float64(queryLen) / float64(span)
		if compactness > 1 {
			compactness = 1
		}
		scores[m.Index] = 1 - compactness
	}
	return scores
}
