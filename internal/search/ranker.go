// Package search ranks indexed portfolio content with weighted multi-field
// fuzzy matching.
package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrInvalidWeights = errors.New("invalid field weights")
	ErrUnknownRanker  = errors.New("unknown ranker")
)

// DefaultThreshold accepts a field when its score is at most this value,
// on a 0.0 (exact) to 1.0 (anything) scale.
const DefaultThreshold = 0.3

// scoreFloor stands in for an exact field match so that weights still
// separate exact title hits from exact content hits.
const scoreFloor = 0.001

// Weights is the share each field contributes to a document's score.
type Weights struct {
	Title   float64 `yaml:"title" json:"title"`
	Excerpt float64 `yaml:"excerpt" json:"excerpt"`
	Content float64 `yaml:"content" json:"content"`
	Tags    float64 `yaml:"tags" json:"tags"`
}

// DefaultWeights favors titles; full-body content is noisy and down-weighted.
func DefaultWeights() Weights {
	return Weights{Title: 0.4, Excerpt: 0.3, Content: 0.2, Tags: 0.1}
}

// Validate requires non-negative weights that sum to 1.0.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Title, w.Excerpt, w.Content, w.Tags} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: negative weight %v", ErrInvalidWeights, v)
		}
	}
	sum := w.Title + w.Excerpt + w.Content + w.Tags
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Document is the matchable text of one indexed item. Rankers expect text
// already folded with normalize.Fold.
type Document struct {
	Title   string
	Excerpt string
	Content string
	Tags    []string
}

// Scored is a matching document. Index refers to the input slice.
type Scored struct {
	Index int
	Score float64
}

// RankOptions tune a ranking pass.
type RankOptions struct {
	Weights   Weights
	Threshold float64
}

// Ranker scores documents against a folded query. Only documents with at
// least one field at or under the threshold are returned, best (lowest)
// score first; ties keep input order.
type Ranker interface {
	Rank(docs []Document, query string, opts RankOptions) []Scored
}

// NewRanker returns the ranker registered under name.
func NewRanker(name string) (Ranker, error) {
	switch name {
	case "", "approx":
		return ApproxRanker{}, nil
	case "subsequence":
		return SubsequenceRanker{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRanker, name)
}

// fieldScorer scores query against each text. A negative score means the
// text did not match at all.
type fieldScorer func(query string, texts []string) []float64

// rank combines per-field scores into document scores: the product of
// max(score, floor)^weight over every field that passes the threshold.
func rank(docs []Document, query string, opts RankOptions, score fieldScorer) []Scored {
	n := len(docs)
	titles := make([]string, n)
	excerpts := make([]string, n)
	contents := make([]string, n)
	var tags []string
	var tagOwner []int
	for i, d := range docs {
		titles[i] = d.Title
		excerpts[i] = d.Excerpt
		contents[i] = d.Content
		for _, tag := range d.Tags {
			tags = append(tags, tag)
			tagOwner = append(tagOwner, i)
		}
	}

	// Best tag per document
	tagScores := make([]float64, n)
	for i := range tagScores {
		tagScores[i] = -1
	}
	for j, s := range score(query, tags) {
		owner := tagOwner[j]
		if s >= 0 && (tagScores[owner] < 0 || s < tagScores[owner]) {
			tagScores[owner] = s
		}
	}

	fields := []struct {
		scores []float64
		weight float64
	}{
		{score(query, titles), opts.Weights.Title},
		{score(query, excerpts), opts.Weights.Excerpt},
		{score(query, contents), opts.Weights.Content},
		{tagScores, opts.Weights.Tags},
	}

	var out []Scored
	for i := 0; i < n; i++ {
		total := 1.0
		matched := false
		for _, f := range fields {
			s := f.scores[i]
			if s < 0 || s > opts.Threshold {
				continue
			}
			matched = true
			total *= math.Pow(math.Max(s, scoreFloor), f.weight)
		}
		if matched {
			out = append(out, Scored{Index: i, Score: total})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score < out[b].Score
	})
	return out
}
