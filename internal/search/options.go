package search

import "log/slog"

const (
	// DefaultLimit caps Search results when the query sets no limit.
	DefaultLimit = 20
	// DefaultTypeLimit caps SearchByType results.
	DefaultTypeLimit = 10
	// DefaultSuggestionLimit caps Suggestions.
	DefaultSuggestionLimit = 5
	// DefaultCacheSize is the number of query results kept.
	DefaultCacheSize = 128
	// MinQueryLength is the shortest query (in characters) that can match.
	MinQueryLength = 2
)

// Option configures an Engine.
type Option func(*Engine)

// WithRanker replaces the default ApproxRanker.
func WithRanker(r Ranker) Option {
	return func(e *Engine) {
		if r != nil {
			e.ranker = r
		}
	}
}

// WithWeights sets the per-field weights. They must sum to 1.0.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.rankOpts.Weights = w
	}
}

// WithThreshold sets the field match threshold in [0, 1].
func WithThreshold(t float64) Option {
	return func(e *Engine) {
		e.rankOpts.Threshold = t
	}
}

// WithDefaultLimit sets the limit used when a query has none.
func WithDefaultLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.defaultLimit = n
		}
	}
}

// WithCacheSize sets the number of cached query results.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}

// WithLogger sets the logger for recovered failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
