package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/normalize"
)

// Builder produces the items to index. *indexer.Indexer implements it.
type Builder interface {
	Build(ctx context.Context) []model.SearchableItem
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context) []model.SearchableItem

func (f BuilderFunc) Build(ctx context.Context) []model.SearchableItem { return f(ctx) }

// index is one immutable build: the items and their folded documents.
type index struct {
	items []model.SearchableItem
	docs  []Document
}

// Engine answers queries over a lazily built, cached index. The index is
// built on the first query and reused until Clear. Search never fails:
// internal errors are logged and yield no results.
type Engine struct {
	mu           sync.Mutex
	builder      Builder
	ranker       Ranker
	rankOpts     RankOptions
	defaultLimit int
	cacheSize    int
	logger       *slog.Logger

	index   *index
	results *lru.Cache[string, []model.SearchResult]
}

// New creates an Engine over builder.
func New(builder Builder, opts ...Option) (*Engine, error) {
	e := &Engine{
		builder:      builder,
		ranker:       ApproxRanker{},
		rankOpts:     RankOptions{Weights: DefaultWeights(), Threshold: DefaultThreshold},
		defaultLimit: DefaultLimit,
		cacheSize:    DefaultCacheSize,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.rankOpts.Weights.Validate(); err != nil {
		return nil, err
	}
	if e.rankOpts.Threshold < 0 || e.rankOpts.Threshold > 1 {
		return nil, fmt.Errorf("threshold %v out of range [0, 1]", e.rankOpts.Threshold)
	}

	cache, err := lru.New[string, []model.SearchResult](e.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	e.results = cache
	return e, nil
}

// Search ranks the index against q. Results are best first, truncated to
// the limit, then narrowed by the type and tag filters; filtering never
// reorders results.
func (e *Engine) Search(q model.SearchQuery) (results []model.SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("search failed", "query", q.Query, "error", r)
			results = []model.SearchResult{}
		}
	}()

	text := strings.TrimSpace(q.Query)
	if utf8.RuneCountInString(text) < MinQueryLength {
		return []model.SearchResult{}
	}
	limit := q.Limit
	if limit <= 0 {
		limit = e.defaultLimit
	}
	folded := normalize.Fold(text)

	e.mu.Lock()
	defer e.mu.Unlock()

	key := cacheKey(folded, limit, q.Filters)
	if cached, ok := e.results.Get(key); ok {
		return cloneResults(cached)
	}

	idx := e.ensureIndex()
	scored := e.ranker.Rank(idx.docs, folded, e.rankOpts)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	results = make([]model.SearchResult, 0, len(scored))
	for _, s := range scored {
		item := idx.items[s.Index]
		if !matchesFilters(item, q.Filters) {
			continue
		}
		results = append(results, model.SearchResult{
			ID:      item.ID,
			Type:    item.Type,
			Title:   item.Title,
			Excerpt: item.Excerpt,
			URL:     item.URL,
			Tags:    slices.Clone(item.Tags),
			Score:   s.Score,
		})
	}

	e.results.Add(key, results)
	return cloneResults(results)
}

// SearchByType searches only items of type t. A limit of zero or less uses
// DefaultTypeLimit.
func (e *Engine) SearchByType(t model.ItemType, text string, limit int) []model.SearchResult {
	if limit <= 0 {
		limit = DefaultTypeLimit
	}
	return e.Search(model.SearchQuery{
		Query:   text,
		Filters: &model.SearchFilters{Types: []model.ItemType{t}},
		Limit:   limit,
	})
}

// Stats counts the items in the current index, building it if needed.
func (e *Engine) Stats() (stats model.SearchStats) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("search stats failed", "error", r)
			stats = model.NewSearchStats(nil)
		}
	}()

	e.mu.Lock()
	defer e.mu.Unlock()
	return model.NewSearchStats(e.ensureIndex().items)
}

// Items returns a copy of the indexed items, building the index if needed.
func (e *Engine) Items() (items []model.SearchableItem) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("search items failed", "error", r)
			items = nil
		}
	}()

	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.ensureIndex().items)
}

// Clear drops the cached index and results. The next query rebuilds.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.index = nil
	e.results.Purge()
}

// ensureIndex builds the index on first use. Callers hold e.mu.
func (e *Engine) ensureIndex() *index {
	if e.index != nil {
		return e.index
	}

	items := e.builder.Build(context.Background())
	docs := make([]Document, len(items))
	for i, item := range items {
		tags := make([]string, len(item.Tags))
		for j, tag := range item.Tags {
			tags[j] = normalize.Fold(tag)
		}
		docs[i] = Document{
			Title:   normalize.Fold(item.Title),
			Excerpt: normalize.Fold(item.Excerpt),
			Content: normalize.Fold(item.Content),
			Tags:    tags,
		}
	}

	e.index = &index{items: items, docs: docs}
	e.logger.Debug("search index ready", "items", len(items))
	return e.index
}

// matchesFilters applies the type filter (exact membership) and the tag
// filter (case-insensitive substring against any tag).
func matchesFilters(item model.SearchableItem, f *model.SearchFilters) bool {
	if f == nil {
		return true
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, item.Type) {
		return false
	}
	if len(f.Tags) > 0 {
		for _, tag := range item.Tags {
			for _, want := range f.Tags {
				if normalize.Contains(tag, want) {
					return true
				}
			}
		}
		return false
	}
	return true
}

// cacheKey quotes every filter element so differently split tag lists
// never share a key.
func cacheKey(query string, limit int, f *model.SearchFilters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q\x00%d", query, limit)
	if f != nil {
		fmt.Fprintf(&b, "\x00%q\x00%q", f.Types, f.Tags)
	}
	return b.String()
}

func cloneResults(in []model.SearchResult) []model.SearchResult {
	out := make([]model.SearchResult, len(in))
	for i, r := range in {
		r.Tags = slices.Clone(r.Tags)
		out[i] = r
	}
	return out
}
