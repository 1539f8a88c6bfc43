// Package indexer flattens heterogeneous portfolio content into searchable
// items. A failing source never fails the build: it contributes no items and
// is reported as a warning.
package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikbrunner/folio/internal/model"
)

// Source produces searchable items for one kind of content.
type Source interface {
	Name() string
	Items(ctx context.Context) ([]model.SearchableItem, error)
}

// Warning records a source that was skipped or an item that was dropped.
type Warning struct {
	Source string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Source, w.Err)
}

// Indexer builds the flat item list from its sources, in source order.
type Indexer struct {
	sources  []Source
	logger   *slog.Logger
	warnings []Warning
}

// New creates an Indexer. A nil logger uses slog.Default().
func New(logger *slog.Logger, sources ...Source) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{sources: sources, logger: logger}
}

// Build collects items from every source. Items with an id already seen in
// this build are dropped so ids stay unique.
func (ix *Indexer) Build(ctx context.Context) []model.SearchableItem {
	ix.warnings = nil
	items := []model.SearchableItem{}
	seen := make(map[string]bool)

	for _, src := range ix.sources {
		if err := ctx.Err(); err != nil {
			ix.warn(src.Name(), err)
			break
		}

		srcItems, err := ix.load(ctx, src)
		if err != nil {
			ix.warn(src.Name(), err)
			continue
		}

		for _, item := range srcItems {
			if seen[item.ID] {
				ix.warn(src.Name(), fmt.Errorf("duplicate id %q dropped", item.ID))
				continue
			}
			seen[item.ID] = true
			items = append(items, item)
		}
	}

	ix.logger.Debug("search index built", "items", len(items), "warnings", len(ix.warnings))
	return items
}

// Warnings returns the warnings recorded by the last Build.
func (ix *Indexer) Warnings() []Warning {
	return ix.warnings
}

// load calls the source, converting a panic into an error.
func (ix *Indexer) load(ctx context.Context, src Source) (items []model.SearchableItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()
	return src.Items(ctx)
}

func (ix *Indexer) warn(source string, err error) {
	ix.warnings = append(ix.warnings, Warning{Source: source, Err: err})
	ix.logger.Warn("failed to load source for search index", "source", source, "error", err)
}
