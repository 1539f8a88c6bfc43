package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownItemType is returned when parsing an unsupported item type.
var ErrUnknownItemType = errors.New("unknown item type")

// ItemType is the kind of content a searchable item was derived from.
type ItemType string

const (
	TypeProject    ItemType = "project"
	TypeBlog       ItemType = "blog"
	TypeSkill      ItemType = "skill"
	TypeExperience ItemType = "experience"
)

// AllItemTypes returns every item type in indexing order.
func AllItemTypes() []ItemType {
	return []ItemType{TypeProject, TypeBlog, TypeExperience, TypeSkill}
}

// ParseItemType converts a string into an ItemType (case-insensitive).
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeProject, TypeBlog, TypeSkill, TypeExperience:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownItemType, s)
}

// SearchableItem is a flattened piece of content the search engine ranks.
type SearchableItem struct {
	ID      string   `json:"id"`
	Type    ItemType `json:"type"`
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	URL     string   `json:"url"`
	Tags    []string `json:"tags,omitempty"`
	Content string   `json:"content,omitempty"`
}

// SearchFilters narrows a query's ranked results.
type SearchFilters struct {
	Types []ItemType `json:"type,omitempty"`
	Tags  []string   `json:"tags,omitempty"`
}

// SearchQuery is a free-text query with optional filters.
// A Limit of zero means the engine default.
type SearchQuery struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

// SearchResult is a ranked match. Lower scores are better matches.
type SearchResult struct {
	ID      string   `json:"id"`
	Type    ItemType `json:"type"`
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	URL     string   `json:"url"`
	Tags    []string `json:"tags,omitempty"`
	Score   float64  `json:"score"`
}

// SearchStats summarizes the current index.
type SearchStats struct {
	TotalItems int              `json:"totalItems"`
	ByType     map[ItemType]int `json:"byType"`
}

// NewSearchStats counts items per type. Every type is present in ByType.
func NewSearchStats(items []SearchableItem) SearchStats {
	byType := make(map[ItemType]int, 4)
	for _, t := range AllItemTypes() {
		byType[t] = 0
	}
	for _, item := range items {
		byType[item.Type]++
	}
	return SearchStats{TotalItems: len(items), ByType: byType}
}
