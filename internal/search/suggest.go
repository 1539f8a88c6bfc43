package search

import (
	"strings"
	"unicode/utf8"

	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/normalize"
)

// Suggestions returns autocomplete candidates for text: lowercased title
// words and tags of the top matches that contain text. Candidates keep the
// order of the ranked results and are deduplicated.
func (e *Engine) Suggestions(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinQueryLength {
		return []string{}
	}

	results := e.Search(model.SearchQuery{Query: text, Limit: limit})
	needle := normalize.Fold(text)

	seen := make(map[string]bool)
	suggestions := []string{}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			suggestions = append(suggestions, s)
		}
	}

	for _, r := range results {
		for _, word := range strings.Fields(strings.ToLower(r.Title)) {
			if strings.Contains(normalize.Fold(word), needle) {
				add(word)
			}
		}
		for _, tag := range r.Tags {
			if strings.Contains(normalize.Fold(tag), needle) {
				add(tag)
			}
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
