// Package filter holds the project filter selection and derives filtered
// project lists from it.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/normalize"
)

var ErrInvalidStatus = errors.New("invalid status filter")

// Status is the status filter. StatusAll disables it.
type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = Status(model.ProjectCompleted)
	StatusOngoing   Status = Status(model.ProjectOngoing)
	StatusArchived  Status = Status(model.ProjectArchived)
)

// ParseStatus parses a status filter. An empty string means StatusAll.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusAll, nil
	case StatusAll, StatusCompleted, StatusOngoing, StatusArchived:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// SortMode orders filtered projects. It is not a filter.
type SortMode string

const (
	SortDefault SortMode = "default"
	SortTitle   SortMode = "title"
	SortNewest  SortMode = "newest"
)

// ParseSortMode parses a sort mode. An empty string means SortDefault.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortDefault, nil
	case SortDefault, SortTitle, SortNewest:
		return m, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// State is a filter selection. The zero value is not the cleared state;
// use DefaultState.
type State struct {
	Technologies []string `json:"technologies"`
	Categories   []string `json:"categories"`
	Status       Status   `json:"status"`
	SearchQuery  string   `json:"searchQuery"`
	Sort         SortMode `json:"sort,omitempty"`
}

// DefaultState returns the cleared state, which passes every project.
func DefaultState() State {
	return State{
		Technologies: []string{},
		Categories:   []string{},
		Status:       StatusAll,
		Sort:         SortDefault,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Technologies = slices.Clone(s.Technologies)
	s.Categories = slices.Clone(s.Categories)
	if s.Technologies == nil {
		s.Technologies = []string{}
	}
	if s.Categories == nil {
		s.Categories = []string{}
	}
	return s
}

// normalized fills zero values with defaults, e.g. after loading an older
// persisted state.
func (s State) normalized() State {
	s = s.Clone()
	if s.Status == "" {
		s.Status = StatusAll
	}
	if s.Sort == "" {
		s.Sort = SortDefault
	}
	return s
}

// ActiveCount returns how many filter dimensions are engaged. Each of
// technologies, categories, status and search counts at most once.
func (s State) ActiveCount() int {
	count := 0
	if len(s.Technologies) > 0 {
		count++
	}
	if len(s.Categories) > 0 {
		count++
	}
	if s.Status != "" && s.Status != StatusAll {
		count++
	}
	if strings.TrimSpace(s.SearchQuery) != "" {
		count++
	}
	return count
}

// Apply returns the projects that pass every engaged filter, in input
// order unless a sort mode is set. The input is not modified.
func (s State) Apply(projects []model.Project) []model.Project {
	query := normalize.Fold(strings.TrimSpace(s.SearchQuery))

	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if !s.matchesTechnology(p) || !s.matchesCategory(p) || !s.matchesStatus(p) {
			continue
		}
		if query != "" && !strings.Contains(normalize.Fold(p.Title), query) &&
			!strings.Contains(normalize.Fold(p.Description), query) {
			continue
		}
		out = append(out, p)
	}

	sortProjects(out, s.Sort)
	return out
}

// String summarizes the engaged filters for status lines.
func (s State) String() string {
	var parts []string
	if len(s.Technologies) > 0 {
		parts = append(parts, "tech="+strings.Join(s.Technologies, "|"))
	}
	if len(s.Categories) > 0 {
		parts = append(parts, "category="+strings.Join(s.Categories, "|"))
	}
	if s.Status != "" && s.Status != StatusAll {
		parts = append(parts, "status="+string(s.Status))
	}
	if s.SearchQuery != "" {
		parts = append(parts, "search="+s.SearchQuery)
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, " ")
}

// matchesTechnology passes projects using any selected technology.
func (s State) matchesTechnology(p model.Project) bool {
	if len(s.Technologies) == 0 {
		return true
	}
	for _, want := range s.Technologies {
		for _, tech := range p.Technologies {
			if strings.EqualFold(tech, want) {
				return true
			}
		}
	}
	return false
}

func (s State) matchesCategory(p model.Project) bool {
	return len(s.Categories) == 0 || slices.Contains(s.Categories, p.Category)
}

func (s State) matchesStatus(p model.Project) bool {
	return s.Status == "" || s.Status == StatusAll || string(s.Status) == string(p.Status)
}

func sortProjects(projects []model.Project, mode SortMode) {
	switch mode {
	case SortTitle:
		slices.SortStableFunc(projects, func(a, b model.Project) int {
			return strings.Compare(normalize.Fold(a.Title), normalize.Fold(b.Title))
		})
	case SortNewest:
		// CompletedAt is YYYY-MM-DD, so string order is date order
		slices.SortStableFunc(projects, func(a, b model.Project) int {
			return strings.Compare(b.CompletedAt, a.CompletedAt)
		})
	}
}

// Technologies returns the distinct technologies used by projects, sorted
// case-insensitively.
func Technologies(projects []model.Project) []string {
	var values []string
	for _, p := range projects {
		values = append(values, p.Technologies...)
	}
	return facet(values)
}

// Categories returns the distinct project categories, sorted.
func Categories(projects []model.Project) []string {
	var values []string
	for _, p := range projects {
		values = append(values, p.Category)
	}
	return facet(values)
}

func facet(values []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, v := range values {
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}
