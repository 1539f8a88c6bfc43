package filter

import (
	"slices"
	"strings"
	"sync"

	"github.com/nikbrunner/folio/internal/model"
)

// Store is an observable holder of the current filter State. Every
// mutation replaces the state atomically and then notifies subscribers
// with a copy of the new state.
type Store struct {
	mu     sync.RWMutex
	state  State
	nextID int
	subs   map[int]func(State)
}

// NewStore creates a Store in the cleared state.
func NewStore() *Store {
	return &Store{
		state: DefaultState(),
		subs:  make(map[int]func(State)),
	}
}

// State returns a copy of the current selection.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Replace swaps in st, e.g. a persisted selection.
func (s *Store) Replace(st State) {
	s.update(func(State) State { return st.normalized() })
}

// SetTechnology adds tech to the technology set when included is true and
// removes it otherwise. Technologies compare case-insensitively, so adding
// a present technology is a no-op and removing drops every spelling.
func (s *Store) SetTechnology(tech string, included bool) {
	same := func(t string) bool { return strings.EqualFold(t, tech) }
	s.update(func(st State) State {
		if included {
			if !slices.ContainsFunc(st.Technologies, same) {
				st.Technologies = append(st.Technologies, tech)
			}
			return st
		}
		st.Technologies = slices.DeleteFunc(st.Technologies, same)
		return st
	})
}

// SetCategory toggles category in the category set.
func (s *Store) SetCategory(category string) {
	s.update(func(st State) State {
		if i := slices.Index(st.Categories, category); i >= 0 {
			st.Categories = slices.Delete(st.Categories, i, i+1)
		} else {
			st.Categories = append(st.Categories, category)
		}
		return st
	})
}

// SetStatus replaces the status filter.
func (s *Store) SetStatus(status Status) {
	s.update(func(st State) State {
		st.Status = status
		return st
	})
}

// SetSearchQuery replaces the free-text filter.
func (s *Store) SetSearchQuery(q string) {
	s.update(func(st State) State {
		st.SearchQuery = q
		return st
	})
}

// SetSort replaces the sort mode.
func (s *Store) SetSort(mode SortMode) {
	s.update(func(st State) State {
		st.Sort = mode
		return st
	})
}

// ClearFilters resets the selection, sort mode included, so the cleared
// state yields its input unchanged.
func (s *Store) ClearFilters() {
	s.update(func(State) State { return DefaultState() })
}

// FilteredProjects applies the current selection to projects.
func (s *Store) FilteredProjects(projects []model.Project) []model.Project {
	return s.State().Apply(projects)
}

// ActiveFilterCount returns the number of engaged filter dimensions.
func (s *Store) ActiveFilterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveCount()
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) update(fn func(State) State) {
	s.mu.Lock()
	next := fn(s.state.Clone())
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next.Clone())
	}
}
