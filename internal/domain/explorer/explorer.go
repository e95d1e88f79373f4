// Package explorer holds the presentation state of a repository explorer:
// view mode, language filter and the refresh confirmation. All transitions are
// pure; side effects are requested through the returned Effect.
package explorer

import (
	"github.com/ericfisherdev/hypergraph/internal/domain/doublecheck"
	"github.com/ericfisherdev/hypergraph/internal/domain/layout"
	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

// ViewMode selects between the network graph and the flat list.
type ViewMode string

const (
	ViewGraph ViewMode = "graph"
	ViewList  ViewMode = "list"
)

// ParseViewMode returns the mode named by s, defaulting to ViewGraph.
func ParseViewMode(s string) ViewMode {
	if s == string(ViewList) {
		return ViewList
	}
	return ViewGraph
}

// Effect is a side effect requested by a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectRefresh
)

// LanguageCount is one entry of the language filter.
type LanguageCount struct {
	Language string
	Count    int
}

// State is the explorer state. The zero value shows the graph of an empty
// catalog with no filter.
type State struct {
	Mode    ViewMode
	Catalog model.Catalog
	Loading bool
	Refresh doublecheck.DoubleCheck

	language string
	filtered bool
}

// New returns the initial state for catalog.
func New(catalog model.Catalog) State {
	return State{Mode: ViewGraph, Catalog: catalog}
}

// SetMode switches the view mode.
func (s State) SetMode(mode ViewMode) State {
	s.Mode = mode
	return s
}

// Select restricts the view to repositories whose language key equals language.
func (s State) Select(language string) State {
	s.language = language
	s.filtered = true
	return s
}

// ClearFilter shows all languages again.
func (s State) ClearFilter() State {
	s.language = ""
	s.filtered = false
	return s
}

// Selection returns the selected language and whether a filter is active.
func (s State) Selection() (string, bool) {
	return s.language, s.filtered
}

// CycleLanguage moves the filter by step through All, then each language in
// sorted order, wrapping around.
func (s State) CycleLanguage(step int) State {
	langs := s.Languages()
	// Position 0 is "all languages"; i+1 is langs[i].
	pos := 0
	if s.filtered {
		for i, lc := range langs {
			if lc.Language == s.language {
				pos = i + 1
				break
			}
		}
	}

	n := len(langs) + 1
	pos = ((pos+step)%n + n) % n
	if pos == 0 {
		return s.ClearFilter()
	}
	return s.Select(langs[pos-1].Language)
}

// PressRefresh feeds a refresh activation through the double-check. The
// second consecutive press requests EffectRefresh and marks the state loading.
func (s State) PressRefresh() (State, Effect) {
	next, fire := s.Refresh.Activate()
	s.Refresh = next
	if !fire {
		return s, EffectNone
	}
	s.Loading = true
	return s, EffectRefresh
}

// Blur disarms the refresh confirmation.
func (s State) Blur() State {
	s.Refresh = s.Refresh.Blur()
	return s
}

// KeyUp forwards a key release to the refresh confirmation.
func (s State) KeyUp(key string) State {
	s.Refresh = s.Refresh.KeyUp(key)
	return s
}

// Loaded replaces the catalog after a load attempt finished.
func (s State) Loaded(catalog model.Catalog) State {
	s.Catalog = catalog
	s.Loading = false
	return s
}

// Filtered returns the repositories matching the current filter, in catalog order.
func (s State) Filtered() []model.Repository {
	if !s.filtered {
		return s.Catalog.Repositories
	}

	out := make([]model.Repository, 0)
	for _, repo := range s.Catalog.Repositories {
		if repo.Language == s.language {
			out = append(out, repo)
		}
	}
	return out
}

// Languages lists every language of the full catalog with its repository count.
func (s State) Languages() []LanguageCount {
	groups := layout.GroupByLanguage(s.Catalog.Repositories)
	out := make([]LanguageCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, LanguageCount{Language: g.Language, Count: len(g.Repositories)})
	}
	return out
}

// Groups returns the language groups of the filtered repositories.
func (s State) Groups() []model.LanguageGroup {
	return layout.GroupByLanguage(s.Filtered())
}

// Graph lays out the filtered repositories.
func (s State) Graph() model.Graph {
	return layout.Compute(s.Filtered())
}
