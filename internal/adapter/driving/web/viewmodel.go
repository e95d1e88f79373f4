package web

import (
	"fmt"
	"net/url"

	"github.com/dustin/go-humanize"

	vm "github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/hypergraph/internal/domain/explorer"
	"github.com/ericfisherdev/hypergraph/internal/domain/layout"
	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

const (
	// cardPreviewSize is the number of repositories listed on a language card.
	cardPreviewSize = 3

	// unclassifiedParam selects repositories without a language. An empty
	// language parameter means no filter.
	unclassifiedParam = "-"
)

// encodeLanguage returns the query value for the state's language filter.
func encodeLanguage(state explorer.State) string {
	lang, ok := state.Selection()
	if !ok {
		return ""
	}
	if lang == "" {
		return unclassifiedParam
	}
	return lang
}

// applyLanguage applies an encoded language filter to state.
func applyLanguage(state explorer.State, param string) explorer.State {
	switch param {
	case "":
		return state.ClearFilter()
	case unclassifiedParam:
		return state.Select("")
	default:
		return state.Select(param)
	}
}

// pageURL returns the explorer URL for mode with the state's filter.
func pageURL(mode explorer.ViewMode, state explorer.State) string {
	q := url.Values{}
	q.Set("view", string(mode))
	if lang := encodeLanguage(state); lang != "" {
		q.Set("language", lang)
	}
	return "/?" + q.Encode()
}

// toPageViewModel converts the explorer state into the page view model.
func toPageViewModel(state explorer.State, csrfToken string) vm.PageViewModel {
	isGraph := state.Mode != explorer.ViewList
	filtered := state.Filtered()

	page := vm.PageViewModel{
		Title:        "Org Hypergraph",
		Organization: state.Catalog.Organization,
		Status:       toStatusViewModel(state),
		Toolbar:      toToolbarViewModel(state),
		Refresh:      toRefreshViewModel(state, csrfToken),
		IsGraph:      isGraph,
	}

	if isGraph {
		page.Cards = toLanguageCards(state.Groups())
		page.Graph = toGraphViewModel(state.Graph(), state.Catalog.Organization)
		return page
	}

	page.Rows = make([]vm.RepositoryRowViewModel, 0, len(filtered))
	for _, repo := range filtered {
		page.Rows = append(page.Rows, toRepositoryRow(repo))
	}
	return page
}

func toStatusViewModel(state explorer.State) vm.StatusViewModel {
	catalog := state.Catalog
	status := vm.StatusViewModel{
		Loading:   state.Loading,
		Warning:   catalog.Warning,
		Truncated: catalog.Truncated,
	}

	switch {
	case status.Loading:
		status.Message = "Loading repositories from GitHub..."
	case status.Warning != "":
		status.Message = "Warning: Using cached data. " + status.Warning
	case catalog.IsLive():
		status.Message = fmt.Sprintf("Loaded %d repositories from GitHub API", len(catalog.Repositories))
	default:
		status.Message = fmt.Sprintf("Showing %d repositories from the bundled snapshot", len(catalog.Repositories))
	}

	if !catalog.UpdatedAt.IsZero() {
		status.UpdatedAt = humanize.Time(catalog.UpdatedAt)
	}
	return status
}

func toToolbarViewModel(state explorer.State) vm.ToolbarViewModel {
	selected, filtered := state.Selection()

	options := []vm.LanguageOption{{Value: "", Label: "All Languages", Selected: !filtered}}
	for _, lc := range state.Languages() {
		value := lc.Language
		if value == "" {
			value = unclassifiedParam
		}
		options = append(options, vm.LanguageOption{
			Value:    value,
			Label:    fmt.Sprintf("%s (%d)", layout.DisplayName(lc.Language), lc.Count),
			Selected: filtered && lc.Language == selected,
		})
	}

	return vm.ToolbarViewModel{
		GraphURL:  pageURL(explorer.ViewGraph, state),
		ListURL:   pageURL(explorer.ViewList, state),
		IsGraph:   state.Mode != explorer.ViewList,
		View:      string(state.Mode),
		Languages: options,
	}
}

func toRefreshViewModel(state explorer.State, csrfToken string) vm.RefreshViewModel {
	armed := state.Refresh.Armed()
	label := "Refresh"
	if armed {
		label = "Click again to refresh"
	}

	return vm.RefreshViewModel{
		State:     state.Refresh.State().String(),
		Armed:     armed,
		Label:     label,
		CancelURL: pageURL(state.Mode, state),
		View:      string(state.Mode),
		Language:  encodeLanguage(state),
		CSRFToken: csrfToken,
	}
}

func toLanguageCards(groups []model.LanguageGroup) []vm.LanguageCardViewModel {
	cards := make([]vm.LanguageCardViewModel, 0, len(groups))
	for _, g := range groups {
		preview := g.Repositories[:min(cardPreviewSize, len(g.Repositories))]
		links := make([]vm.RepositoryLinkViewModel, 0, len(preview))
		for _, repo := range preview {
			links = append(links, vm.RepositoryLinkViewModel{Name: repo.Name, URL: repo.URL})
		}

		cards = append(cards, vm.LanguageCardViewModel{
			Name:    layout.DisplayName(g.Language),
			Color:   layout.ColorFor(g.Language),
			Count:   len(g.Repositories),
			Preview: links,
			More:    len(g.Repositories) - len(preview),
		})
	}
	return cards
}

func toGraphViewModel(graph model.Graph, org string) vm.GraphViewModel {
	out := vm.GraphViewModel{
		Width:        graph.Width,
		Height:       graph.Height,
		CenterX:      graph.Center.X,
		CenterY:      graph.Center.Y,
		Organization: org,
		Spokes:       make([]vm.SpokeViewModel, 0, len(graph.Clusters)),
		Nodes:        make([]vm.NodeViewModel, 0, len(graph.Nodes)),
		Labels:       make([]vm.ClusterLabelViewModel, 0, len(graph.Clusters)),
	}

	for _, c := range graph.Clusters {
		out.Spokes = append(out.Spokes, vm.SpokeViewModel{X2: c.Anchor.X, Y2: c.Anchor.Y})
		out.Labels = append(out.Labels, vm.ClusterLabelViewModel{
			X:     c.Label.X,
			Y:     c.Label.Y,
			Text:  layout.DisplayName(c.Language),
			Color: c.Color,
		})
	}

	for _, n := range graph.Nodes {
		out.Nodes = append(out.Nodes, vm.NodeViewModel{
			X:     n.Position.X,
			Y:     n.Position.Y,
			R:     n.Radius,
			Color: n.Color,
			URL:   n.Repository.URL,
			Title: fmt.Sprintf("%s (%s)", n.Repository.Name, layout.DisplayName(n.Language)),
		})
	}

	return out
}

func toRepositoryRow(repo model.Repository) vm.RepositoryRowViewModel {
	return vm.RepositoryRowViewModel{
		Name:            repo.Name,
		URL:             repo.URL,
		DescriptionHTML: RenderMarkdown(repo.Description),
		Language:        repo.Language,
		LanguageColor:   layout.ColorFor(repo.Language),
		Stars:           humanize.Comma(int64(repo.Stars)),
		Forks:           humanize.Comma(int64(repo.Forks)),
		Visibility:      string(repo.Visibility),
		VisibilityClass: visibilityClass(repo.Visibility),
	}
}

func visibilityClass(v model.Visibility) string {
	switch v {
	case model.VisibilityPublic:
		return "visibility-public"
	case model.VisibilityPrivate:
		return "visibility-private"
	case model.VisibilityInternal:
		return "visibility-internal"
	default:
		return "visibility-other"
	}
}
