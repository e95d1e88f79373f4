// Package pages renders the explorer page as templ components.
package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/viewmodel"
)

// Explorer renders the explorer page: heading, status line, toolbar and the active view.
func Explorer(p vm.PageViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<main class="explorer"><header class="explorer-header"><h1>`)
		hw.Text(p.Title)
		hw.Raw(`</h1><p class="subtitle">Interactive hypergraph visualization of the `)
		hw.Text(p.Organization)
		hw.Raw(` organization repositories</p>`)
		hw.Component(Status(p.Status))
		hw.Raw(`</header>`)
		hw.Component(Toolbar(p.Toolbar, p.Refresh))
		if p.IsGraph {
			hw.Component(GraphView(p.Cards, p.Graph))
		} else {
			hw.Component(ListView(p.Rows))
		}
		hw.Raw(`</main>`)
		return hw.Err()
	})
}

// Status renders the status line.
func Status(s vm.StatusViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		class := "status status-ok"
		switch {
		case s.Loading:
			class = "status status-loading"
		case s.Warning != "":
			class = "status status-warning"
		}
		hw.Raw(`<p`)
		hw.Attr("class", class)
		hw.Raw(` role="status">`)
		hw.Text(s.Message)
		if s.UpdatedAt != "" && !s.Loading {
			hw.Raw(` <span class="updated">(updated `)
			hw.Text(s.UpdatedAt)
			hw.Raw(`)</span>`)
		}
		hw.Raw(`</p>`)
		if s.Truncated {
			hw.Raw(`<p class="status status-warning">Listing stopped at the page limit; some repositories are not shown.</p>`)
		}
		return hw.Err()
	})
}

// Toolbar renders the view toggle, the language filter and the refresh form.
func Toolbar(t vm.ToolbarViewModel, r vm.RefreshViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<nav class="toolbar"><div class="view-toggle">`)
		hw.Component(toggleLink("Graph View", t.GraphURL, t.IsGraph))
		hw.Component(toggleLink("List View", t.ListURL, !t.IsGraph))
		hw.Raw(`</div>`)

		hw.Raw(`<form class="language-filter" method="get" action="/">`)
		hw.Raw(`<input type="hidden" name="view"`)
		hw.Attr("value", t.View)
		hw.Raw(`><label for="language">Filter by language:</label> <select id="language" name="language" onchange="this.form.submit()">`)
		for _, opt := range t.Languages {
			hw.Raw(`<option`)
			hw.Attr("value", opt.Value)
			if opt.Selected {
				hw.Raw(` selected`)
			}
			hw.Raw(`>`)
			hw.Text(opt.Label)
			hw.Raw(`</option>`)
		}
		hw.Raw(`</select><noscript><button type="submit">Apply</button></noscript></form>`)

		hw.Component(RefreshForm(r))
		hw.Raw(`</nav>`)
		return hw.Err()
	})
}

// RefreshForm renders the double-check refresh button. The confirmation
// state travels in a hidden field; following any other link disarms it.
func RefreshForm(r vm.RefreshViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<form class="refresh" method="post" action="/refresh">`)
		hw.Raw(`<input type="hidden" name="csrf_token"`)
		hw.Attr("value", r.CSRFToken)
		hw.Raw(`><input type="hidden" name="refresh_state"`)
		hw.Attr("value", r.State)
		hw.Raw(`><input type="hidden" name="view"`)
		hw.Attr("value", r.View)
		hw.Raw(`><input type="hidden" name="language"`)
		hw.Attr("value", r.Language)
		hw.Raw(`><button type="submit"`)
		if r.Armed {
			hw.Attr("class", "btn btn-armed")
			hw.Raw(` autofocus`)
		} else {
			hw.Attr("class", "btn")
		}
		hw.Raw(`>`)
		hw.Text(r.Label)
		hw.Raw(`</button>`)
		if r.Armed {
			hw.Raw(` <a class="cancel"`)
			hw.Href(r.CancelURL)
			hw.Raw(`>Cancel</a>`)
		}
		hw.Raw(`</form>`)
		return hw.Err()
	})
}

func toggleLink(label, href string, active bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<a`)
		hw.Href(href)
		if active {
			hw.Attr("class", "btn btn-active")
			hw.Raw(` aria-current="page"`)
		} else {
			hw.Attr("class", "btn")
		}
		hw.Raw(`>`)
		hw.Text(label)
		hw.Raw(`</a>`)
		return hw.Err()
	})
}

// ListView renders every filtered repository as a row.
func ListView(rows []vm.RepositoryRowViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<section class="list-view"><h2>All Repositories (`)
		hw.Raw(strconv.Itoa(len(rows)))
		hw.Raw(`)</h2><div class="rows">`)
		for _, row := range rows {
			hw.Raw(`<div class="row"><div class="row-main"><a class="repo-name" target="_blank" rel="noopener noreferrer"`)
			hw.Href(row.URL)
			hw.Raw(`>`)
			hw.Text(row.Name)
			hw.Raw(`</a>`)
			if row.DescriptionHTML != "" {
				hw.Raw(`<div class="description">`)
				hw.Component(templ.Raw(row.DescriptionHTML))
				hw.Raw(`</div>`)
			}
			hw.Raw(`</div><div class="row-meta">`)
			if row.Language != "" {
				hw.Raw(`<span class="pill language"`)
				hw.Attr("style", "border-color: "+row.LanguageColor)
				hw.Raw(`>`)
				hw.Text(row.Language)
				hw.Raw(`</span>`)
			}
			hw.Raw(`<span class="stars" title="Stars">&#9733; `)
			hw.Text(row.Stars)
			hw.Raw(`</span><span class="forks" title="Forks">&#8919; `)
			hw.Text(row.Forks)
			hw.Raw(`</span><span`)
			hw.Attr("class", "pill "+row.VisibilityClass)
			hw.Raw(`>`)
			hw.Text(row.Visibility)
			hw.Raw(`</span></div></div>`)
		}
		hw.Raw(`</div></section>`)
		return hw.Err()
	})
}
