package pages_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/viewmodel"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestStatus_Variants(t *testing.T) {
	loading := render(t, pages.Status(vm.StatusViewModel{Loading: true, Message: "Loading repositories from GitHub..."}))
	assert.Contains(t, loading, "status-loading")
	assert.Contains(t, loading, "Loading repositories from GitHub...")

	warning := render(t, pages.Status(vm.StatusViewModel{Warning: "boom", Message: "Warning: Using cached data. boom"}))
	assert.Contains(t, warning, "status-warning")

	ok := render(t, pages.Status(vm.StatusViewModel{Message: "Loaded 3 repositories from GitHub API", UpdatedAt: "1 minute ago", Truncated: true}))
	assert.Contains(t, ok, "status-ok")
	assert.Contains(t, ok, "(updated 1 minute ago)")
	assert.Contains(t, ok, "page limit")
}

func TestLanguageCard_PreviewAndMore(t *testing.T) {
	html := render(t, pages.LanguageCard(vm.LanguageCardViewModel{
		Name:  "Go",
		Color: "#00ADD8",
		Count: 5,
		Preview: []vm.RepositoryLinkViewModel{
			{Name: "a", URL: "https://github.com/cogpy/a"},
			{Name: "b", URL: "https://github.com/cogpy/b"},
			{Name: "c", URL: "https://github.com/cogpy/c"},
		},
		More: 2,
	}))

	assert.Contains(t, html, "<h3>Go</h3>")
	assert.Contains(t, html, "5 repositories")
	assert.Equal(t, 3, strings.Count(html, "<a "))
	assert.Contains(t, html, "+2 more")
}

func TestLanguageCard_NoMoreLine(t *testing.T) {
	html := render(t, pages.LanguageCard(vm.LanguageCardViewModel{Name: "C", Count: 1,
		Preview: []vm.RepositoryLinkViewModel{{Name: "only", URL: "https://github.com/cogpy/only"}}}))

	assert.NotContains(t, html, "more")
}

func TestNetwork_Elements(t *testing.T) {
	html := render(t, pages.Network(vm.GraphViewModel{
		Width: 1200, Height: 600, CenterX: 600, CenterY: 300,
		Organization: "cogpy",
		Spokes:       []vm.SpokeViewModel{{X2: 850, Y2: 300}},
		Nodes: []vm.NodeViewModel{{
			X: 850, Y: 300, R: 5, Color: "#00ADD8",
			URL: "https://github.com/cogpy/a", Title: "a (Go)",
		}},
		Labels: []vm.ClusterLabelViewModel{{X: 920, Y: 300, Text: "Go", Color: "#00ADD8"}},
	}))

	assert.Contains(t, html, `viewBox="0 0 1200 600"`)
	assert.Contains(t, html, `<line class="spoke" x1="600.00" y1="300.00" x2="850.00" y2="300.00"`)
	assert.Contains(t, html, `cx="850.00" cy="300.00" r="5.00" fill="#00ADD8"`)
	assert.Contains(t, html, "<title>a (Go)</title>")
	assert.Contains(t, html, `>cogpy</text>`)
	assert.Contains(t, html, `<rect x="880.00" y="288.00" width="80.00" height="24.00"`)
}

func TestNetwork_UnsafeURLIsNeutralized(t *testing.T) {
	html := render(t, pages.Network(vm.GraphViewModel{
		Nodes: []vm.NodeViewModel{{URL: "javascript:alert(1)", Title: "x"}},
	}))

	assert.NotContains(t, html, "javascript:")
}

func TestListView_Rows(t *testing.T) {
	html := render(t, pages.ListView([]vm.RepositoryRowViewModel{
		{
			Name: "atomspace", URL: "https://github.com/cogpy/atomspace",
			DescriptionHTML: "<p>The <strong>atom</strong> store</p>",
			Language:        "C++", LanguageColor: "#f34b7d",
			Stars: "1,024", Forks: "12",
			Visibility: "Public", VisibilityClass: "visibility-public",
		},
		{Name: "<bare>", URL: "https://github.com/cogpy/bare", Stars: "0", Forks: "0", Visibility: "Private", VisibilityClass: "visibility-private"},
	}))

	assert.Contains(t, html, "All Repositories (2)")
	assert.Contains(t, html, "<strong>atom</strong>")
	assert.Contains(t, html, "1,024")
	assert.Contains(t, html, "visibility-public")
	assert.Contains(t, html, "&lt;bare&gt;")
	assert.Equal(t, 1, strings.Count(html, `class="description"`))
	assert.Equal(t, 1, strings.Count(html, "pill language"))
}

func TestRefreshForm_States(t *testing.T) {
	idle := render(t, pages.RefreshForm(vm.RefreshViewModel{State: "idle", Label: "Refresh", View: "graph", CSRFToken: "tok"}))
	assert.Contains(t, idle, `name="refresh_state" value="idle"`)
	assert.Contains(t, idle, `name="csrf_token" value="tok"`)
	assert.Contains(t, idle, ">Refresh</button>")
	assert.NotContains(t, idle, "Cancel")

	armed := render(t, pages.RefreshForm(vm.RefreshViewModel{
		State: "armed", Armed: true, Label: "Click again to refresh", View: "list", Language: "Go",
		CancelURL: "/?language=Go&view=list",
	}))
	assert.Contains(t, armed, `name="refresh_state" value="armed"`)
	assert.Contains(t, armed, "btn-armed")
	assert.Contains(t, armed, "Click again to refresh")
	assert.Contains(t, armed, `name="language" value="Go"`)
	assert.Contains(t, armed, "Cancel</a>")
}

func TestExplorer_SelectsView(t *testing.T) {
	base := vm.PageViewModel{
		Title:        "Org Hypergraph",
		Organization: "cogpy",
		Toolbar: vm.ToolbarViewModel{
			GraphURL: "/?view=graph", ListURL: "/?view=list", IsGraph: true, View: "graph",
			Languages: []vm.LanguageOption{
				{Value: "", Label: "All Languages", Selected: true},
				{Value: "Go", Label: "Go (2)"},
			},
		},
	}

	graphPage := base
	graphPage.IsGraph = true
	html := render(t, pages.Explorer(graphPage))
	assert.Contains(t, html, "Organization Network")
	assert.Contains(t, html, "cogpy organization repositories")
	assert.Contains(t, html, `<option value="" selected>All Languages</option>`)
	assert.Contains(t, html, `<option value="Go">Go (2)</option>`)
	assert.NotContains(t, html, "All Repositories")

	listPage := base
	listPage.IsGraph = false
	html = render(t, pages.Explorer(listPage))
	assert.Contains(t, html, "All Repositories (0)")
	assert.NotContains(t, html, "Organization Network")
}
