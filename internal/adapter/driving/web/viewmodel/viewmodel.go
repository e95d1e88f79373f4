// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// PageViewModel holds everything rendered on the explorer page.
type PageViewModel struct {
	Title        string
	Organization string
	Status       StatusViewModel
	Toolbar      ToolbarViewModel
	Refresh      RefreshViewModel

	IsGraph bool
	Cards   []LanguageCardViewModel
	Graph   GraphViewModel
	Rows    []RepositoryRowViewModel
}

// StatusViewModel is the status line under the page heading. Exactly one of
// Loading, Warning or Loaded is shown.
type StatusViewModel struct {
	Loading   bool
	Warning   string
	Message   string
	Truncated bool
	UpdatedAt string
}

// ToolbarViewModel holds the view toggle and the language filter.
type ToolbarViewModel struct {
	GraphURL  string
	ListURL   string
	IsGraph   bool
	View      string
	Languages []LanguageOption
}

// LanguageOption is one entry of the language select.
type LanguageOption struct {
	Value    string
	Label    string
	Selected bool
}

// RefreshViewModel drives the double-check refresh form.
type RefreshViewModel struct {
	State     string // carried back on submit
	Armed     bool
	Label     string
	CancelURL string
	View      string
	Language  string // encoded filter parameter, empty for all
	CSRFToken string
}

// LanguageCardViewModel is a language statistics card of the graph view.
type LanguageCardViewModel struct {
	Name    string
	Color   string
	Count   int
	Preview []RepositoryLinkViewModel
	More    int
}

// RepositoryLinkViewModel is a repository name linking to GitHub.
type RepositoryLinkViewModel struct {
	Name string
	URL  string
}

// GraphViewModel is the SVG network diagram.
type GraphViewModel struct {
	Width        float64
	Height       float64
	CenterX      float64
	CenterY      float64
	Organization string
	Spokes       []SpokeViewModel
	Nodes        []NodeViewModel
	Labels       []ClusterLabelViewModel
}

// SpokeViewModel is an edge from the centre to a cluster anchor.
type SpokeViewModel struct {
	X2 float64
	Y2 float64
}

// NodeViewModel is one repository circle.
type NodeViewModel struct {
	X     float64
	Y     float64
	R     float64
	Color string
	URL   string
	Title string
}

// ClusterLabelViewModel is a language label on the outer ring.
type ClusterLabelViewModel struct {
	X     float64
	Y     float64
	Text  string
	Color string
}

// RepositoryRowViewModel is one row of the list view.
type RepositoryRowViewModel struct {
	Name            string
	URL             string
	DescriptionHTML string
	Language        string
	LanguageColor   string
	Stars           string
	Forks           string
	Visibility      string
	VisibilityClass string
}
