// Package tui implements the terminal repository explorer with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ericfisherdev/hypergraph/internal/domain/explorer"
	"github.com/ericfisherdev/hypergraph/internal/domain/layout"
	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	// chromeLines is the number of lines used by header, toolbar and footer.
	chromeLines = 6
)

// CatalogLoader performs one fetch attempt and returns the catalog served afterwards.
type CatalogLoader interface {
	Load(ctx context.Context) model.Catalog
}

// catalogLoadedMsg carries the result of a load.
type catalogLoadedMsg struct {
	catalog model.Catalog
}

// Model is the bubbletea model of the explorer.
type Model struct {
	ctx     context.Context
	loader  CatalogLoader
	state   explorer.State
	keys    keyMap
	spinner spinner.Model

	offset int // first row shown in the list view
	width  int
	height int
}

// New creates the explorer model showing initial until the first load completes.
func New(ctx context.Context, loader CatalogLoader, initial model.Catalog) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	state := explorer.New(initial)
	state.Loading = true

	return Model{
		ctx:     ctx,
		loader:  loader,
		state:   state,
		keys:    defaultKeyMap(),
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// State returns the explorer state.
func (m Model) State() explorer.State {
	return m.state
}

// Init starts the spinner and the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{catalog: m.loader.Load(m.ctx)}
	}
}

// Update applies msg to the explorer state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.BlurMsg:
		m.state = m.state.Blur()
		return m, nil

	case catalogLoadedMsg:
		m.state = m.state.Loaded(msg.catalog)
		m.offset = 0
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		if m.state.Loading {
			return m, nil
		}
		var effect explorer.Effect
		m.state, effect = m.state.PressRefresh()
		if effect == explorer.EffectRefresh {
			return m, tea.Batch(m.spinner.Tick, m.load())
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.state = m.state.KeyUp(msg.String())

	case key.Matches(msg, m.keys.Graph):
		m.state = m.state.SetMode(explorer.ViewGraph)

	case key.Matches(msg, m.keys.List):
		m.state = m.state.SetMode(explorer.ViewList)

	case key.Matches(msg, m.keys.Next):
		m.state = m.state.CycleLanguage(1)
		m.offset = 0

	case key.Matches(msg, m.keys.Prev):
		m.state = m.state.CycleLanguage(-1)
		m.offset = 0

	case key.Matches(msg, m.keys.All):
		m.state = m.state.ClearFilter()
		m.offset = 0

	case key.Matches(msg, m.keys.Up):
		m.offset = max(m.offset-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.offset = min(m.offset+1, max(len(m.state.Filtered())-m.bodyHeight(), 0))
	}

	return m, nil
}

func (m Model) bodyHeight() int {
	return max(m.height-chromeLines, 3)
}

// View renders the explorer.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Org Hypergraph: %s", m.state.Catalog.Organization)))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.toolbar())
	b.WriteString("\n\n")

	if m.state.Mode == explorer.ViewList {
		b.WriteString(m.listView())
	} else {
		b.WriteString(renderGraph(m.state.Graph(), m.state.Catalog.Organization, m.width, m.bodyHeight()))
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) statusLine() string {
	catalog := m.state.Catalog
	switch {
	case m.state.Loading:
		return m.spinner.View() + " " + dimStyle.Render("Loading repositories from GitHub...")
	case catalog.Warning != "":
		return warningStyle.Render("Warning: Using cached data. " + catalog.Warning)
	case catalog.IsLive():
		return okStyle.Render(fmt.Sprintf("✓ Loaded %d repositories from GitHub API", len(catalog.Repositories)))
	default:
		return dimStyle.Render(fmt.Sprintf("Showing %d repositories from the bundled snapshot", len(catalog.Repositories)))
	}
}

func (m Model) toolbar() string {
	graph, list := "Graph View", "List View"
	if m.state.Mode == explorer.ViewList {
		list = activeStyle.Render(list)
	} else {
		graph = activeStyle.Render(graph)
	}

	filter := "All Languages"
	if lang, ok := m.state.Selection(); ok {
		filter = colorStyle(layout.ColorFor(lang)).Render(layout.DisplayName(lang)) +
			fmt.Sprintf(" (%d)", len(m.state.Filtered()))
	}

	refresh := "[r] Refresh"
	if m.state.Refresh.Armed() {
		refresh = armedStyle.Render(" Press r again to refresh, esc to cancel ")
	}

	return fmt.Sprintf("%s | %s    Language: %s    %s", graph, list, filter, refresh)
}

func (m Model) listView() string {
	repos := m.state.Filtered()
	rows := m.bodyHeight()

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("All Repositories (%d)", len(repos))))

	end := min(m.offset+rows-1, len(repos))
	for _, repo := range repos[min(m.offset, end):end] {
		b.WriteString("\n")
		b.WriteString(repositoryLine(repo))
	}
	return b.String()
}

func repositoryLine(repo model.Repository) string {
	lang := layout.DisplayName(repo.Language)
	return fmt.Sprintf("%-40s %s  ★ %-6d ⑂ %-6d %s",
		truncate(repo.Name, 40),
		colorStyle(layout.ColorFor(repo.Language)).Render(fmt.Sprintf("%-18s", truncate(lang, 18))),
		repo.Stars,
		repo.Forks,
		repo.Visibility,
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) footer() string {
	parts := make([]string, 0, len(m.keys.helpBindings()))
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}

// Run starts the explorer program and blocks until the user quits.
func Run(ctx context.Context, loader CatalogLoader, initial model.Catalog) error {
	p := tea.NewProgram(New(ctx, loader, initial),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}
