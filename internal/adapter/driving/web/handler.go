// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/hypergraph/internal/application"
	"github.com/ericfisherdev/hypergraph/internal/domain/doublecheck"
	"github.com/ericfisherdev/hypergraph/internal/domain/explorer"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	catalog *application.CatalogService
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(catalog *application.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Explorer renders the repository explorer. Query parameters: view (graph or
// list), language (filter, "-" for repositories without a language) and
// refresh (confirmation state of the refresh button).
func (h *Handler) Explorer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := h.stateFrom(q.Get("view"), q.Get("language"))

	check, err := doublecheck.ParseState(q.Get("refresh"))
	if err != nil {
		check = doublecheck.Idle
	}
	state.Refresh = doublecheck.New(check)

	token := csrfToken(w, r)
	page := toPageViewModel(state, token)
	layout := templates.Layout(page.Title+" - "+page.Organization, pages.Explorer(page))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render explorer", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Refresh handles the refresh form. The first submission only arms the
// confirmation; a second submission while armed reloads the catalog. Both
// end with a redirect back to the explorer.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	check, err := doublecheck.ParseState(r.FormValue("refresh_state"))
	if err != nil {
		http.Error(w, "invalid refresh state", http.StatusBadRequest)
		return
	}

	state := h.stateFrom(r.FormValue("view"), r.FormValue("language"))
	state.Refresh = doublecheck.New(check)

	state, effect := state.PressRefresh()
	if effect == explorer.EffectRefresh {
		catalog, err := h.catalog.Refresh(r.Context())
		if err != nil {
			h.logger.Error("refresh aborted", "error", err)
			http.Error(w, "refresh aborted", http.StatusServiceUnavailable)
			return
		}
		state = state.Loaded(catalog)
	}

	target := pageURL(state.Mode, state)
	if state.Refresh.Armed() {
		target += "&" + url.Values{"refresh": {state.Refresh.State().String()}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// stateFrom builds the explorer state for the current catalog.
func (h *Handler) stateFrom(view, language string) explorer.State {
	state := explorer.New(h.catalog.Current()).SetMode(explorer.ParseViewMode(view))
	state.Loading = h.catalog.Loading()
	return applyLanguage(state, language)
}
