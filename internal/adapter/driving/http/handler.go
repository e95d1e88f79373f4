// Package httphandler is the JSON API driving adapter.
package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/hypergraph/internal/application"
	"github.com/ericfisherdev/hypergraph/internal/domain/explorer"
)

const (
	defaultFetchLimit = 20
	maxFetchLimit     = 200
)

// Handler is the HTTP driving adapter that serves the REST API.
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

// RegisterAPIRoutes registers all JSON API routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/repositories", h.ListRepositories)
	mux.HandleFunc("GET /api/v1/languages", h.ListLanguages)
	mux.HandleFunc("GET /api/v1/graph", h.GetGraph)
	mux.HandleFunc("POST /api/v1/refresh", h.Refresh)
	mux.HandleFunc("GET /api/v1/fetches", h.ListFetches)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// ListRepositories returns the served repositories. The optional language
// query parameter restricts the list to one exact language key; an empty
// value selects repositories without a language.
func (h *Handler) ListRepositories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCatalogResponse(h.stateFor(r)))
}

// ListLanguages returns every language of the catalog with its repository count.
func (h *Handler) ListLanguages(w http.ResponseWriter, _ *http.Request) {
	langs := explorer.New(h.catalog.Current()).Languages()

	resp := make([]LanguageResponse, 0, len(langs))
	for _, lc := range langs {
		resp = append(resp, toLanguageResponse(lc))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetGraph returns the cluster layout of the (optionally filtered) catalog.
func (h *Handler) GetGraph(w http.ResponseWriter, r *http.Request) {
	state := h.stateFor(r)

	writeJSON(w, http.StatusOK, GraphResponse{
		Organization: state.Catalog.Organization,
		Source:       string(state.Catalog.Source),
		Graph:        state.Graph(),
	})
}

// Refresh triggers an immediate load and returns the catalog served afterwards.
// A failed fetch is not an error here: the previous data is kept and the
// reason is reported in the warning field.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.Refresh(r.Context())
	if err != nil {
		h.logger.Error("refresh aborted", "error", err)
		writeError(w, http.StatusServiceUnavailable, "refresh aborted")
		return
	}

	writeJSON(w, http.StatusOK, toCatalogResponse(explorer.New(catalog)))
}

// ListFetches returns the most recent fetch attempts, newest first.
func (h *Handler) ListFetches(w http.ResponseWriter, r *http.Request) {
	limit := defaultFetchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(parsed, maxFetchLimit)
	}

	runs, err := h.catalog.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list fetch runs", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]FetchRunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, toFetchRunResponse(run))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	catalog := h.catalog.Current()

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Time:         time.Now().UTC().Format(time.RFC3339),
		Organization: catalog.Organization,
		Source:       string(catalog.Source),
		Repositories: len(catalog.Repositories),
		Loading:      h.catalog.Loading(),
	})
}

// stateFor builds the explorer state for the current catalog and the
// request's language filter.
func (h *Handler) stateFor(r *http.Request) explorer.State {
	state := explorer.New(h.catalog.Current())
	if q := r.URL.Query(); q.Has("language") {
		state = state.Select(q.Get("language"))
	}
	return state
}
