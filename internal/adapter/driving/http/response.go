package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/hypergraph/internal/domain/explorer"
	"github.com/ericfisherdev/hypergraph/internal/domain/layout"
	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// CatalogResponse is the JSON representation of the served repository list.
type CatalogResponse struct {
	Organization string             `json:"organization"`
	Source       string             `json:"source"`
	Warning      string             `json:"warning,omitempty"`
	UpdatedAt    string             `json:"updated_at,omitempty"`
	Truncated    bool               `json:"truncated"`
	Language     *string            `json:"language,omitempty"`
	Count        int                `json:"count"`
	Repositories []model.Repository `json:"repositories"`
}

// LanguageResponse is one entry of the language filter.
type LanguageResponse struct {
	Language    string `json:"language"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
	Count       int    `json:"count"`
}

// GraphResponse wraps a computed layout with the catalog it was computed from.
type GraphResponse struct {
	Organization string      `json:"organization"`
	Source       string      `json:"source"`
	Graph        model.Graph `json:"graph"`
}

// FetchRunResponse is the JSON representation of one fetch attempt.
type FetchRunResponse struct {
	ID           string `json:"id"`
	Organization string `json:"organization"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at"`
	DurationMS   int64  `json:"duration_ms"`
	Status       string `json:"status"`
	RepoCount    int    `json:"repo_count"`
	Pages        int    `json:"pages"`
	Truncated    bool   `json:"truncated"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status       string `json:"status"`
	Time         string `json:"time"`
	Organization string `json:"organization"`
	Source       string `json:"source"`
	Repositories int    `json:"repositories"`
	Loading      bool   `json:"loading"`
}

// toCatalogResponse converts an explorer state to its JSON representation,
// listing only the repositories matching the active filter.
func toCatalogResponse(state explorer.State) CatalogResponse {
	catalog := state.Catalog
	repos := state.Filtered()
	if repos == nil {
		repos = []model.Repository{}
	}

	resp := CatalogResponse{
		Organization: catalog.Organization,
		Source:       string(catalog.Source),
		Warning:      catalog.Warning,
		Truncated:    catalog.Truncated,
		Count:        len(repos),
		Repositories: repos,
	}
	if !catalog.UpdatedAt.IsZero() {
		resp.UpdatedAt = catalog.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if lang, ok := state.Selection(); ok {
		resp.Language = &lang
	}
	return resp
}

// toLanguageResponse converts a language count to its JSON representation.
func toLanguageResponse(lc explorer.LanguageCount) LanguageResponse {
	return LanguageResponse{
		Language:    lc.Language,
		DisplayName: layout.DisplayName(lc.Language),
		Color:       layout.ColorFor(lc.Language),
		Count:       lc.Count,
	}
}

// toFetchRunResponse converts a domain FetchRun to its JSON representation.
func toFetchRunResponse(run model.FetchRun) FetchRunResponse {
	return FetchRunResponse{
		ID:           run.ID,
		Organization: run.Organization,
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339Nano),
		FinishedAt:   run.FinishedAt.UTC().Format(time.RFC3339Nano),
		DurationMS:   run.Duration().Milliseconds(),
		Status:       string(run.Status),
		RepoCount:    run.RepoCount,
		Pages:        run.Pages,
		Truncated:    run.Truncated,
		Error:        run.Error,
	}
}
