package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/hypergraph/internal/adapter/driving/http"
	"github.com/ericfisherdev/hypergraph/internal/application"
	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

// --- Mock implementations ---

type mockLister struct {
	listing *model.RepositoryListing
	err     error
}

func (m *mockLister) ListOrgRepositories(_ context.Context, _, _ string) (*model.RepositoryListing, error) {
	return m.listing, m.err
}

type mockRunStore struct {
	runs    []model.FetchRun
	listErr error
	limit   int
}

func (m *mockRunStore) Record(_ context.Context, run model.FetchRun) error {
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRunStore) ListRecent(_ context.Context, limit int) ([]model.FetchRun, error) {
	m.limit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.runs, nil
}

// --- Helpers ---

func testRepos() []model.Repository {
	return []model.Repository{
		{Name: "alpha", URL: "https://github.com/cogpy/alpha", Language: "Go", Stars: 3, Forks: 1, Visibility: model.VisibilityPublic},
		{Name: "beta", URL: "https://github.com/cogpy/beta", Language: "Python", Stars: 1, Visibility: model.VisibilityPublic},
		{Name: "gamma", URL: "https://github.com/cogpy/gamma", Language: "Go", Visibility: model.VisibilityPrivate, Description: "third"},
		{Name: "delta", URL: "https://github.com/cogpy/delta", Language: "", Visibility: model.VisibilityPublic},
	}
}

func setupHandler(t *testing.T, lister *mockLister, store *mockRunStore) (http.Handler, *application.CatalogService) {
	t.Helper()
	svc := application.NewCatalogService(lister, store, "cogpy", "", testRepos(), 0)
	h := httphandler.NewHandler(svc, slog.Default())
	return httphandler.NewServeMux(h, slog.Default()), svc
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// --- Tests ---

func TestListRepositories_All(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/repositories")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	resp := decode[httphandler.CatalogResponse](t, rec)
	assert.Equal(t, "cogpy", resp.Organization)
	assert.Equal(t, "snapshot", resp.Source)
	assert.Nil(t, resp.Language)
	assert.Equal(t, 4, resp.Count)
	require.Len(t, resp.Repositories, 4)
	assert.Equal(t, "alpha", resp.Repositories[0].Name)
	assert.Empty(t, resp.UpdatedAt)
}

func TestListRepositories_LanguageFilter(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/repositories?language=Go")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httphandler.CatalogResponse](t, rec)
	require.NotNil(t, resp.Language)
	assert.Equal(t, "Go", *resp.Language)
	require.Len(t, resp.Repositories, 2)
	assert.Equal(t, "alpha", resp.Repositories[0].Name)
	assert.Equal(t, "gamma", resp.Repositories[1].Name)
}

func TestListRepositories_EmptyLanguageSelectsUnclassified(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/repositories?language=")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httphandler.CatalogResponse](t, rec)
	require.Len(t, resp.Repositories, 1)
	assert.Equal(t, "delta", resp.Repositories[0].Name)
}

func TestListRepositories_UnknownLanguageIsEmptyArray(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/repositories?language=COBOL")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"repositories":[]`)
}

func TestListRepositories_DescriptionOmittedWhenEmpty(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/repositories?language=Python")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "description")
}

func TestListLanguages(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/languages")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]httphandler.LanguageResponse](t, rec)
	require.Len(t, resp, 3)

	assert.Equal(t, "", resp[0].Language)
	assert.Equal(t, "Unclassified", resp[0].DisplayName)
	assert.Equal(t, "#cccccc", resp[0].Color)
	assert.Equal(t, 1, resp[0].Count)

	assert.Equal(t, "Go", resp[1].Language)
	assert.Equal(t, "#00ADD8", resp[1].Color)
	assert.Equal(t, 2, resp[1].Count)

	assert.Equal(t, "Python", resp[2].Language)
	assert.Equal(t, 1, resp[2].Count)
}

func TestGetGraph(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/graph")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httphandler.GraphResponse](t, rec)
	assert.Equal(t, 1200.0, resp.Graph.Width)
	assert.Equal(t, 600.0, resp.Graph.Height)
	assert.Equal(t, model.Point{X: 600, Y: 300}, resp.Graph.Center)
	assert.Len(t, resp.Graph.Clusters, 3)
	assert.Len(t, resp.Graph.Nodes, 4)
}

func TestGetGraph_Filtered(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/graph?language=Go")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httphandler.GraphResponse](t, rec)
	require.Len(t, resp.Graph.Clusters, 1)
	assert.Equal(t, "Go", resp.Graph.Clusters[0].Language)
	// A single cluster sits at angle 0: anchor (850, 300).
	assert.InDelta(t, 850.0, resp.Graph.Clusters[0].Anchor.X, 1e-9)
	assert.InDelta(t, 300.0, resp.Graph.Clusters[0].Anchor.Y, 1e-9)
	assert.Len(t, resp.Graph.Nodes, 2)
}

func TestRefresh_LiveData(t *testing.T) {
	lister := &mockLister{listing: &model.RepositoryListing{
		Organization: "cogpy",
		Repositories: []model.Repository{{Name: "fresh", Language: "Rust", Visibility: model.VisibilityPublic}},
		Pages:        1,
	}}
	store := &mockRunStore{}
	handler, svc := setupHandler(t, lister, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/refresh")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httphandler.CatalogResponse](t, rec)
	assert.Equal(t, "live", resp.Source)
	require.Len(t, resp.Repositories, 1)
	assert.Equal(t, "fresh", resp.Repositories[0].Name)
	assert.NotEmpty(t, resp.UpdatedAt)
}

func TestRefresh_FailureKeepsDataWithWarning(t *testing.T) {
	lister := &mockLister{err: errors.New("GitHub API error (502): bad gateway")}
	handler, svc := setupHandler(t, lister, &mockRunStore{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/refresh")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httphandler.CatalogResponse](t, rec)
	assert.Equal(t, "snapshot", resp.Source)
	assert.Len(t, resp.Repositories, 4)
	assert.Contains(t, resp.Warning, "502")
}

func TestRefresh_NoLoopRunning(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestRefresh_MethodNotAllowed(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/refresh")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListFetches(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &mockRunStore{runs: []model.FetchRun{{
		ID:           "run-1",
		Organization: "cogpy",
		StartedAt:    started,
		FinishedAt:   started.Add(1500 * time.Millisecond),
		Status:       model.FetchStatusFailed,
		Error:        "boom",
	}}}
	handler, _ := setupHandler(t, &mockLister{}, store)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/fetches?limit=5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, store.limit)
	resp := decode[[]httphandler.FetchRunResponse](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, "run-1", resp[0].ID)
	assert.Equal(t, "failed", resp[0].Status)
	assert.Equal(t, int64(1500), resp[0].DurationMS)
	assert.Equal(t, "boom", resp[0].Error)
	assert.Equal(t, "2026-03-01T12:00:00Z", resp[0].StartedAt)
}

func TestListFetches_Limits(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantLimit int
	}{
		{name: "default", query: "", wantCode: http.StatusOK, wantLimit: 20},
		{name: "capped", query: "?limit=5000", wantCode: http.StatusOK, wantLimit: 200},
		{name: "zero", query: "?limit=0", wantCode: http.StatusBadRequest},
		{name: "not a number", query: "?limit=ten", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockRunStore{}
			handler, _ := setupHandler(t, &mockLister{}, store)

			rec := doRequest(t, handler, http.MethodGet, "/api/v1/fetches"+tt.query)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantLimit, store.limit)
				assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}

func TestListFetches_StoreError(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{listErr: errors.New("db locked")})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/fetches")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	handler, _ := setupHandler(t, &mockLister{}, &mockRunStore{})

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/health")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httphandler.HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "cogpy", resp.Organization)
	assert.Equal(t, "snapshot", resp.Source)
	assert.Equal(t, 4, resp.Repositories)
	assert.False(t, resp.Loading)
	assert.NotEmpty(t, resp.Time)
}

func TestRecoveryMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	rec := doRequest(t, handler, http.MethodGet, "/boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
