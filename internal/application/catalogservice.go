// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
	"github.com/ericfisherdev/hypergraph/internal/domain/port/driven"
)

// warningNoRepositories is surfaced when GitHub answered successfully but listed nothing.
const warningNoRepositories = "No repositories returned, using fallback data"

// refreshRequest represents a manual refresh trigger.
type refreshRequest struct {
	done chan model.Catalog
}

// CatalogService owns the repository catalog served to readers. It starts
// from an injected snapshot and replaces it with live data when a fetch
// succeeds with at least one repository. A failed or empty fetch never
// discards data already held; the reason is kept as a warning instead.
type CatalogService struct {
	lister   driven.RepositoryLister
	runStore driven.FetchRunStore
	org      string
	token    string
	interval time.Duration
	now      func() time.Time

	loadMu sync.Mutex // serializes loads

	mu      sync.RWMutex
	catalog model.Catalog
	loading bool

	refreshCh chan refreshRequest
}

// NewCatalogService creates a CatalogService serving snapshot until the first
// successful load. runStore may be nil to disable the fetch history. An
// interval of zero disables periodic reloads.
func NewCatalogService(
	lister driven.RepositoryLister,
	runStore driven.FetchRunStore,
	org string,
	token string,
	snapshot []model.Repository,
	interval time.Duration,
) *CatalogService {
	if snapshot == nil {
		snapshot = []model.Repository{}
	}

	return &CatalogService{
		lister:   lister,
		runStore: runStore,
		org:      org,
		token:    token,
		interval: interval,
		now:      time.Now,
		catalog: model.Catalog{
			Organization: org,
			Repositories: snapshot,
			Source:       model.CatalogSourceSnapshot,
		},
		refreshCh: make(chan refreshRequest),
	}
}

// Organization returns the organization whose repositories are served.
func (s *CatalogService) Organization() string {
	return s.org
}

// Current returns the catalog currently served.
func (s *CatalogService) Current() model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Loading reports whether a load is in progress.
func (s *CatalogService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Load performs one fetch attempt and applies the fallback policy. It never
// fails: the returned catalog is whatever is served after the attempt.
func (s *CatalogService) Load(ctx context.Context) model.Catalog {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	run := model.FetchRun{
		ID:           uuid.NewString(),
		Organization: s.org,
		StartedAt:    s.now(),
	}

	listing, err := s.lister.ListOrgRepositories(ctx, s.org, s.token)
	run.FinishedAt = s.now()

	s.mu.Lock()
	switch {
	case err != nil:
		run.Status = model.FetchStatusFailed
		run.Error = err.Error()
		s.catalog.Warning = err.Error()
		slog.Error("failed to fetch repositories", "org", s.org, "error", err)

	case listing == nil || len(listing.Repositories) == 0:
		run.Status = model.FetchStatusEmpty
		if listing != nil {
			run.Pages = listing.Pages
		}
		s.catalog.Warning = warningNoRepositories
		slog.Warn("no repositories returned, keeping current data", "org", s.org, "source", s.catalog.Source)

	default:
		run.Status = model.FetchStatusOK
		run.RepoCount = len(listing.Repositories)
		run.Pages = listing.Pages
		run.Truncated = listing.Truncated
		s.catalog = model.Catalog{
			Organization: s.org,
			Repositories: listing.Repositories,
			Source:       model.CatalogSourceLive,
			UpdatedAt:    run.FinishedAt,
			Truncated:    listing.Truncated,
		}
		slog.Info("loaded repositories from GitHub API", "org", s.org, "count", run.RepoCount)
	}
	catalog := s.catalog
	s.mu.Unlock()

	s.recordRun(ctx, run)

	return catalog
}

// Start runs an immediate load, then reloads on the configured interval (if
// any) and serves manual refresh requests. Start blocks until ctx is canceled.
func (s *CatalogService) Start(ctx context.Context) {
	s.Load(ctx)

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("catalog service stopped")
			return
		case <-tick:
			s.Load(ctx)
		case req := <-s.refreshCh:
			req.done <- s.Load(ctx)
		}
	}
}

// Refresh asks the Start loop for an immediate load and blocks until it
// completes or ctx is canceled.
func (s *CatalogService) Refresh(ctx context.Context) (model.Catalog, error) {
	req := refreshRequest{done: make(chan model.Catalog, 1)}

	select {
	case s.refreshCh <- req:
	case <-ctx.Done():
		return model.Catalog{}, ctx.Err()
	}

	select {
	case catalog := <-req.done:
		return catalog, nil
	case <-ctx.Done():
		return model.Catalog{}, ctx.Err()
	}
}

// History returns the most recent fetch runs, newest first.
func (s *CatalogService) History(ctx context.Context, limit int) ([]model.FetchRun, error) {
	if s.runStore == nil {
		return []model.FetchRun{}, nil
	}
	return s.runStore.ListRecent(ctx, limit)
}

func (s *CatalogService) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// recordRun stores run in the history. Failures are logged only.
func (s *CatalogService) recordRun(ctx context.Context, run model.FetchRun) {
	if s.runStore == nil {
		return
	}
	if err := s.runStore.Record(context.WithoutCancel(ctx), run); err != nil {
		slog.Error("failed to record fetch run", "org", s.org, "run_id", run.ID, "error", err)
	}
}
