package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
	"github.com/ericfisherdev/hypergraph/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.FetchRunStore = (*FetchRunRepo)(nil)

// FetchRunRepo is the SQLite implementation of the FetchRunStore port interface.
type FetchRunRepo struct {
	db *DB
}

// NewFetchRunRepo creates a new FetchRunRepo backed by the given DB.
func NewFetchRunRepo(db *DB) *FetchRunRepo {
	return &FetchRunRepo{db: db}
}

// Record inserts a fetch run. A run without an ID is assigned a new UUID.
func (r *FetchRunRepo) Record(ctx context.Context, run model.FetchRun) error {
	const query = `INSERT INTO fetch_runs
		(id, organization, started_at, finished_at, status, repo_count, pages, truncated, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		run.ID,
		run.Organization,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		string(run.Status),
		run.RepoCount,
		run.Pages,
		boolToInt(run.Truncated),
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("record fetch run for %s: %w", run.Organization, err)
	}

	return nil
}

// ListRecent returns at most limit fetch runs, newest first.
func (r *FetchRunRepo) ListRecent(ctx context.Context, limit int) ([]model.FetchRun, error) {
	const query = `SELECT id, organization, started_at, finished_at, status, repo_count, pages, truncated, error
		FROM fetch_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`

	if limit <= 0 {
		return []model.FetchRun{}, nil
	}

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list fetch runs: %w", err)
	}
	defer rows.Close()

	runs := []model.FetchRun{}
	for rows.Next() {
		var (
			run        model.FetchRun
			startedAt  string
			finishedAt string
			status     string
			truncated  int
		)
		if err := rows.Scan(&run.ID, &run.Organization, &startedAt, &finishedAt, &status,
			&run.RepoCount, &run.Pages, &truncated, &run.Error); err != nil {
			return nil, fmt.Errorf("scan fetch run: %w", err)
		}

		run.Status = model.FetchStatus(status)
		run.Truncated = truncated != 0

		if run.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = parseTime(finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fetch runs: %w", err)
	}

	return runs, nil
}

// formatTime stores times as UTC RFC 3339 with nanoseconds, which sorts
// lexicographically in chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05.000000000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
