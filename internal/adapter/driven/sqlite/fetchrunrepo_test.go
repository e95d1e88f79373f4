package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

func makeRun(id string, startedAt time.Time, status model.FetchStatus) model.FetchRun {
	return model.FetchRun{
		ID:           id,
		Organization: "cogpy",
		StartedAt:    startedAt,
		FinishedAt:   startedAt.Add(1500 * time.Millisecond),
		Status:       status,
	}
}

func TestFetchRunRepo_RecordAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 9, 30, 0, 123000000, time.UTC)
	run := makeRun("run-1", started, model.FetchStatusOK)
	run.RepoCount = 137
	run.Pages = 2

	require.NoError(t, repo.Record(ctx, run))

	runs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "cogpy", got.Organization)
	assert.True(t, got.StartedAt.Equal(started))
	assert.Equal(t, 1500*time.Millisecond, got.Duration())
	assert.Equal(t, model.FetchStatusOK, got.Status)
	assert.Equal(t, 137, got.RepoCount)
	assert.Equal(t, 2, got.Pages)
	assert.False(t, got.Truncated)
	assert.Empty(t, got.Error)
}

func TestFetchRunRepo_FailedRunKeepsError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)
	ctx := context.Background()

	run := makeRun("run-failed", time.Now(), model.FetchStatusFailed)
	run.Error = "GitHub API error (502): bad gateway"
	require.NoError(t, repo.Record(ctx, run))

	runs, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.FetchStatusFailed, runs[0].Status)
	assert.Equal(t, "GitHub API error (502): bad gateway", runs[0].Error)
}

func TestFetchRunRepo_TruncatedFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)
	ctx := context.Background()

	run := makeRun("run-capped", time.Now(), model.FetchStatusOK)
	run.RepoCount = 2000
	run.Pages = 20
	run.Truncated = true
	require.NoError(t, repo.Record(ctx, run))

	runs, err := repo.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Truncated)
}

func TestFetchRunRepo_AssignsIDWhenMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, makeRun("", time.Now(), model.FetchStatusEmpty)))
	require.NoError(t, repo.Record(ctx, makeRun("", time.Now(), model.FetchStatusEmpty)))

	runs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Len(t, runs[0].ID, 36)
	assert.NotEqual(t, runs[0].ID, runs[1].ID)
}

func TestFetchRunRepo_DuplicateIDFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)
	ctx := context.Background()

	run := makeRun("same", time.Now(), model.FetchStatusOK)
	require.NoError(t, repo.Record(ctx, run))
	assert.Error(t, repo.Record(ctx, run))
}

func TestFetchRunRepo_InvalidStatusRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)

	err := repo.Record(context.Background(), makeRun("bad", time.Now(), model.FetchStatus("exploded")))
	assert.Error(t, err)
}

func TestFetchRunRepo_ListRecentNewestFirstWithLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third", "fourth"} {
		require.NoError(t, repo.Record(ctx, makeRun(id, base.Add(time.Duration(i)*time.Hour), model.FetchStatusOK)))
	}

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "fourth", runs[0].ID)
	assert.Equal(t, "third", runs[1].ID)
	assert.Equal(t, "second", runs[2].ID)
}

func TestFetchRunRepo_ListRecentEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFetchRunRepo(db)

	runs, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	runs, err = repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNewDB_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hypergraph.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, path, db.Path())
	require.NoError(t, RunMigrations(db.Writer))
	// Second run is a no-op.
	require.NoError(t, RunMigrations(db.Writer))

	repo := NewFetchRunRepo(db)
	require.NoError(t, repo.Record(context.Background(), makeRun("persisted", time.Now(), model.FetchStatusOK)))
}
