package driven

import (
	"context"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

// FetchRunStore defines the driven port for the fetch attempt history.
// It stores attempt metadata only, never repository records.
type FetchRunStore interface {
	Record(ctx context.Context, run model.FetchRun) error
	// ListRecent returns at most limit runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.FetchRun, error)
}
