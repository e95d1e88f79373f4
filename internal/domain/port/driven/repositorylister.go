package driven

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

// Sentinel errors returned by RepositoryLister implementations.
var (
	// ErrMalformedResponse indicates GitHub answered 2xx with a body that is not
	// a JSON array of repositories.
	ErrMalformedResponse = errors.New("unexpected response format from GitHub API")

	// ErrInvalidOrganization indicates an empty or otherwise unusable organization name.
	ErrInvalidOrganization = errors.New("invalid organization name")
)

// HTTPError is returned when GitHub answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GitHub API error (%d): %s", e.StatusCode, e.Body)
}

// RateLimitError is an HTTPError raised when the primary rate limit quota is
// exhausted (403 with X-RateLimit-Remaining: 0).
type RateLimitError struct {
	*HTTPError
	ResetAt time.Time
	// Message is the human-readable explanation including the reset time.
	Message string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying HTTPError to errors.As.
func (e *RateLimitError) Unwrap() error {
	return e.HTTPError
}

// RepositoryLister defines the driven port for listing an organization's repositories.
// token may be empty for anonymous access. Implementations must not return
// partial data: any failure aborts the listing.
type RepositoryLister interface {
	ListOrgRepositories(ctx context.Context, org string, token string) (*model.RepositoryListing, error)
}
