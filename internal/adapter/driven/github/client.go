// Package github implements the RepositoryLister port using the go-github library.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
	"github.com/ericfisherdev/hypergraph/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepositoryLister = (*Client)(nil)

const (
	// PerPage is the GitHub API maximum page size.
	PerPage = 100
	// MaxPages bounds a single listing to 2000 repositories.
	MaxPages = 20

	// DefaultRequestTimeout applies to each page request.
	DefaultRequestTimeout = 15 * time.Second

	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
)

// Client implements the driven.RepositoryLister port using the go-github library.
// It holds no per-listing state and is safe for concurrent use.
type Client struct {
	gh             *gh.Client
	requestTimeout time.Duration
	logger         *slog.Logger
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching, in memory)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client)
//
// Credentials are supplied per call to ListOrgRepositories.
func NewClient(requestTimeout time.Duration, logger *slog.Logger) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	return newClient(gh.NewClient(rateLimitClient), requestTimeout, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, requestTimeout time.Duration, logger *slog.Logger) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return newClient(client, requestTimeout, logger), nil
}

func newClient(client *gh.Client, requestTimeout time.Duration, logger *slog.Logger) *Client {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	client.UserAgent = "hypergraph"

	return &Client{
		gh:             client,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// ListOrgRepositories retrieves every repository of org visible to token
// (anonymously when token is empty). Pages are requested sequentially and the
// listing stops at the first page holding fewer than PerPage items, or after
// MaxPages pages. Any failure aborts the listing without partial data.
func (c *Client) ListOrgRepositories(ctx context.Context, org string, token string) (*model.RepositoryListing, error) {
	org = strings.TrimSpace(org)
	if org == "" {
		return nil, fmt.Errorf("list repositories: %w", driven.ErrInvalidOrganization)
	}

	client := c.gh
	if token != "" {
		client = client.WithAuthToken(token)
	}

	opts := &gh.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: gh.ListOptions{PerPage: PerPage},
	}

	listing := &model.RepositoryListing{
		Organization: org,
		Repositories: []model.Repository{},
	}

	for page := 1; ; page++ {
		opts.Page = page

		repos, err := c.listPage(ctx, client, org, opts)
		if err != nil {
			c.logger.Error("error fetching github repositories", "org", org, "page", page, "error", err)
			return nil, err
		}

		for _, r := range repos {
			listing.Repositories = append(listing.Repositories, mapRepository(r))
		}
		listing.Pages = page

		if len(repos) != PerPage {
			break
		}

		if page >= MaxPages {
			c.logger.Warn("reached maximum page limit",
				"org", org,
				"pages", MaxPages,
				"repositories", len(listing.Repositories),
			)
			listing.Truncated = true
			break
		}
	}

	c.logger.Info("fetched repositories",
		"org", org,
		"count", len(listing.Repositories),
		"pages", listing.Pages,
	)

	return listing, nil
}

// listPage requests one page under the per-request timeout and classifies failures.
func (c *Client) listPage(ctx context.Context, client *gh.Client, org string, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	repos, resp, err := client.Repositories.ListByOrg(reqCtx, org, opts)
	if err != nil {
		return nil, classifyError(resp, err, org, opts.Page)
	}
	// A JSON null decodes without error; an empty page decodes to a non-nil slice.
	if repos == nil {
		return nil, fmt.Errorf("listing repositories for %s (page %d): %w", org, opts.Page, driven.ErrMalformedResponse)
	}

	logRateLimit(c.logger, resp, org, opts.Page, len(repos))

	return repos, nil
}

// classifyError maps a go-github failure onto the port's error types.
func classifyError(resp *gh.Response, err error, org string, page int) error {
	if rl := rateLimitFromResponse(resp); rl != nil {
		return rl
	}

	// go-github refuses requests locally while a known limit is still active;
	// the synthetic response then carries no headers.
	var ghRateErr *gh.RateLimitError
	if errors.As(err, &ghRateErr) && !ghRateErr.Rate.Reset.Time.IsZero() {
		return newRateLimitError(http.StatusForbidden, ghRateErr.Message, ghRateErr.Rate.Reset.Time)
	}

	if resp != nil && resp.Response != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return &driven.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       responseBody(resp, err),
		}
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	if errors.As(err, &typeErr) || errors.As(err, &syntaxErr) {
		return fmt.Errorf("listing repositories for %s (page %d): %w: %w", org, page, driven.ErrMalformedResponse, err)
	}

	return fmt.Errorf("listing repositories for %s (page %d): %w", org, page, err)
}

// rateLimitFromResponse returns a RateLimitError when resp is a 403 with an
// exhausted quota and a parseable reset time, nil otherwise.
func rateLimitFromResponse(resp *gh.Response) *driven.RateLimitError {
	if resp == nil || resp.Response == nil || resp.StatusCode != http.StatusForbidden {
		return nil
	}
	if resp.Header.Get(headerRateRemaining) != "0" {
		return nil
	}

	epoch, err := strconv.ParseInt(resp.Header.Get(headerRateReset), 10, 64)
	if err != nil {
		return nil
	}

	return newRateLimitError(resp.StatusCode, responseBody(resp, nil), time.Unix(epoch, 0))
}

func newRateLimitError(status int, body string, resetAt time.Time) *driven.RateLimitError {
	return &driven.RateLimitError{
		HTTPError: &driven.HTTPError{StatusCode: status, Body: body},
		ResetAt:   resetAt,
		Message:   RateLimitMessage(resetAt),
	}
}

// RateLimitMessage formats the explanation shown when the quota is exhausted.
func RateLimitMessage(resetAt time.Time) string {
	return fmt.Sprintf(
		"GitHub API rate limit exceeded. Resets at %s (%s). "+
			"Consider setting HYPERGRAPH_GITHUB_TOKEN for higher rate limits.",
		resetAt.Local().Format(time.TimeOnly),
		humanize.Time(resetAt),
	)
}

// responseBody returns the raw error body. go-github re-populates the body
// after reading it in CheckResponse; the parsed message is the fallback.
func responseBody(resp *gh.Response, err error) string {
	if resp != nil && resp.Response != nil && resp.Body != nil {
		if data, readErr := io.ReadAll(resp.Body); readErr == nil && len(data) > 0 {
			return strings.TrimSpace(string(data))
		}
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Message
	}
	return ""
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(logger *slog.Logger, resp *gh.Response, org string, page, count int) {
	if resp == nil {
		return
	}

	logger.Debug("github api call",
		"endpoint", "orgs/"+org+"/repos",
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		logger.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// mapRepository converts a go-github Repository to a domain model Repository.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapRepository(r *gh.Repository) model.Repository {
	return model.Repository{
		Name:        r.GetName(),
		URL:         r.GetHTMLURL(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Visibility:  model.NormalizeVisibility(r.GetVisibility()),
		Description: r.GetDescription(),
	}
}
