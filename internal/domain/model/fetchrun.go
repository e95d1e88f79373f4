package model

import "time"

// FetchRun records one attempt to list an organization's repositories.
type FetchRun struct {
	ID           string
	Organization string
	StartedAt    time.Time
	FinishedAt   time.Time
	Status       FetchStatus
	RepoCount    int
	Pages        int
	Truncated    bool
	Error        string
}

// Duration returns how long the attempt took.
func (r FetchRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
