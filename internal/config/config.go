// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Organization    string
	GitHubToken     string
	ListenAddr      string
	DBPath          string
	SnapshotPath    string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
}

// HasGitHubToken reports whether listings should be authenticated.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// The GitHub token (HYPERGRAPH_GITHUB_TOKEN) is optional; without it listings
// are anonymous and subject to the lower unauthenticated rate limit.
// Optional variables with defaults: HYPERGRAPH_ORG (cogpy),
// HYPERGRAPH_LISTEN_ADDR (127.0.0.1:8080), HYPERGRAPH_DB_PATH (hypergraph.db),
// HYPERGRAPH_SNAPSHOT_PATH (embedded snapshot), HYPERGRAPH_REQUEST_TIMEOUT (15s),
// HYPERGRAPH_REFRESH_INTERVAL (0, periodic reloads disabled).
func Load() (*Config, error) {
	org := "cogpy"
	if v, ok := os.LookupEnv("HYPERGRAPH_ORG"); ok {
		org = strings.TrimSpace(v)
		if org == "" {
			return nil, errors.New("HYPERGRAPH_ORG must not be empty")
		}
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("HYPERGRAPH_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "hypergraph.db"
	if v, ok := os.LookupEnv("HYPERGRAPH_DB_PATH"); ok {
		dbPath = v
	}

	requestTimeout, err := durationEnv("HYPERGRAPH_REQUEST_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	if requestTimeout <= 0 {
		return nil, fmt.Errorf("HYPERGRAPH_REQUEST_TIMEOUT must be positive, got %s", requestTimeout)
	}

	refreshInterval, err := durationEnv("HYPERGRAPH_REFRESH_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	if refreshInterval < 0 {
		return nil, fmt.Errorf("HYPERGRAPH_REFRESH_INTERVAL must not be negative, got %s", refreshInterval)
	}

	return &Config{
		Organization:    org,
		GitHubToken:     strings.TrimSpace(os.Getenv("HYPERGRAPH_GITHUB_TOKEN")),
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		SnapshotPath:    os.Getenv("HYPERGRAPH_SNAPSHOT_PATH"),
		RequestTimeout:  requestTimeout,
		RefreshInterval: refreshInterval,
	}, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	return parsed, nil
}
