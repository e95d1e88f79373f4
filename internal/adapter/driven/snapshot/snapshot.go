// Package snapshot loads the static repository dataset served when the live
// GitHub listing is unavailable.
package snapshot

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

//go:embed default.yaml
var defaultSnapshot []byte

// Snapshot is a static repository list for one organization.
type Snapshot struct {
	Organization string
	Repositories []model.Repository
}

type document struct {
	Organization string  `yaml:"organization"`
	Repositories []entry `yaml:"repositories"`
}

type entry struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Language    string `yaml:"language"`
	Stars       int    `yaml:"stars"`
	Forks       int    `yaml:"forks"`
	Visibility  string `yaml:"visibility"`
	Description string `yaml:"description"`
}

// Default returns the snapshot embedded in the binary.
func Default() (*Snapshot, error) {
	s, err := Parse(defaultSnapshot)
	if err != nil {
		return nil, fmt.Errorf("parse embedded snapshot: %w", err)
	}
	return s, nil
}

// Load reads a snapshot from path, or returns the embedded one when path is empty.
func Load(path string) (*Snapshot, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML snapshot. Entries are normalized with the same rules
// as live GitHub records.
func Parse(data []byte) (*Snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	repos := make([]model.Repository, 0, len(doc.Repositories))
	for _, e := range doc.Repositories {
		repos = append(repos, model.Repository{
			Name:        e.Name,
			URL:         e.URL,
			Language:    e.Language,
			Stars:       max(e.Stars, 0),
			Forks:       max(e.Forks, 0),
			Visibility:  model.NormalizeVisibility(e.Visibility),
			Description: e.Description,
		})
	}

	return &Snapshot{
		Organization: doc.Organization,
		Repositories: repos,
	}, nil
}

// For returns the snapshot repositories when the snapshot describes org
// (compared case-insensitively, as GitHub does) and false otherwise.
func (s *Snapshot) For(org string) ([]model.Repository, bool) {
	if !strings.EqualFold(strings.TrimSpace(s.Organization), strings.TrimSpace(org)) {
		return nil, false
	}
	return s.Repositories, true
}
