package model

import "time"

// Catalog is the repository list currently served to readers, together with
// where it came from and any non-fatal warning from the last load attempt.
type Catalog struct {
	Organization string
	Repositories []Repository
	Source       CatalogSource
	Warning      string
	UpdatedAt    time.Time
	Truncated    bool
}

// IsLive reports whether the catalog holds data from a successful fetch.
func (c Catalog) IsLive() bool {
	return c.Source == CatalogSourceLive
}
