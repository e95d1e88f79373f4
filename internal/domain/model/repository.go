package model

// Repository is the normalized description of one repository listed for an
// organization. Name and URL are always set, possibly to the empty string.
// An empty Language means the repository is unclassified.
type Repository struct {
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Language    string     `json:"language"`
	Stars       int        `json:"stars"`
	Forks       int        `json:"forks"`
	Visibility  Visibility `json:"visibility"`
	Description string     `json:"description,omitempty"`
}

// RepositoryListing is the result of listing one organization.
type RepositoryListing struct {
	Organization string
	Repositories []Repository
	Pages        int  // Number of pages requested.
	Truncated    bool // True when the page cap stopped the listing early.
}

// LanguageGroup is the ordered subsequence of repositories sharing a language key.
type LanguageGroup struct {
	Language     string
	Repositories []Repository
}
