package model

import (
	"unicode"
	"unicode/utf8"
)

// Visibility is the normalized visibility of a repository. Values outside the
// three constants can occur because normalization only upper-cases the first
// letter of whatever GitHub returned.
type Visibility string

const (
	VisibilityPublic   Visibility = "Public"
	VisibilityPrivate  Visibility = "Private"
	VisibilityInternal Visibility = "Internal"
)

// NormalizeVisibility defaults an absent visibility to Public and upper-cases
// the first letter of a present one. The remaining letters are left as-is.
func NormalizeVisibility(v string) Visibility {
	if v == "" {
		return VisibilityPublic
	}
	first, size := utf8.DecodeRuneInString(v)
	return Visibility(string(unicode.ToUpper(first)) + v[size:])
}

// CatalogSource records where the repositories of a Catalog came from.
type CatalogSource string

const (
	CatalogSourceLive     CatalogSource = "live"
	CatalogSourceSnapshot CatalogSource = "snapshot"
)

// FetchStatus is the outcome of a single organization fetch attempt.
type FetchStatus string

const (
	FetchStatusOK     FetchStatus = "ok"
	FetchStatusEmpty  FetchStatus = "empty"
	FetchStatusFailed FetchStatus = "failed"
)
