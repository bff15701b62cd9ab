// Package model defines domain entities used by services and repositories.
package model

import "time"

// Tag is a normalized label attached to cats. The display name keeps the
// casing of the first occurrence; two tags never share the same normalized
// form (lower-cased, spaces removed) even though names are stored verbatim.
type Tag struct {
	ID      int64     // assigned by the store
	Name    string    // display name, unique
	Created time.Time // UTC, set on first encounter
}

// Cat is a single ingested catalog image. Created exactly once during
// ingestion, never updated or deleted afterwards.
type Cat struct {
	ID       int64     // assigned by the store
	SourceID string    // external catalog id, unique, drives dedup
	Width    int       // image width in pixels
	Height   int       // image height in pixels
	Image    []byte    // downloaded image payload
	Created  time.Time // UTC, set at ingestion time
	Tags     []Tag     // associated tags, unordered, at most once per tag
}

// PagedCats is one page of a cat listing plus paging metadata.
type PagedCats struct {
	Items      []Cat
	Page       int
	PageSize   int
	TotalCount int // size of the filtered set, independent of the page window
	TotalPages int // ceil(TotalCount / PageSize)
}
