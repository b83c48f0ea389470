package store

import "errors"

// Sentinel errors returned by store methods. Callers match them with
// errors.Is.
var (
	// ErrNotFound means no row matched a single-entity lookup. Surfaced
	// to URL resolution as a 404; never used for list queries, which
	// return empty slices instead.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict means a write would violate a uniqueness rule, such as
	// creating a category whose slug already exists. No mutation occurs.
	ErrConflict = errors.New("store: already exists")
)
