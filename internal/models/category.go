// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category is a named, ordered grouping of posts, addressed by its slug.
// The slug is derived from the name once at creation and never
// regenerated; a later rename keeps the old slug.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`

	// SortOrder controls manual display order. Orders are densely
	// assigned 0..N-1 and rewritten wholesale on reorder. Deleting a
	// category leaves a gap until the next reorder.
	SortOrder int `json:"order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// PostCount is a virtual field populated by list queries.
	PostCount int `json:"postCount"`
}
