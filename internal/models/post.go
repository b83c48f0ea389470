// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// PostTypeNews is the only post type currently served. The column exists
// so that future types (opinion, gallery) can share the table.
const PostTypeNews = "news"

// AuditStamp records who performed a lifecycle transition and when.
// Stamps are written once at the transition and never overwritten.
type AuditStamp struct {
	UID   uuid.UUID `json:"uid"`
	Email string    `json:"email"`
	At    time.Time `json:"at"`
}

// Post is a news article. All optional fields are materialized with
// explicit zero values by the store layer ("" / [] / false), so callers
// branch on values, never on field absence.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"` // rich-text HTML body
	Status      PostStatus `json:"status"`

	// Category is the display name of the assigned category, denormalized
	// at save time. Renaming a category does not cascade to posts that
	// reference the old name.
	Category     string `json:"category"`
	CategorySlug string `json:"categorySlug"`
	PostSlug     string `json:"postSlug"`

	ImageURL string   `json:"imageUrl"`
	ImageAlt string   `json:"imageAlt"`
	Keywords []string `json:"keywords"`
	PostType string   `json:"postType"`

	// Author is the public byline, independent of the audit identity below.
	Author string `json:"author"`

	IsHot      bool `json:"isHot"`
	IsFeatured bool `json:"isFeatured"`

	// AuthorID/AuthorEmail identify the last user who saved the record.
	AuthorID    uuid.UUID `json:"authorId"`
	AuthorEmail string    `json:"authorEmail"`

	CreatedBy   *AuditStamp `json:"createdBy,omitempty"`
	PublishedBy *AuditStamp `json:"publishedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsPublished returns true if the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// HasImage reports whether the post belongs to the "with image" feed
// bucket. Feed partitioning depends only on this.
func (p *Post) HasImage() bool {
	return p.ImageURL != ""
}

// HasCanonicalSlug reports whether the post can be addressed by the
// two-segment category-slug/post-slug URL form. Both parts must be set;
// otherwise the legacy id form applies.
func (p *Post) HasCanonicalSlug() bool {
	return p.CategorySlug != "" && p.PostSlug != ""
}
