// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package siteurl builds and resolves public article URLs. Two address
// forms coexist under the same /news prefix: the legacy single-segment
// id form and the canonical category-slug/post-slug form. Legacy links
// shared before slugs existed must keep working forever.
package siteurl

import (
	"strings"

	"bidhinews/internal/models"
	"bidhinews/internal/store"
)

// PathPrefix is the public route prefix for article pages.
const PathPrefix = "/news"

// PostPath returns the public path for a post. Posts carrying both slugs
// get the canonical two-segment form; everything else falls back to the
// id form. Never returns an empty path.
func PostPath(p *models.Post) string {
	if p.HasCanonicalSlug() {
		return PathPrefix + "/" + p.CategorySlug + "/" + p.PostSlug
	}
	return PathPrefix + "/" + p.ID.String()
}

// Finder is the post lookup surface the resolver needs.
type Finder interface {
	FindByID(id string) (*models.Post, error)
	FindByPostSlug(postSlug string) (*models.Post, error)
}

// Resolver maps incoming /news/... path segments to posts.
type Resolver struct {
	posts Finder
}

// NewResolver creates a Resolver over the given post finder.
func NewResolver(posts Finder) *Resolver {
	return &Resolver{posts: posts}
}

// Resolve dispatches on segment count alone. One segment is an id
// lookup, two segments is a slug lookup keyed on the SECOND segment
// only. The category segment is never validated against the post's
// actual category; links survive category renames and deletions that
// way. Anything else is store.ErrNotFound.
func (r *Resolver) Resolve(segments []string) (*models.Post, error) {
	switch len(segments) {
	case 1:
		return r.posts.FindByID(segments[0])
	case 2:
		return r.posts.FindByPostSlug(segments[1])
	default:
		return nil, store.ErrNotFound
	}
}

// Split breaks a wildcard path remainder into segments, dropping empty
// parts from leading, trailing or doubled slashes.
func Split(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
