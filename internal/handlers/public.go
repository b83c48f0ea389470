// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bidhinews/internal/cache"
	"bidhinews/internal/feed"
	"bidhinews/internal/siteurl"
	"bidhinews/internal/store"
)

// Public groups the unauthenticated JSON endpoints that drive the news
// site: composed feeds, category pages, article resolution and search.
// The composed home and category responses are checked against the
// Valkey feed cache before hitting the composer.
type Public struct {
	composer   *feed.Composer
	categories *store.CategoryStore
	resolver   *siteurl.Resolver
	feedCache  *cache.FeedCache
}

// NewPublic creates a new Public handler group.
func NewPublic(composer *feed.Composer, categories *store.CategoryStore, resolver *siteurl.Resolver, feedCache *cache.FeedCache) *Public {
	return &Public{
		composer:   composer,
		categories: categories,
		resolver:   resolver,
		feedCache:  feedCache,
	}
}

// Health reports service liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Home serves the composed home page view-model.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.feedCache.Get(ctx, cache.HomeKey()); ok {
		respondRaw(w, cached)
		return
	}

	view := newHomeView(p.composer.Home())
	body, err := json.Marshal(view)
	if err != nil {
		slog.Error("home view encode failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	p.feedCache.Set(ctx, cache.HomeKey(), body)
	respondRaw(w, body)
}

// Categories serves the ordered category list with post counts.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := p.categories.List()
	if err != nil {
		respondStoreError(w, err, "list categories")
		return
	}
	respondJSON(w, http.StatusOK, newCategoryViews(cats))
}

// Category serves a single category page view-model. Unknown slugs are
// 404; a known category with no posts is a valid, empty page.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catSlug := chi.URLParam(r, "slug")

	cat, err := p.categories.FindBySlug(catSlug)
	if err != nil {
		respondStoreError(w, err, "find category")
		return
	}

	if cached, ok := p.feedCache.Get(ctx, cache.CategoryKey(catSlug)); ok {
		respondRaw(w, cached)
		return
	}

	view := newCategoryPageView(p.composer.Category(*cat))
	body, err := json.Marshal(view)
	if err != nil {
		slog.Error("category view encode failed", "error", err, "slug", catSlug)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	p.feedCache.Set(ctx, cache.CategoryKey(catSlug), body)
	respondRaw(w, body)
}

// News resolves an article from its public URL path. Both address forms
// land here: /api/news/{id} and /api/news/{categorySlug}/{postSlug}.
// Drafts resolve internally but are never served publicly.
func (p *Public) News(w http.ResponseWriter, r *http.Request) {
	segments := siteurl.Split(chi.URLParam(r, "*"))

	post, err := p.resolver.Resolve(segments)
	if err != nil {
		respondStoreError(w, err, "resolve article")
		return
	}
	if !post.IsPublished() {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, newPostView(post))
}

// Trending serves the trending sidebar for an article page, excluding
// the article being read.
func (p *Public) Trending(w http.ResponseWriter, r *http.Request) {
	excludeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	rail := p.composer.TrendingRail(excludeID)
	respondJSON(w, http.StatusOK, newPostViews(rail))
}

// Search serves full-corpus substring search over published posts.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	results := p.composer.Search(term)

	respondJSON(w, http.StatusOK, map[string]any{
		"query":   term,
		"results": newPostViews(results),
	})
}
