// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bidhinews/internal/ai"
	"bidhinews/internal/cache"
	"bidhinews/internal/middleware"
	"bidhinews/internal/models"
	"bidhinews/internal/slug"
	"bidhinews/internal/storage"
	"bidhinews/internal/store"
)

// Admin groups the session-guarded editorial API: post lifecycle,
// category management, media uploads and AI assistance. Every write
// invalidates the feed cache — composed views aggregate across
// categories, so partial invalidation is never safe.
type Admin struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	media      *store.MediaStore
	storage    *storage.Client
	aiRegistry *ai.Registry
	feedCache  *cache.FeedCache
}

// NewAdmin creates a new Admin handler group. storage may be nil if S3
// is not configured; media endpoints then answer 503.
func NewAdmin(posts *store.PostStore, categories *store.CategoryStore, media *store.MediaStore, storageClient *storage.Client, aiRegistry *ai.Registry, feedCache *cache.FeedCache) *Admin {
	return &Admin{
		posts:      posts,
		categories: categories,
		media:      media,
		storage:    storageClient,
		aiRegistry: aiRegistry,
		feedCache:  feedCache,
	}
}

// postInput is the request shape for creating and updating posts.
// Status is deliberately absent: posts are created as drafts and only
// the publish endpoint moves them to published.
type postInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	PostSlug    string   `json:"postSlug"`
	ImageURL    string   `json:"imageUrl"`
	ImageAlt    string   `json:"imageAlt"`
	Keywords    []string `json:"keywords"`
	Author      string   `json:"author"`
	IsHot       bool     `json:"isHot"`
	IsFeatured  bool     `json:"isFeatured"`
}

// categorySlugFor resolves the stored slug for a category display name.
// Posts denormalize both; an unknown name keeps an empty slug and the
// post stays on its legacy id URL.
func (a *Admin) categorySlugFor(name string) string {
	if name == "" {
		return ""
	}
	cats, err := a.categories.List()
	if err != nil {
		slog.Error("category lookup for post save failed", "error", err)
		return ""
	}
	for _, c := range cats {
		if c.Name == name {
			return c.Slug
		}
	}
	return ""
}

// PostsList returns every post regardless of status, newest first.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.ListAll()
	if err != nil {
		respondStoreError(w, err, "list posts")
		return
	}
	respondJSON(w, http.StatusOK, newPostViews(posts))
}

// PostGet returns a single post by id, any status.
func (a *Admin) PostGet(w http.ResponseWriter, r *http.Request) {
	post, err := a.posts.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err, "find post")
		return
	}
	respondJSON(w, http.StatusOK, newPostView(post))
}

// PostCreate creates a new draft. The post slug is derived from the
// title unless the client supplies one; names that slugify to nothing
// (Devanagari titles do) leave the slug empty and the post is addressed
// by id until a slug is set.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var in postInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePost(&in); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	postSlug := in.PostSlug
	if postSlug == "" {
		postSlug = slug.Generate(in.Name)
	}

	created, err := a.posts.Create(&models.Post{
		Name:         in.Name,
		Description:  in.Description,
		Status:       models.PostStatusDraft,
		Category:     in.Category,
		CategorySlug: a.categorySlugFor(in.Category),
		PostSlug:     postSlug,
		ImageURL:     in.ImageURL,
		ImageAlt:     in.ImageAlt,
		Keywords:     in.Keywords,
		Author:       in.Author,
		IsHot:        in.IsHot,
		IsFeatured:   in.IsFeatured,
		AuthorID:     sess.UserID,
		AuthorEmail:  sess.Email,
	})
	if err != nil {
		respondStoreError(w, err, "create post")
		return
	}

	a.feedCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, newPostView(created))
}

// PostUpdate saves changes to an existing post. Status, created_at and
// the audit stamps are preserved; the saver becomes the new
// authorId/authorEmail.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	id := chi.URLParam(r, "id")

	existing, err := a.posts.FindByID(id)
	if err != nil {
		respondStoreError(w, err, "find post")
		return
	}

	var in postInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePost(&in); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	// A set slug stays stable across renames; links already shared
	// must keep resolving.
	postSlug := in.PostSlug
	if postSlug == "" {
		postSlug = existing.PostSlug
	}

	updated := *existing
	updated.Name = in.Name
	updated.Description = in.Description
	updated.Category = in.Category
	updated.CategorySlug = a.categorySlugFor(in.Category)
	updated.PostSlug = postSlug
	updated.ImageURL = in.ImageURL
	updated.ImageAlt = in.ImageAlt
	updated.Keywords = in.Keywords
	updated.Author = in.Author
	updated.IsHot = in.IsHot
	updated.IsFeatured = in.IsFeatured
	updated.AuthorID = sess.UserID
	updated.AuthorEmail = sess.Email

	if err := a.posts.Update(&updated); err != nil {
		respondStoreError(w, err, "update post")
		return
	}

	a.feedCache.InvalidateAll(r.Context())

	saved, err := a.posts.FindByID(id)
	if err != nil {
		respondStoreError(w, err, "find post")
		return
	}
	respondJSON(w, http.StatusOK, newPostView(saved))
}

// PostPublish moves a post to published and stamps publishedBy once.
// Routed behind RequireAdmin; editors save drafts, admins publish.
func (a *Admin) PostPublish(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	id := chi.URLParam(r, "id")

	if err := a.posts.Publish(id, sess.UserID, sess.Email); err != nil {
		respondStoreError(w, err, "publish post")
		return
	}

	a.feedCache.InvalidateAll(r.Context())

	published, err := a.posts.FindByID(id)
	if err != nil {
		respondStoreError(w, err, "find post")
		return
	}
	respondJSON(w, http.StatusOK, newPostView(published))
}

// PostDelete removes a post.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.posts.Delete(chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err, "delete post")
		return
	}

	a.feedCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
