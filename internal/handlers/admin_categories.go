// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"bidhinews/internal/slug"
	"bidhinews/internal/store"
)

// CategoryCreate adds a new category at the end of the ordering. The
// slug is derived from the name once, here; it never changes afterwards.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(in.Name)
	if msg := validateCategoryName(name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if utf8.RuneCountInString(slug.Generate(name)) < minCategoryNameLen {
		respondError(w, http.StatusBadRequest, "Category name produces too short a slug.")
		return
	}

	created, err := a.categories.Create(name)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			respondError(w, http.StatusConflict, "a category with this slug already exists")
			return
		}
		respondStoreError(w, err, "create category")
		return
	}

	a.feedCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, newCategoryView(created))
}

// CategoryDelete removes a category. Surviving sort orders keep their
// gaps; posts keep their denormalized category fields.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.categories.Delete(chi.URLParam(r, "slug")); err != nil {
		respondStoreError(w, err, "delete category")
		return
	}

	a.feedCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CategoriesReorder rewrites the full ordering from the submitted slug
// list. The list must name every category exactly once; on any mismatch
// nothing changes and the client gets the reason back.
func (a *Admin) CategoriesReorder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Slugs []string `json:"slugs"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.categories.Reorder(in.Slugs); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.feedCache.InvalidateAll(r.Context())

	cats, err := a.categories.List()
	if err != nil {
		respondStoreError(w, err, "list categories")
		return
	}
	respondJSON(w, http.StatusOK, newCategoryViews(cats))
}
