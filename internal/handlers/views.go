// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// views.go converts domain records into JSON response shapes. All
// timestamps cross the API boundary as epoch milliseconds so the
// frontend never parses a driver-specific time format.
package handlers

import (
	"github.com/google/uuid"

	"bidhinews/internal/feed"
	"bidhinews/internal/models"
	"bidhinews/internal/siteurl"
)

type stampView struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	At    int64  `json:"at"`
}

type postView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Category     string     `json:"category"`
	CategorySlug string     `json:"categorySlug"`
	PostSlug     string     `json:"postSlug"`
	ImageURL     string     `json:"imageUrl"`
	ImageAlt     string     `json:"imageAlt"`
	Keywords     []string   `json:"keywords"`
	PostType     string     `json:"postType"`
	Author       string     `json:"author"`
	IsHot        bool       `json:"isHot"`
	IsFeatured   bool       `json:"isFeatured"`
	AuthorID     string     `json:"authorId"`
	AuthorEmail  string     `json:"authorEmail"`
	CreatedBy    *stampView `json:"createdBy,omitempty"`
	PublishedBy  *stampView `json:"publishedBy,omitempty"`
	CreatedAt    int64      `json:"createdAt"`
	UpdatedAt    int64      `json:"updatedAt"`

	// Path is the canonical public path for the post, outbound form of
	// the dual URL scheme.
	Path string `json:"path"`
}

type categoryView struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	PostCount int    `json:"postCount"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type categorySectionView struct {
	Category categoryView `json:"category"`
	Posts    []postView   `json:"posts"`
}

type homeView struct {
	Hero          *postView             `json:"hero,omitempty"`
	Secondary     *postView             `json:"secondary,omitempty"`
	LatestUpdates []postView            `json:"latestUpdates"`
	TextOnly      []postView            `json:"textOnly"`
	Categories    []categorySectionView `json:"categories"`
	Remainder     []postView            `json:"remainder"`
}

type categoryPageView struct {
	Category      categoryView `json:"category"`
	Featured      *postView    `json:"featured,omitempty"`
	LatestUpdates []postView   `json:"latestUpdates"`
	Remainder     []postView   `json:"remainder"`
}

func newStampView(s *models.AuditStamp) *stampView {
	if s == nil {
		return nil
	}
	return &stampView{UID: s.UID.String(), Email: s.Email, At: s.At.UnixMilli()}
}

func newPostView(p *models.Post) postView {
	v := postView{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		Status:       string(p.Status),
		Category:     p.Category,
		CategorySlug: p.CategorySlug,
		PostSlug:     p.PostSlug,
		ImageURL:     p.ImageURL,
		ImageAlt:     p.ImageAlt,
		Keywords:     p.Keywords,
		PostType:     p.PostType,
		Author:       p.Author,
		IsHot:        p.IsHot,
		IsFeatured:   p.IsFeatured,
		AuthorEmail:  p.AuthorEmail,
		CreatedBy:    newStampView(p.CreatedBy),
		PublishedBy:  newStampView(p.PublishedBy),
		CreatedAt:    p.CreatedAt.UnixMilli(),
		UpdatedAt:    p.UpdatedAt.UnixMilli(),
		Path:         siteurl.PostPath(p),
	}
	if v.Keywords == nil {
		v.Keywords = []string{}
	}
	if p.AuthorID != uuid.Nil {
		v.AuthorID = p.AuthorID.String()
	}
	return v
}

func newPostViews(posts []models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i]))
	}
	return views
}

func newPostViewPtr(p *models.Post) *postView {
	if p == nil {
		return nil
	}
	v := newPostView(p)
	return &v
}

func newCategoryView(c *models.Category) categoryView {
	return categoryView{
		Slug:      c.Slug,
		Name:      c.Name,
		Order:     c.SortOrder,
		PostCount: c.PostCount,
		CreatedAt: c.CreatedAt.UnixMilli(),
		UpdatedAt: c.UpdatedAt.UnixMilli(),
	}
}

func newCategoryViews(cats []models.Category) []categoryView {
	views := make([]categoryView, 0, len(cats))
	for i := range cats {
		views = append(views, newCategoryView(&cats[i]))
	}
	return views
}

func newHomeView(h feed.HomeView) homeView {
	sections := make([]categorySectionView, 0, len(h.Categories))
	for i := range h.Categories {
		sections = append(sections, categorySectionView{
			Category: newCategoryView(&h.Categories[i].Category),
			Posts:    newPostViews(h.Categories[i].Posts),
		})
	}
	return homeView{
		Hero:          newPostViewPtr(h.Hero),
		Secondary:     newPostViewPtr(h.Secondary),
		LatestUpdates: newPostViews(h.LatestUpdates),
		TextOnly:      newPostViews(h.TextOnly),
		Categories:    sections,
		Remainder:     newPostViews(h.Remainder),
	}
}

func newCategoryPageView(c feed.CategoryView) categoryPageView {
	return categoryPageView{
		Category:      newCategoryView(&c.Category),
		Featured:      newPostViewPtr(c.Featured),
		LatestUpdates: newPostViews(c.LatestUpdates),
		Remainder:     newPostViews(c.Remainder),
	}
}
