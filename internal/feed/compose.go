// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bidhinews/internal/models"
	"bidhinews/internal/store"
)

// Default fetch sizes for the composed views.
const (
	DefaultTrendingLimit = 10
	DefaultRecentLimit   = 30
	FeaturedPerCategory  = 4
	TrendingRailLimit    = 4
)

// PostSource is the post fetch surface the composer needs.
type PostSource interface {
	ListPublished(f store.PostFilter, limit int) ([]models.Post, error)
}

// CategorySource is the category fetch surface the composer needs.
type CategorySource interface {
	List() ([]models.Category, error)
}

// Composer fetches feed inputs and assembles view-models. Reads are
// fail-soft: a failed fetch is logged and degrades to an empty section,
// the public site never hard-fails a page because one query broke.
type Composer struct {
	posts  PostSource
	cats   CategorySource
	logger *slog.Logger
}

// NewComposer creates a Composer over the given sources.
func NewComposer(posts PostSource, cats CategorySource, logger *slog.Logger) *Composer {
	return &Composer{posts: posts, cats: cats, logger: logger}
}

// fetchPosts wraps a fail-soft ListPublished call.
func (c *Composer) fetchPosts(section string, f store.PostFilter, limit int) []models.Post {
	posts, err := c.posts.ListPublished(f, limit)
	if err != nil {
		c.logger.Error("feed fetch failed", "section", section, "error", err)
		return nil
	}
	return posts
}

// Home composes the home page. The trending, recent and category
// fetches run concurrently, then the per-category rails fan out, one
// goroutine per category.
func (c *Composer) Home() HomeView {
	var (
		trending   []models.Post
		recent     []models.Post
		categories []models.Category
	)

	var g errgroup.Group
	g.Go(func() error {
		trending = c.fetchPosts("trending", store.PostFilter{IsHot: store.Bool(true)}, DefaultTrendingLimit)
		return nil
	})
	g.Go(func() error {
		recent = c.fetchPosts("recent", store.PostFilter{}, DefaultRecentLimit)
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = c.cats.List()
		if err != nil {
			c.logger.Error("feed fetch failed", "section", "categories", "error", err)
			categories = nil
		}
		return nil
	})
	g.Wait()

	sections := make([]CategorySection, len(categories))
	var rails errgroup.Group
	for i, cat := range categories {
		rails.Go(func() error {
			posts := c.fetchPosts("category rail "+cat.Slug, store.PostFilter{
				Category:   store.String(cat.Name),
				IsFeatured: store.Bool(true),
			}, FeaturedPerCategory)
			if posts == nil {
				posts = []models.Post{}
			}
			sections[i] = CategorySection{Category: cat, Posts: posts}
			return nil
		})
	}
	rails.Wait()

	return BuildHome(trending, recent, sections)
}

// Category composes a single category page for the given category.
func (c *Composer) Category(cat models.Category) CategoryView {
	posts := c.fetchPosts("category "+cat.Slug, store.PostFilter{Category: store.String(cat.Name)}, 0)
	return BuildCategoryPage(cat, posts)
}

// TrendingRail composes the trending sidebar for an article page,
// excluding the article being read.
func (c *Composer) TrendingRail(excludeID uuid.UUID) []models.Post {
	posts := c.fetchPosts("trending rail", store.PostFilter{IsHot: store.Bool(true)}, TrendingRailLimit+2)
	return BuildTrendingRail(posts, excludeID, TrendingRailLimit)
}

// Search fetches every published post and filters in memory. There is
// no search index; the corpus is small enough that this stays cheap.
func (c *Composer) Search(term string) []models.Post {
	posts := c.fetchPosts("search", store.PostFilter{}, 0)
	return FilterSearch(posts, term)
}
