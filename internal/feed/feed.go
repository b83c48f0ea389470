// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package feed composes the public view-models: home page, category
// page, trending rail and search. The Build functions here are pure;
// fetching and concurrency live in the Composer (compose.go).
package feed

import (
	"strings"

	"github.com/google/uuid"

	"bidhinews/internal/models"
)

// HomeView is the composed home page. Slots that cannot be filled stay
// nil/empty; the page renders fewer slots, never placeholders.
type HomeView struct {
	Hero          *models.Post      `json:"hero,omitempty"`
	Secondary     *models.Post      `json:"secondary,omitempty"`
	LatestUpdates []models.Post     `json:"latestUpdates"`
	TextOnly      []models.Post     `json:"textOnly"`
	Categories    []CategorySection `json:"categories"`
	Remainder     []models.Post     `json:"remainder"`
}

// CategorySection is one per-category featured rail on the home page.
type CategorySection struct {
	Category models.Category `json:"category"`
	Posts    []models.Post   `json:"posts"`
}

// CategoryView is the composed single-category page.
type CategoryView struct {
	Category      models.Category `json:"category"`
	Featured      *models.Post    `json:"featured,omitempty"`
	LatestUpdates []models.Post   `json:"latestUpdates"`
	Remainder     []models.Post   `json:"remainder"`
}

// MergeUnique concatenates trending ahead of recent and deduplicates by
// id keeping the first occurrence. A post present in both sets is
// therefore ordered among the trending results: trending always beats
// equally-recent non-trending placement.
func MergeUnique(trending, recent []models.Post) []models.Post {
	seen := make(map[uuid.UUID]bool, len(trending)+len(recent))
	merged := make([]models.Post, 0, len(trending)+len(recent))
	for _, p := range append(append([]models.Post{}, trending...), recent...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		merged = append(merged, p)
	}
	return merged
}

// partitionByImage splits posts into the with-image and text-only
// buckets. Every post lands in exactly one bucket.
func partitionByImage(posts []models.Post) (withImage, textOnly []models.Post) {
	for _, p := range posts {
		if p.HasImage() {
			withImage = append(withImage, p)
		} else {
			textOnly = append(textOnly, p)
		}
	}
	return withImage, textOnly
}

// BuildHome assembles the home view from already-fetched inputs.
//
// The merged trending+recent sequence is partitioned by image presence.
// With-image posts fill hero, secondary and up to four latest updates in
// order. Text-only posts are emitted as their own list. Category rails
// come in pre-fetched; a post may sit in both a rail and the hero region
// when it carries both flags. The remainder holds every merged post not
// yet shown anywhere, in merged order.
func BuildHome(trending, recent []models.Post, sections []CategorySection) HomeView {
	merged := MergeUnique(trending, recent)
	withImage, textOnly := partitionByImage(merged)

	view := HomeView{
		LatestUpdates: []models.Post{},
		TextOnly:      textOnly,
		Categories:    sections,
		Remainder:     []models.Post{},
	}
	if view.TextOnly == nil {
		view.TextOnly = []models.Post{}
	}
	if view.Categories == nil {
		view.Categories = []CategorySection{}
	}

	displayed := make(map[uuid.UUID]bool)

	if len(withImage) > 0 {
		view.Hero = &withImage[0]
		displayed[withImage[0].ID] = true
	}
	if len(withImage) > 1 {
		view.Secondary = &withImage[1]
		displayed[withImage[1].ID] = true
	}
	for i := 2; i < len(withImage) && i < 6; i++ {
		view.LatestUpdates = append(view.LatestUpdates, withImage[i])
		displayed[withImage[i].ID] = true
	}
	for _, p := range textOnly {
		displayed[p.ID] = true
	}
	for _, s := range sections {
		for _, p := range s.Posts {
			displayed[p.ID] = true
		}
	}

	for _, p := range merged {
		if displayed[p.ID] {
			continue
		}
		displayed[p.ID] = true
		view.Remainder = append(view.Remainder, p)
	}

	return view
}

// BuildCategoryPage splits a category's posts (newest first) into
// featured, up to four latest updates, and the remainder grid. An empty
// category yields the all-empty view.
func BuildCategoryPage(cat models.Category, posts []models.Post) CategoryView {
	view := CategoryView{
		Category:      cat,
		LatestUpdates: []models.Post{},
		Remainder:     []models.Post{},
	}
	if len(posts) == 0 {
		return view
	}

	view.Featured = &posts[0]
	for i := 1; i < len(posts) && i < 5; i++ {
		view.LatestUpdates = append(view.LatestUpdates, posts[i])
	}
	if len(posts) > 5 {
		view.Remainder = append(view.Remainder, posts[5:]...)
	}
	return view
}

// BuildTrendingRail drops the post being read from a trending fetch and
// truncates to limit. Callers over-fetch by two so the exclusion never
// costs a second round-trip.
func BuildTrendingRail(posts []models.Post, excludeID uuid.UUID, limit int) []models.Post {
	rail := []models.Post{}
	for _, p := range posts {
		if p.ID == excludeID {
			continue
		}
		rail = append(rail, p)
		if len(rail) == limit {
			break
		}
	}
	return rail
}

// FilterSearch returns the posts matching term, preserving input order.
// A post matches when the term is a case-insensitive substring of its
// title, body, category name or any keyword. An empty term matches
// nothing rather than everything.
func FilterSearch(posts []models.Post, term string) []models.Post {
	matches := []models.Post{}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return matches
	}

	for _, p := range posts {
		if matchesTerm(&p, term) {
			matches = append(matches, p)
		}
	}
	return matches
}

func matchesTerm(p *models.Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	for _, k := range p.Keywords {
		if strings.Contains(strings.ToLower(k), term) {
			return true
		}
	}
	return false
}
