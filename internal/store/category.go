// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"bidhinews/internal/models"
	"bidhinews/internal/slug"
)

// CategoryStore is the repository adapter for categories. Categories are
// keyed by slug, and sort_order controls their display position on the
// home page and in navigation.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `c.slug, c.name, c.sort_order, c.created_at, c.updated_at`

// List returns all categories ordered by sort_order, each with its
// published post count.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `,
		       COUNT(p.id) FILTER (WHERE p.status = 'published') AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_slug = c.slug
		GROUP BY c.slug, c.name, c.sort_order, c.created_at, c.updated_at
		ORDER BY c.sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Slug, &c.Name, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt, &c.PostCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// FindBySlug retrieves a single category by its slug.
func (s *CategoryStore) FindBySlug(catSlug string) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRow(`
		SELECT slug, name, sort_order, created_at, updated_at
		FROM categories WHERE slug = $1
	`, catSlug).Scan(&c.Slug, &c.Name, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

// Create adds a new category. The slug is derived from the name once,
// here, and never regenerated. The new category is appended at the end
// of the ordering; slug check, position assignment and insert run in one
// transaction so concurrent creates cannot collide or share a position.
func (s *CategoryStore) Create(name string) (*models.Category, error) {
	catSlug := slug.Generate(name)
	if catSlug == "" {
		return nil, fmt.Errorf("category name %q produces an empty slug", name)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, catSlug).Scan(&exists); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	var c models.Category
	err = tx.QueryRow(`
		INSERT INTO categories (slug, name, sort_order)
		VALUES ($1, $2, (SELECT COUNT(*) FROM categories))
		RETURNING slug, name, sort_order, created_at, updated_at
	`, catSlug, name).Scan(&c.Slug, &c.Name, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

// Delete removes a category by slug. Remaining sort_order values are NOT
// renumbered; the ordering stays correct because display sorts by
// sort_order, and the next Create fills from COUNT. Posts keep their
// stored category fields.
func (s *CategoryStore) Delete(catSlug string) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE slug = $1`, catSlug)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder rewrites the full ordering in one transaction. slugs must name
// every existing category exactly once; positions are assigned densely
// 0..N-1 from slice order. On any mismatch nothing changes.
func (s *CategoryStore) Reorder(slugs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	if total != len(slugs) {
		return fmt.Errorf("reorder categories: got %d slugs, have %d categories", len(slugs), total)
	}

	seen := make(map[string]bool, len(slugs))
	for i, cs := range slugs {
		if seen[cs] {
			return fmt.Errorf("reorder categories: duplicate slug %q", cs)
		}
		seen[cs] = true

		res, err := tx.Exec(`
			UPDATE categories SET sort_order = $1, updated_at = NOW() WHERE slug = $2
		`, i, cs)
		if err != nil {
			return fmt.Errorf("reorder categories: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("reorder categories: unknown slug %q", cs)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	return nil
}
