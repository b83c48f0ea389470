// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bidhinews/internal/models"
)

// PostStore is the repository adapter for posts. It translates raw rows
// into normalized models.Post records: timestamps in UTC, keywords always
// a non-nil slice, optional text fields materialized as "".
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// PostFilter holds conjunctive equality predicates for ListPublished.
// Nil fields are not applied.
type PostFilter struct {
	Category   *string
	IsHot      *bool
	IsFeatured *bool
	PostType   *string
}

// String returns a pointer to s, for building PostFilter literals.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building PostFilter literals.
func Bool(b bool) *bool { return &b }

const postColumns = `id, name, description, status, category, category_slug, post_slug,
	       image_url, image_alt, keywords, post_type, author, is_hot, is_featured,
	       author_id, author_email,
	       created_by_uid, created_by_email, created_by_at,
	       published_by_uid, published_by_email, published_by_at,
	       created_at, updated_at`

// scanPost scans a row into a normalized Post.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var (
		p        models.Post
		keywords string
		authorID uuid.NullUUID

		createdByUID   uuid.NullUUID
		createdByEmail sql.NullString
		createdByAt    sql.NullTime

		publishedByUID   uuid.NullUUID
		publishedByEmail sql.NullString
		publishedByAt    sql.NullTime
	)

	err := scanner.Scan(
		&p.ID, &p.Name, &p.Description, &p.Status, &p.Category, &p.CategorySlug, &p.PostSlug,
		&p.ImageURL, &p.ImageAlt, &keywords, &p.PostType, &p.Author, &p.IsHot, &p.IsFeatured,
		&authorID, &p.AuthorEmail,
		&createdByUID, &createdByEmail, &createdByAt,
		&publishedByUID, &publishedByEmail, &publishedByAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Keywords = splitKeywords(keywords)
	if authorID.Valid {
		p.AuthorID = authorID.UUID
	}
	if createdByAt.Valid {
		p.CreatedBy = &models.AuditStamp{
			UID:   createdByUID.UUID,
			Email: createdByEmail.String,
			At:    createdByAt.Time.UTC(),
		}
	}
	if publishedByAt.Valid {
		p.PublishedBy = &models.AuditStamp{
			UID:   publishedByUID.UUID,
			Email: publishedByEmail.String,
			At:    publishedByAt.Time.UTC(),
		}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	return &p, nil
}

// ListPublished returns published posts matching the filter, newest first.
// limit <= 0 means no limit. Every returned post has status 'published'.
func (s *PostStore) ListPublished(f PostFilter, limit int) ([]models.Post, error) {
	where := []string{"status = 'published'"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != nil {
		where = append(where, "category = "+arg(*f.Category))
	}
	if f.IsHot != nil {
		where = append(where, "is_hot = "+arg(*f.IsHot))
	}
	if f.IsFeatured != nil {
		where = append(where, "is_featured = "+arg(*f.IsFeatured))
	}
	if f.PostType != nil {
		where = append(where, "post_type = "+arg(*f.PostType))
	}

	q := `SELECT ` + postColumns + ` FROM posts WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC`
	if limit > 0 {
		q += " LIMIT " + arg(limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListAll returns every post regardless of status, newest first.
// Admin dashboard only — never feeds the public site.
func (s *PostStore) ListAll() ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its opaque id, any status. The id is the
// key used by legacy single-segment URLs. Returns ErrNotFound for an
// unknown or malformed id.
func (s *PostStore) FindByID(id string) (*models.Post, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, uid)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindByPostSlug retrieves the post whose post_slug matches, any status.
// post_slug carries no uniqueness constraint (legacy data contains
// duplicates), so the newest match wins deterministically.
func (s *PostStore) FindByPostSlug(postSlug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts
		WHERE post_slug = $1 AND post_slug <> ''
		ORDER BY created_at DESC
		LIMIT 1
	`, postSlug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post. Timestamps are server-assigned, and the
// createdBy audit stamp is written once here, from AuthorID/AuthorEmail.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	if p.PostType == "" {
		p.PostType = models.PostTypeNews
	}

	row := s.db.QueryRow(`
		INSERT INTO posts (name, description, status, category, category_slug, post_slug,
		                   image_url, image_alt, keywords, post_type, author, is_hot, is_featured,
		                   author_id, author_email,
		                   created_by_uid, created_by_email, created_by_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $14, $15, NOW())
		RETURNING `+postColumns,
		p.Name, p.Description, p.Status, p.Category, p.CategorySlug, p.PostSlug,
		p.ImageURL, p.ImageAlt, joinKeywords(p.Keywords), p.PostType, p.Author, p.IsHot, p.IsFeatured,
		p.AuthorID, p.AuthorEmail,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post. created_at and the audit stamps are
// never touched here; AuthorID/AuthorEmail record the last saver.
func (s *PostStore) Update(p *models.Post) error {
	res, err := s.db.Exec(`
		UPDATE posts SET
			name = $1, description = $2, status = $3, category = $4,
			category_slug = $5, post_slug = $6, image_url = $7, image_alt = $8,
			keywords = $9, post_type = $10, author = $11, is_hot = $12, is_featured = $13,
			author_id = $14, author_email = $15, updated_at = NOW()
		WHERE id = $16
	`, p.Name, p.Description, p.Status, p.Category,
		p.CategorySlug, p.PostSlug, p.ImageURL, p.ImageAlt,
		joinKeywords(p.Keywords), p.PostType, p.Author, p.IsHot, p.IsFeatured,
		p.AuthorID, p.AuthorEmail, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Publish flips a post to published and stamps publishedBy. The stamp is
// write-once: republishing an already-published post keeps the original
// publisher and time.
func (s *PostStore) Publish(id string, publisherID uuid.UUID, publisherEmail string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Exec(`
		UPDATE posts SET
			status = 'published',
			updated_at = NOW(),
			published_by_uid = COALESCE(published_by_uid, $2),
			published_by_email = COALESCE(published_by_email, $3),
			published_by_at = COALESCE(published_by_at, NOW())
		WHERE id = $1
	`, uid, publisherID, publisherEmail)
	if err != nil {
		return fmt.Errorf("publish post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post by id.
func (s *PostStore) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// splitKeywords materializes the comma-joined keywords column as a
// slice. Always returns a non-nil slice so JSON encodes [] rather than
// null and callers never nil-check.
func splitKeywords(s string) []string {
	out := []string{}
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// joinKeywords serializes a keyword slice for storage.
func joinKeywords(ks []string) string {
	var out []string
	for _, k := range ks {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return strings.Join(out, ",")
}
