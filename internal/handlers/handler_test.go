// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"bidhinews/internal/ai"
	"bidhinews/internal/cache"
	"bidhinews/internal/database"
	"bidhinews/internal/feed"
	"bidhinews/internal/middleware"
	"bidhinews/internal/session"
	"bidhinews/internal/siteurl"
	"bidhinews/internal/store"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) DescribeImage(_ context.Context, _ []byte, _ string) (string, error) {
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "bidhinews")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "bidhinews")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "feed:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Sessions   *session.Store
	Posts      *store.PostStore
	Categories *store.CategoryStore
	Users      *store.UserStore
	Media      *store.MediaStore
	FeedCache  *cache.FeedCache
	AIRegistry *ai.Registry
	Public     *Public
	Auth       *Auth
	Admin      *Admin
}

// newTestEnv creates a complete test environment with all handler
// dependencies. S3 stays nil; media upload paths are covered by their
// unconfigured-storage responses.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)
	users := store.NewUserStore(db)
	media := store.NewMediaStore(db)
	feedCache := cache.NewFeedCache(vk, 1*time.Minute)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	composer := feed.NewComposer(posts, categories, logger)
	resolver := siteurl.NewResolver(posts)

	aiRegistry := ai.NewRegistry("test", map[string]ai.ProviderConfig{})
	aiRegistry.Register("test", &mockAIProvider{name: "test", response: "A mock description."})

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Sessions:   sessions,
		Posts:      posts,
		Categories: categories,
		Users:      users,
		Media:      media,
		FeedCache:  feedCache,
		AIRegistry: aiRegistry,
		Public:     NewPublic(composer, categories, resolver, feedCache),
		Auth:       NewAuth(sessions, users),
		Admin:      NewAdmin(posts, categories, media, nil, aiRegistry, feedCache),
	}
}

// testSession creates a session.Data for handler tests.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withSession adds session data to a request context using the
// middleware key, standing in for the LoadSession/RequireAuth chain.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// withChiParam adds a chi URL parameter to a request.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx, _ := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// seedUserID returns the id of the seeded admin user, creating the seed
// if the database is empty.
func seedUserID(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var id uuid.UUID
	if err := db.QueryRow("SELECT id FROM users LIMIT 1").Scan(&id); err != nil {
		t.Fatalf("no users in database: %v", err)
	}
	return id
}

// cleanPosts removes test posts by name.
func cleanPosts(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		db.Exec("DELETE FROM posts WHERE name = $1", n)
	}
}

// cleanCategories removes test categories by slug.
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", s)
	}
}

// cleanUsers removes test users by email.
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, e := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", e)
	}
}
