// Package router sets up all HTTP routes and middleware chains for the
// BidhiNews backend. It organizes routes into the public feed API and
// the session-guarded admin API.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"bidhinews/internal/handlers"
	"bidhinews/internal/middleware"
	"bidhinews/internal/session"
)

// Login attempts allowed per IP per window before 429s start.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	// Public feed API — no auth.
	r.Get("/health", public.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/home", public.Home)
		r.Get("/categories", public.Categories)
		r.Get("/categories/{slug}", public.Category)
		r.Get("/search", public.Search)

		// Both article address forms live under /news: the canonical
		// categorySlug/postSlug pair and the legacy single id. The
		// trending rail hangs off the id form.
		r.Get("/news/{id}/trending", public.Trending)
		r.Get("/news/*", public.News)
	})

	// Admin API — session-authenticated JSON.
	r.Route("/admin", func(r chi.Router) {
		// Credential endpoints — rate limited, no session required.
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.With(loginLimiter.Middleware).Post("/api/2fa/setup", auth.TwoFASetup)
			r.With(loginLimiter.Middleware).Post("/api/2fa/verify", auth.TwoFAVerify)
			r.Get("/api/session", auth.Me)
		})

		// Authenticated + 2FA-verified editorial area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Route("/api/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Post("/", admin.PostCreate)
				r.Get("/{id}", admin.PostGet)
				r.Put("/{id}", admin.PostUpdate)
				r.Delete("/{id}", admin.PostDelete)

				// Publishing is the editor/admin boundary: drafts are
				// everyone's, going live is not.
				r.With(middleware.RequireAdmin).Post("/{id}/publish", admin.PostPublish)
			})

			r.Route("/api/categories", func(r chi.Router) {
				r.Get("/", public.Categories)
				r.Post("/", admin.CategoryCreate)
				r.Put("/reorder", admin.CategoriesReorder)
				r.Delete("/{slug}", admin.CategoryDelete)
			})

			r.Route("/api/media", func(r chi.Router) {
				r.Get("/", admin.MediaList)
				r.Post("/", admin.MediaUpload)
				r.Delete("/{id}", admin.MediaDelete)
			})

			r.Route("/api/ai", func(r chi.Router) {
				r.Post("/describe-image", admin.DescribeImage)
				r.Get("/providers", admin.AIProviders)
				r.With(middleware.RequireAdmin).Put("/provider", admin.AISetProvider)
			})
		})
	})

	return r
}
