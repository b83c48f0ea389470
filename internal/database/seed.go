package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"bidhinews/internal/slug"
)

// starterCategories are created on first boot so the home page has
// sections to render before an admin customizes the list. Slugs follow
// the standard generation rule applied to the Nepali section names'
// transliterations used across the site.
var starterCategories = []string{
	"Politics",
	"Economy",
	"Sports",
	"Entertainment",
	"World",
}

// Seed populates the database with initial development data.
// It creates a default admin user if none exists. The admin will be
// prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@bidhinews.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedCategories(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@bidhinews.local",
		"password", "admin",
	)

	return nil
}

func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, name := range starterCategories {
		if _, err := db.Exec(`
			INSERT INTO categories (slug, name, sort_order)
			VALUES ($1, $2, $3)
		`, slug.Generate(name), name, i); err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
	}
	return nil
}
