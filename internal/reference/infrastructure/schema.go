package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EnsureSchema creates the reference tables for local development and tests.
// In production the hosted database owns them.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT,
            color TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tags (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating reference tables: %w", err)
		}
	}
	return nil
}

// InsertCategory adds a category with a generated id and returns the id.
func InsertCategory(ctx context.Context, db *sql.DB, name, description, color string) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, `
        INSERT INTO categories (id, name, description, color, created_at)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
    `, id, name, description, color, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting category %q: %w", name, err)
	}
	return id, nil
}

// InsertTag adds a tag with a generated id and returns the id.
func InsertTag(ctx context.Context, db *sql.DB, name string) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, `INSERT INTO tags (id, name, created_at) VALUES ($1, $2, $3)`, id, name, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting tag %q: %w", name, err)
	}
	return id, nil
}
