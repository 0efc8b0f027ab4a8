package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// InitSchema creates the tables if they do not exist yet.
//
// The UNIQUE(product_id, username) constraint is the correctness mechanism
// for the one-review-per-user invariant: two concurrent inserts for the same
// pair cannot both succeed, regardless of application-level checks.
func (db *PostgresDB) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id          UUID PRIMARY KEY,
			title       TEXT NOT NULL,
			author      TEXT NOT NULL,
			description TEXT NOT NULL,
			image_url   TEXT NOT NULL,
			price       NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			category    TEXT NOT NULL DEFAULT 'fitness',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id          UUID PRIMARY KEY,
			product_id  UUID NOT NULL REFERENCES products (id),
			username    TEXT NOT NULL,
			rating      INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
			review_text TEXT,
			image_url   TEXT,
			tags        TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (product_id, username)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_product_created
			ON reviews (product_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}

	log.Info().Msg("Database schema initialized")
	return nil
}
