package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitbooks-backend/internal/domains/review/model"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

// encodeTags serializes the tag set into the TEXT column, NULL when empty.
func encodeTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	encoded := string(data)
	return &encoded, nil
}

// decodeTags reads the TEXT column back. A malformed value reads as no tags
// rather than an error.
func decodeTags(raw *string) []string {
	if raw == nil || *raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(*raw), &tags); err != nil {
		return nil
	}
	return tags
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	tags, err := encodeTags(review.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reviews (id, product_id, username, rating, review_text, image_url, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.Username,
		review.Rating,
		review.ReviewText,
		review.ImageURL,
		tags,
		review.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// =====================================================
// GET BY PRODUCT AND USERNAME
// =====================================================

func (r *postgresReviewRepository) GetByProductAndUsername(
	ctx context.Context,
	productID uuid.UUID,
	username string,
) (*model.Review, error) {
	query := `
		SELECT id, product_id, username, rating, review_text, image_url, tags, created_at
		FROM reviews
		WHERE product_id = $1 AND username = $2
	`

	review := &model.Review{}
	var tags *string

	err := r.pool.QueryRow(ctx, query, productID, username).Scan(
		&review.ID,
		&review.ProductID,
		&review.Username,
		&review.Rating,
		&review.ReviewText,
		&review.ImageURL,
		&tags,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	review.Tags = decodeTags(tags)
	return review, nil
}

// =====================================================
// LIST BY PRODUCT
// =====================================================

func (r *postgresReviewRepository) ListByProduct(
	ctx context.Context,
	productID uuid.UUID,
) ([]*model.Review, error) {
	query := `
		SELECT id, product_id, username, rating, review_text, image_url, tags, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review := &model.Review{}
		var tags *string

		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.Username,
			&review.Rating,
			&review.ReviewText,
			&review.ImageURL,
			&tags,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		review.Tags = decodeTags(tags)
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// =====================================================
// LIST TAGS
// =====================================================

func (r *postgresReviewRepository) ListTags(ctx context.Context) ([][]string, error) {
	query := `SELECT tags FROM reviews WHERE tags IS NOT NULL`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tagSets [][]string
	for rows.Next() {
		var raw *string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		if tags := decodeTags(raw); len(tags) > 0 {
			tagSets = append(tagSets, tags)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tagSets, nil
}
