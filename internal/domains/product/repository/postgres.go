package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitbooks-backend/internal/domains/product/model"
)

type postgresProductRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &postgresProductRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresProductRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, title, author, description, image_url, price, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Author,
		product.Description,
		product.ImageURL,
		product.Price,
		product.Category,
		product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *postgresProductRepository) CreateBatch(ctx context.Context, products []*model.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (id, title, author, description, image_url, price, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, p := range products {
		if _, err := tx.Exec(ctx, query,
			p.ID, p.Title, p.Author, p.Description, p.ImageURL, p.Price, p.Category, p.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	return nil
}

// =====================================================
// EXISTS
// =====================================================

func (r *postgresProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// =====================================================
// LIST WITH STATS
// =====================================================

// Aggregates are recomputed from the review set on every call.
func (r *postgresProductRepository) ListWithStats(ctx context.Context) ([]*model.ProductWithStats, error) {
	query := `
		SELECT
			p.id, p.title, p.author, p.description, p.image_url, p.price, p.category, p.created_at,
			COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
			COUNT(r.id) AS review_count
		FROM products p
		LEFT JOIN reviews r ON p.id = r.product_id
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*model.ProductWithStats
	for rows.Next() {
		p := &model.ProductWithStats{}
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Author,
			&p.Description,
			&p.ImageURL,
			&p.Price,
			&p.Category,
			&p.CreatedAt,
			&p.AverageRating,
			&p.ReviewCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// =====================================================
// GET WITH STATS
// =====================================================

func (r *postgresProductRepository) GetWithStats(ctx context.Context, id uuid.UUID) (*model.ProductWithStats, error) {
	query := `
		SELECT
			p.id, p.title, p.author, p.description, p.image_url, p.price, p.category, p.created_at,
			COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
			COUNT(r.id) AS review_count
		FROM products p
		LEFT JOIN reviews r ON p.id = r.product_id
		WHERE p.id = $1
		GROUP BY p.id
	`

	p := &model.ProductWithStats{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Author,
		&p.Description,
		&p.ImageURL,
		&p.Price,
		&p.Category,
		&p.CreatedAt,
		&p.AverageRating,
		&p.ReviewCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}
