package repository

import (
	"context"

	"github.com/google/uuid"

	"fitbooks-backend/internal/domains/product/model"
)

// ProductRepository is the catalog's data access contract.
type ProductRepository interface {
	// Create inserts a single product. Used by seeding and the importer.
	Create(ctx context.Context, product *model.Product) error

	// CreateBatch inserts several products in one transaction.
	CreateBatch(ctx context.Context, products []*model.Product) error

	// Exists reports whether a product id references a catalog entry.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListWithStats returns every product with its average rating and
	// review count, newest first (ties broken on id).
	ListWithStats(ctx context.Context) ([]*model.ProductWithStats, error)

	// GetWithStats returns one product with its aggregates.
	// Returns model.ErrProductNotFound when the id is unknown.
	GetWithStats(ctx context.Context, id uuid.UUID) (*model.ProductWithStats, error)
}
