package service

import (
	"context"

	"github.com/google/uuid"

	"fitbooks-backend/internal/domains/product/model"
)

// ServiceInterface exposes the catalog to the HTTP layer.
type ServiceInterface interface {
	// ListProducts returns the catalog with per-product aggregates,
	// newest first.
	ListProducts(ctx context.Context) ([]*model.ProductWithStats, error)

	// GetProduct returns one product with aggregates.
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductWithStats, error)

	// ImportProducts inserts a batch of new catalog entries.
	ImportProducts(ctx context.Context, products []*model.Product) (int, error)
}
