package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fitbooks-backend/internal/domains/product/model"
	"fitbooks-backend/internal/domains/product/repository"
)

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ServiceInterface {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(ctx context.Context) ([]*model.ProductWithStats, error) {
	products, err := s.productRepo.ListWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []*model.ProductWithStats{}
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductWithStats, error) {
	product, err := s.productRepo.GetWithStats(ctx, id)
	if err != nil {
		if err == model.ErrProductNotFound {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ImportProducts assigns identifiers and defaults before handing the batch to
// the store. Returns the number of products inserted.
func (s *productService) ImportProducts(ctx context.Context, products []*model.Product) (int, error) {
	now := time.Now()
	for _, p := range products {
		if p.Title == "" || p.Author == "" {
			return 0, fmt.Errorf("product %q: title and author are required", p.Title)
		}
		if p.Price.LessThan(decimal.Zero) {
			return 0, fmt.Errorf("product %q: price must not be negative", p.Title)
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Category == "" {
			p.Category = model.DefaultCategory
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
	}

	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to import products: %w", err)
	}

	return len(products), nil
}
