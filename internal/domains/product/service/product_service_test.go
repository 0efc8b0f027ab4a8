package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fitbooks-backend/internal/domains/product/model"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) CreateBatch(ctx context.Context, products []*model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *mockProductRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) ListWithStats(ctx context.Context) ([]*model.ProductWithStats, error) {
	args := m.Called(ctx)
	if products := args.Get(0); products != nil {
		return products.([]*model.ProductWithStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) GetWithStats(ctx context.Context, id uuid.UUID) (*model.ProductWithStats, error) {
	args := m.Called(ctx, id)
	if product := args.Get(0); product != nil {
		return product.(*model.ProductWithStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListProducts_ReturnsCatalogWithStats(t *testing.T) {
	stats := []*model.ProductWithStats{
		{
			Product: model.Product{
				ID:    uuid.New(),
				Title: "The Fitness Mindset",
				Price: decimal.NewFromFloat(19.99),
			},
			AverageRating: 4.5,
			ReviewCount:   2,
		},
	}

	repo := new(mockProductRepo)
	repo.On("ListWithStats", mock.Anything).Return(stats, nil)

	svc := NewProductService(repo)

	products, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 4.5, products[0].AverageRating)
	assert.Equal(t, 2, products[0].ReviewCount)
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("ListWithStats", mock.Anything).Return(nil, nil)

	svc := NewProductService(repo)

	products, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGetProduct_NotFound(t *testing.T) {
	id := uuid.New()
	repo := new(mockProductRepo)
	repo.On("GetWithStats", mock.Anything, id).Return(nil, model.ErrProductNotFound)

	svc := NewProductService(repo)

	_, err := svc.GetProduct(context.Background(), id)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestImportProducts_AssignsDefaults(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	svc := NewProductService(repo)

	products := []*model.Product{
		{
			Title:  "Bigger Leaner Stronger",
			Author: "Michael Matthews",
			Price:  decimal.NewFromFloat(24.99),
		},
	}

	count, err := svc.ImportProducts(context.Background(), products)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotEqual(t, uuid.Nil, products[0].ID)
	assert.Equal(t, model.DefaultCategory, products[0].Category)
	assert.False(t, products[0].CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), products[0].CreatedAt, time.Minute)
}

func TestImportProducts_RejectsInvalidEntries(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewProductService(repo)

	_, err := svc.ImportProducts(context.Background(), []*model.Product{
		{Title: "", Author: "Someone", Price: decimal.NewFromInt(10)},
	})
	assert.Error(t, err)

	_, err = svc.ImportProducts(context.Background(), []*model.Product{
		{Title: "Negative", Author: "Someone", Price: decimal.NewFromInt(-1)},
	})
	assert.Error(t, err)

	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}
