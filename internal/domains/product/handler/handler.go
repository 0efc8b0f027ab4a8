package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitbooks-backend/internal/domains/product/model"
	"fitbooks-backend/internal/domains/product/service"
	reviewModel "fitbooks-backend/internal/domains/review/model"
	reviewService "fitbooks-backend/internal/domains/review/service"
	"fitbooks-backend/internal/shared/response"
)

// ProductHandler serves the catalog read endpoints.
type ProductHandler struct {
	productService service.ServiceInterface
	reviewService  reviewService.ServiceInterface
}

func NewProductHandler(
	productService service.ServiceInterface,
	reviewService reviewService.ServiceInterface,
) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
	}
}

// productDetail is a catalog entry with its aggregates and full review list.
type productDetail struct {
	*model.ProductWithStats
	Reviews []*reviewModel.ReviewResponse `json:"reviews"`
}

// =====================================================
// LIST PRODUCTS
// =====================================================

// ListProducts returns the full catalog with per-product aggregates.
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list products")
		return
	}

	response.Success(c, http.StatusOK, products)
}

// =====================================================
// GET PRODUCT
// =====================================================

// GetProduct returns one product with aggregates and its reviews.
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// A malformed id can never name a product.
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "Product not found")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "Product not found")
			return
		}
		response.InternalServerError(c, "Failed to get product")
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, "Failed to get product reviews")
		return
	}

	response.Success(c, http.StatusOK, productDetail{
		ProductWithStats: product,
		Reviews:          reviews,
	})
}
