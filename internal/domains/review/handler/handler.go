package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	productModel "fitbooks-backend/internal/domains/product/model"
	"fitbooks-backend/internal/domains/review/model"
	"fitbooks-backend/internal/domains/review/service"
	"fitbooks-backend/internal/infrastructure/storage"
	"fitbooks-backend/internal/shared/response"
)

// ReviewHandler exposes the review workflow over HTTP.
type ReviewHandler struct {
	reviewService service.ServiceInterface
	imageService  *storage.ImageService // nil when object storage is unavailable
	maxImageSize  int64
}

func NewReviewHandler(
	reviewService service.ServiceInterface,
	imageService *storage.ImageService,
	maxImageSize int64,
) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		imageService:  imageService,
		maxImageSize:  maxImageSize,
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

// CreateReview submits a new review.
// POST /api/v1/reviews (multipart form: product_id, username, rating,
// review_text?, image?)
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	// Step 1: Required form fields
	productIDStr := c.PostForm("product_id")
	username := c.PostForm("username")
	ratingStr := c.PostForm("rating")
	if productIDStr == "" || username == "" || ratingStr == "" {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, "missing required field")
		return
	}

	// Step 2: Rating must parse and sit in range. Checked here as well as in
	// the workflow because the workflow reads a zero rating as absent.
	rating, err := strconv.Atoi(ratingStr)
	if err != nil || rating < model.MinRating || rating > model.MaxRating {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, "rating out of range")
		return
	}

	productID, err := uuid.Parse(productIDStr)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, "invalid product id")
		return
	}

	var reviewText *string
	if text := c.PostForm("review_text"); text != "" {
		reviewText = &text
	}

	// Step 3: Accept the image, if any, before entering the workflow.
	// The workflow only ever sees the opaque /uploads/... reference.
	imageURL, ok := h.acceptImage(c)
	if !ok {
		return
	}

	// Step 4: Run the workflow
	req := model.SubmitReviewRequest{
		ProductID:  productID,
		Username:   username,
		Rating:     rating,
		ReviewText: reviewText,
		ImageURL:   imageURL,
	}

	resp, err := h.reviewService.SubmitReview(c.Request.Context(), req)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// acceptImage reads and stores an uploaded image. Returns (nil, true) when no
// image was sent; on failure it writes the error response and returns false.
func (h *ReviewHandler) acceptImage(c *gin.Context) (*string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, true // no image attached
	}

	if h.imageService == nil {
		response.ErrorResponse(c, http.StatusInternalServerError, model.ErrCodeStorage, "image storage unavailable")
		return nil, false
	}

	if fileHeader.Size > h.maxImageSize {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, "image too large")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, "cannot read image")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxImageSize+1))
	if err != nil || int64(len(data)) > h.maxImageSize {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, "image too large")
		return nil, false
	}

	ref, err := h.imageService.SaveReviewImage(c.Request.Context(), data)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, err.Error())
		return nil, false
	}

	return &ref, true
}

// =====================================================
// LIST BY PRODUCT
// =====================================================

// ListByProduct lists a product's reviews, newest first.
// GET /api/v1/reviews/product/:productId
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

// =====================================================
// CAN REVIEW
// =====================================================

// CanReview reports whether the submitter may still review the product.
// GET /api/v1/reviews/can-review/:productId/:username
func (h *ReviewHandler) CanReview(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}
	username := c.Param("username")

	canReview, err := h.reviewService.CanReview(c.Request.Context(), productID, username)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.CanReviewResponse{CanReview: canReview})
}

// =====================================================
// POPULAR TAGS
// =====================================================

// PopularTags ranks tags across all reviews.
// GET /api/v1/tags/popular
func (h *ReviewHandler) PopularTags(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	tags, err := h.reviewService.PopularTags(c.Request.Context(), limit)
	if err != nil {
		mapReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// =====================================================
// ERROR MAPPING
// =====================================================

// mapReviewError translates workflow errors into the transport taxonomy:
// validation -> 400, duplicate -> 409, unknown product -> 404, storage -> 500.
func mapReviewError(c *gin.Context, err error) {
	if errors.Is(err, productModel.ErrProductNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, productModel.ErrCodeProductNotFound, "Product not found")
		return
	}

	var reviewErr *model.ReviewError
	if errors.As(err, &reviewErr) {
		switch reviewErr.Code {
		case model.ErrCodeValidation:
			response.ErrorResponse(c, http.StatusBadRequest, reviewErr.Code, reviewErr.Message)
		case model.ErrCodeAlreadyReviewed:
			response.ErrorResponse(c, http.StatusConflict, reviewErr.Code, reviewErr.Message)
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, reviewErr.Code, reviewErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Failed to process review request")
}
