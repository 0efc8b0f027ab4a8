package service

import (
	"context"

	"github.com/google/uuid"

	"fitbooks-backend/internal/domains/review/model"
)

// ServiceInterface is the review workflow contract.
type ServiceInterface interface {
	// SubmitReview validates, checks for a duplicate, extracts tags and
	// persists a new review. Synchronous: on return the review is either
	// durably stored or the error tells the caller why not.
	SubmitReview(ctx context.Context, req model.SubmitReviewRequest) (*model.ReviewResponse, error)

	// CanReview reports whether the submitter has not yet reviewed the product.
	CanReview(ctx context.Context, productID uuid.UUID, username string) (bool, error)

	// ListByProduct returns a product's reviews, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*model.ReviewResponse, error)

	// PopularTags ranks tags across all reviews by mention count.
	PopularTags(ctx context.Context, limit int) ([]model.TagCount, error)
}
