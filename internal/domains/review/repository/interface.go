package repository

import (
	"context"

	"github.com/google/uuid"

	"fitbooks-backend/internal/domains/review/model"
)

// ReviewRepository is the append-only review store.
type ReviewRepository interface {
	// Create inserts a review. The store's unique constraint over
	// (product_id, username) closes the duplicate race at insert time;
	// a violation surfaces as model.ErrAlreadyReviewed.
	Create(ctx context.Context, review *model.Review) error

	// GetByProductAndUsername finds the review for one (product, submitter)
	// pair. Returns model.ErrReviewNotFound when absent.
	GetByProductAndUsername(ctx context.Context, productID uuid.UUID, username string) (*model.Review, error)

	// ListByProduct lists a product's reviews, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*model.Review, error)

	// ListTags returns the tag sets of all reviews that carry tags.
	ListTags(ctx context.Context) ([][]string, error)
}
