package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is one submitter's rating (plus optional text/image/tags) for one
// product. At most one review may exist per (product, username) pair; the
// database enforces this with a unique constraint, so a concurrent duplicate
// insert fails deterministically. Reviews are never updated or deleted.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Username  string    `json:"username"`

	Rating     int      `json:"rating"` // 1-5
	ReviewText *string  `json:"review_text"`
	ImageURL   *string  `json:"image_url"` // relative /uploads/... path
	Tags       []string `json:"tags"`      // extracted keywords, max 5

	CreatedAt time.Time `json:"created_at"`
}

// HasContent reports whether the review carries at least one of
// text or image. A bare rating is not complete content.
func (r *Review) HasContent() bool {
	return (r.ReviewText != nil && *r.ReviewText != "") ||
		(r.ImageURL != nil && *r.ImageURL != "")
}
