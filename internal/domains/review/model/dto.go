package model

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// SubmitReviewRequest is the workflow input for a new review.
// The image, if any, has already been accepted and stored by the upload
// plumbing; the workflow only sees the opaque /uploads/... reference.
type SubmitReviewRequest struct {
	ProductID  uuid.UUID
	Username   string
	Rating     int
	ReviewText *string
	ImageURL   *string
}

// Validate applies the submission rules fail-fast: the first violation wins.
func (r SubmitReviewRequest) Validate() error {
	if r.ProductID == uuid.Nil || r.Username == "" || r.Rating == 0 {
		return NewValidationError("missing required field")
	}

	if err := validation.Validate(r.Rating,
		validation.Min(MinRating),
		validation.Max(MaxRating),
	); err != nil {
		return NewValidationError("rating out of range")
	}

	if err := validation.Validate(r.Username,
		validation.Length(MinUsernameLength, MaxUsernameLength),
	); err != nil {
		return NewValidationError("invalid submitter")
	}

	hasText := r.ReviewText != nil && *r.ReviewText != ""
	hasImage := r.ImageURL != nil && *r.ImageURL != ""
	if !hasText && !hasImage {
		return NewValidationError("review must contain text or an image")
	}

	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ReviewResponse is the transport shape of a review. Tags travel as a
// JSON-encoded array of strings inside a text field; consumers must treat a
// missing or malformed value as "no tags".
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Username  string    `json:"username"`

	Rating     int     `json:"rating"`
	ReviewText *string `json:"review_text"`
	ImageURL   *string `json:"image_url"`
	Tags       *string `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
}

// NewReviewResponse serializes the tag set for transport.
func NewReviewResponse(review *Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:         review.ID,
		ProductID:  review.ProductID,
		Username:   review.Username,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		ImageURL:   review.ImageURL,
		CreatedAt:  review.CreatedAt,
	}

	if len(review.Tags) > 0 {
		if data, err := json.Marshal(review.Tags); err == nil {
			encoded := string(data)
			resp.Tags = &encoded
		}
	}

	return resp
}

// CanReviewResponse answers the can-review check.
type CanReviewResponse struct {
	CanReview bool `json:"can_review"`
}

// TagCount is one entry of the popular-tags ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
