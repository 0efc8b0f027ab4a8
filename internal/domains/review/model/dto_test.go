package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validRequest() SubmitReviewRequest {
	return SubmitReviewRequest{
		ProductID:  uuid.New(),
		Username:   "alex",
		Rating:     4,
		ReviewText: strPtr("Really helpful routines"),
	}
}

func assertValidationMessage(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)

	var reviewErr *ReviewError
	require.ErrorAs(t, err, &reviewErr)
	assert.Equal(t, ErrCodeValidation, reviewErr.Code)
	assert.Equal(t, message, reviewErr.Message)
}

func TestSubmitReviewRequest_Valid(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestSubmitReviewRequest_ValidWithImageOnly(t *testing.T) {
	req := validRequest()
	req.ReviewText = nil
	req.ImageURL = strPtr("/uploads/reviews/abc.jpg")

	assert.NoError(t, req.Validate())
}

func TestSubmitReviewRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitReviewRequest)
	}{
		{"no product id", func(r *SubmitReviewRequest) { r.ProductID = uuid.Nil }},
		{"no username", func(r *SubmitReviewRequest) { r.Username = "" }},
		{"no rating", func(r *SubmitReviewRequest) { r.Rating = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assertValidationMessage(t, req.Validate(), "missing required field")
		})
	}
}

func TestSubmitReviewRequest_RatingOutOfRange(t *testing.T) {
	for _, rating := range []int{-1, 6, 100} {
		req := validRequest()
		req.Rating = rating
		assertValidationMessage(t, req.Validate(), "rating out of range")
	}
}

func TestSubmitReviewRequest_UsernameLength(t *testing.T) {
	req := validRequest()
	req.Username = "a"
	assertValidationMessage(t, req.Validate(), "invalid submitter")

	req = validRequest()
	req.Username = strings.Repeat("x", 51)
	assertValidationMessage(t, req.Validate(), "invalid submitter")

	req = validRequest()
	req.Username = strings.Repeat("x", 50)
	assert.NoError(t, req.Validate())
}

func TestSubmitReviewRequest_NeedsTextOrImage(t *testing.T) {
	req := validRequest()
	req.ReviewText = nil
	req.ImageURL = nil
	assertValidationMessage(t, req.Validate(), "review must contain text or an image")

	// An empty string is not content either.
	req.ReviewText = strPtr("")
	req.ImageURL = strPtr("")
	assertValidationMessage(t, req.Validate(), "review must contain text or an image")
}

func TestSubmitReviewRequest_FirstViolationWins(t *testing.T) {
	// Rating range is checked before the submitter rules.
	req := validRequest()
	req.Rating = 9
	req.Username = "a"
	assertValidationMessage(t, req.Validate(), "rating out of range")

	// Submitter rules are checked before the content rule.
	req = validRequest()
	req.Username = "a"
	req.ReviewText = nil
	assertValidationMessage(t, req.Validate(), "invalid submitter")
}

func TestNewReviewResponse_EncodesTags(t *testing.T) {
	review := &Review{
		ID:         uuid.New(),
		ProductID:  uuid.New(),
		Username:   "alex",
		Rating:     5,
		ReviewText: strPtr("excellent and helpful"),
		Tags:       []string{"excellent", "helpful"},
		CreatedAt:  time.Now(),
	}

	resp := NewReviewResponse(review)

	require.NotNil(t, resp.Tags)

	var decoded []string
	require.NoError(t, json.Unmarshal([]byte(*resp.Tags), &decoded))
	assert.Equal(t, review.Tags, decoded)
}

func TestNewReviewResponse_NoTags(t *testing.T) {
	review := &Review{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Username:  "alex",
		Rating:    3,
		ImageURL:  strPtr("/uploads/reviews/abc.jpg"),
		CreatedAt: time.Now(),
	}

	resp := NewReviewResponse(review)

	assert.Nil(t, resp.Tags)
}

func TestReview_HasContent(t *testing.T) {
	review := &Review{Rating: 5}
	assert.False(t, review.HasContent())

	review.ReviewText = strPtr("solid")
	assert.True(t, review.HasContent())

	review.ReviewText = nil
	review.ImageURL = strPtr("/uploads/reviews/abc.jpg")
	assert.True(t, review.HasContent())
}
