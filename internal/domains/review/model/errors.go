package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidation      = "REV001"
	ErrCodeAlreadyReviewed = "REV002"
	ErrCodeReviewNotFound  = "REV003"
	ErrCodeStorage         = "REV004"
)

// Errors
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("already reviewed this product")
)

// ReviewError custom error type
type ReviewError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewValidationError(message string) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewAlreadyReviewedError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeAlreadyReviewed,
		Message: "You have already reviewed this product",
		Err:     ErrAlreadyReviewed,
	}
}

func NewStorageError(err error) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeStorage,
		Message: "Review storage failed",
		Err:     err,
	}
}
