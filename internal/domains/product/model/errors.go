package model

import "errors"

// Error codes
const (
	ErrCodeProductNotFound = "PRD001"
)

var (
	ErrProductNotFound = errors.New("product not found")
)
