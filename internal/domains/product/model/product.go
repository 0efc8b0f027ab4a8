package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategory is applied when a product is created without one.
const DefaultCategory = "fitness"

// Product represents a catalog entry (a fitness book).
// Products are created at seed/import time and never mutated afterwards.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductWithStats is a product plus its review aggregates.
// The aggregates are derived from the live review set on every read;
// nothing is denormalized.
type ProductWithStats struct {
	Product
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}
