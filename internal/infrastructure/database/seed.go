package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type seedProduct struct {
	title       string
	author      string
	description string
	imageURL    string
	price       string
}

type seedReview struct {
	productIdx int // index into the seed product list
	username   string
	rating     int
	reviewText string
	tags       string // JSON-encoded array, stored as-is
}

var sampleProducts = []seedProduct{
	{
		title:       "Atomic Habits for Fitness",
		author:      "James Clear",
		description: "Transform your fitness journey with the power of small, consistent habits. Learn how to build lasting exercise routines and nutrition habits that stick.",
		imageURL:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=600&fit=crop",
		price:       "24.99",
	},
	{
		title:       "The Complete Guide to Strength Training",
		author:      "Mike Matthews",
		description: "Master the fundamentals of strength training with this comprehensive guide covering proper form, progressive overload, and program design.",
		imageURL:    "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=600&fit=crop",
		price:       "29.99",
	},
	{
		title:       "Nutrition Timing for Athletes",
		author:      "Dr. Sarah Johnson",
		description: "Optimize your performance with strategic nutrition timing. Learn when and what to eat to fuel your workouts and recovery.",
		imageURL:    "https://images.unsplash.com/photo-1490645935967-10de6ba17061?w=400&h=600&fit=crop",
		price:       "22.50",
	},
	{
		title:       "Mindful Movement: Yoga for Fitness",
		author:      "Emma Rodriguez",
		description: "Discover the fitness benefits of yoga with mindful movement practices that improve flexibility, strength, and mental clarity.",
		imageURL:    "https://images.unsplash.com/photo-1506126613408-eca07ce68773?w=400&h=600&fit=crop",
		price:       "19.99",
	},
	{
		title:       "HIIT Training Revolution",
		author:      "Coach Marcus Williams",
		description: "Revolutionize your fitness with high-intensity interval training. 50+ workouts for maximum results in minimum time.",
		imageURL:    "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=600&fit=crop",
		price:       "26.99",
	},
	{
		title:       "The Science of Recovery",
		author:      "Dr. Lisa Chen",
		description: "Understand the science behind muscle recovery, sleep optimization, and injury prevention for peak athletic performance.",
		imageURL:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=600&fit=crop",
		price:       "31.50",
	},
}

var sampleReviews = []seedReview{
	{
		productIdx: 0,
		username:   "FitnessGuru",
		rating:     5,
		reviewText: "This book is excellent and very helpful for beginners. Great practical advice!",
		tags:       `["excellent","helpful","practical","great"]`,
	},
	{
		productIdx: 1,
		username:   "StrengthTrainer",
		rating:     4,
		reviewText: "Informative guide with effective workouts. Very motivational content.",
		tags:       `["informative","effective","motivation"]`,
	},
	{
		productIdx: 2,
		username:   "HealthyEater",
		rating:     5,
		reviewText: "Amazing nutrition advice. Excellent for understanding timing.",
		tags:       `["amazing","excellent","nutrition"]`,
	},
	{
		productIdx: 0,
		username:   "BeginnerLifter",
		rating:     4,
		reviewText: "Great book for beginners. Very easy to understand and helpful.",
		tags:       `["great","helpful","easy","beginner"]`,
	},
}

// Seed inserts the sample catalog and reviews when the tables are empty.
// Safe to run on every startup.
func (db *PostgresDB) Seed(ctx context.Context) error {
	var productCount int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&productCount); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	productIDs := make([]uuid.UUID, len(sampleProducts))
	if productCount == 0 {
		for i, p := range sampleProducts {
			productIDs[i] = uuid.New()
			_, err := db.Pool.Exec(ctx, `
				INSERT INTO products (id, title, author, description, image_url, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				productIDs[i], p.title, p.author, p.description, p.imageURL, p.price,
			)
			if err != nil {
				return fmt.Errorf("failed to seed product %q: %w", p.title, err)
			}
		}
		log.Info().Int("count", len(sampleProducts)).Msg("Sample products inserted")
	} else {
		// Reviews reference products by position, so resolve the existing ids.
		rows, err := db.Pool.Query(ctx, `SELECT id FROM products ORDER BY created_at ASC, id ASC`)
		if err != nil {
			return fmt.Errorf("failed to list products for seeding: %w", err)
		}
		defer rows.Close()

		var ids []uuid.UUID
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("failed to scan product id: %w", err)
			}
			ids = append(ids, id)
		}
		if len(ids) < len(sampleProducts) {
			return nil // partial catalog, leave it alone
		}
		copy(productIDs, ids)
	}

	var reviewCount int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&reviewCount); err != nil {
		return fmt.Errorf("failed to count reviews: %w", err)
	}
	if reviewCount > 0 {
		return nil
	}

	for _, r := range sampleReviews {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO reviews (id, product_id, username, rating, review_text, tags)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (product_id, username) DO NOTHING`,
			uuid.New(), productIDs[r.productIdx], r.username, r.rating, r.reviewText, r.tags,
		)
		if err != nil {
			return fmt.Errorf("failed to seed review by %q: %w", r.username, err)
		}
	}

	log.Info().Int("count", len(sampleReviews)).Msg("Sample reviews inserted")
	return nil
}
