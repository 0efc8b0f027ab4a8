package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	productModel "fitbooks-backend/internal/domains/product/model"
	productRepo "fitbooks-backend/internal/domains/product/repository"
	"fitbooks-backend/internal/domains/review/model"
	"fitbooks-backend/internal/domains/review/repository"
	"fitbooks-backend/internal/domains/review/tagging"
	"fitbooks-backend/pkg/cache"
)

const (
	popularTagsCacheKey = "tags:popular"
	popularTagsCacheTTL = 60 * time.Second
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo productRepo.ProductRepository
	extractor   *tagging.Extractor
	cache       cache.Cache // optional; nil disables caching
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo productRepo.ProductRepository,
	extractor *tagging.Extractor,
	cacheLayer cache.Cache,
) ServiceInterface {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		extractor:   extractor,
		cache:       cacheLayer,
	}
}

// =====================================================
// SUBMIT REVIEW
// =====================================================

func (s *reviewService) SubmitReview(
	ctx context.Context,
	req model.SubmitReviewRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate input (fail-fast, first violation wins)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: The product must exist
	exists, err := s.productRepo.Exists(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return nil, productModel.ErrProductNotFound
	}

	// Step 3: Duplicate fast path. This check only produces a friendlier
	// error before attempting the write; the store's unique constraint is
	// what actually closes the race.
	_, err = s.reviewRepo.GetByProductAndUsername(ctx, req.ProductID, req.Username)
	if err == nil {
		return nil, model.NewAlreadyReviewedError()
	}
	if !errors.Is(err, model.ErrReviewNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	// Step 4: Extract tags (absent text -> no tags, never an error)
	var tags []string
	if req.ReviewText != nil {
		tags = s.extractor.Extract(*req.ReviewText)
	}

	// Step 5: Persist
	review := &model.Review{
		ID:         uuid.New(),
		ProductID:  req.ProductID,
		Username:   req.Username,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		ImageURL:   req.ImageURL,
		Tags:       tags,
		CreatedAt:  time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, model.ErrAlreadyReviewed) {
			// Lost the race window between check and insert.
			return nil, model.NewAlreadyReviewedError()
		}
		return nil, model.NewStorageError(err)
	}

	// A new review changes the tag ranking.
	s.invalidatePopularTags(ctx)

	return model.NewReviewResponse(review), nil
}

// =====================================================
// CAN REVIEW
// =====================================================

func (s *reviewService) CanReview(
	ctx context.Context,
	productID uuid.UUID,
	username string,
) (bool, error) {
	_, err := s.reviewRepo.GetByProductAndUsername(ctx, productID, username)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, model.ErrReviewNotFound) {
		return true, nil
	}
	return false, fmt.Errorf("failed to check review permission: %w", err)
}

// =====================================================
// LIST BY PRODUCT
// =====================================================

func (s *reviewService) ListByProduct(
	ctx context.Context,
	productID uuid.UUID,
) ([]*model.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	responses := make([]*model.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, model.NewReviewResponse(review))
	}
	return responses, nil
}

// =====================================================
// POPULAR TAGS
// =====================================================

func (s *reviewService) PopularTags(ctx context.Context, limit int) ([]model.TagCount, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.cache != nil {
		var cached []model.TagCount
		found, err := s.cache.Get(ctx, popularTagsCacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("Popular tags cache read failed")
		} else if found {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	tagSets, err := s.reviewRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute popular tags: %w", err)
	}

	counts := make(map[string]int)
	for _, tags := range tagSets {
		for _, tag := range tags {
			counts[tag]++
		}
	}

	ranking := make([]model.TagCount, 0, len(counts))
	for tag, count := range counts {
		ranking = append(ranking, model.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Tag < ranking[j].Tag
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, popularTagsCacheKey, ranking, popularTagsCacheTTL); err != nil {
			log.Warn().Err(err).Msg("Popular tags cache write failed")
		}
	}

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

func (s *reviewService) invalidatePopularTags(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, popularTagsCacheKey); err != nil {
		log.Warn().Err(err).Msg("Popular tags cache invalidation failed")
	}
}
