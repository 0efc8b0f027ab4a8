package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UploadPathPrefix is the public route prefix for stored images. References
// handed to the review workflow are relative paths under this prefix.
const UploadPathPrefix = "/uploads/"

// ImageService is the upload plumbing for review images: validate, normalize
// and store, then hand back an opaque relative reference. The review workflow
// never touches image bytes.
type ImageService struct {
	storage   *MinIOStorage
	processor *ImageProcessor
}

func NewImageService(storage *MinIOStorage, processor *ImageProcessor) *ImageService {
	return &ImageService{storage: storage, processor: processor}
}

// SaveReviewImage validates and downscales an uploaded image, stores it under
// reviews/<uuid>.jpg and returns the /uploads/... reference for the review.
func (s *ImageService) SaveReviewImage(ctx context.Context, data []byte) (string, error) {
	if err := s.processor.Validate(data); err != nil {
		return "", err
	}

	processed, err := s.processor.Process(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("reviews/%s.jpg", uuid.New())
	if err := s.storage.Upload(ctx, key, processed, "image/jpeg"); err != nil {
		return "", err
	}

	return UploadPathPrefix + key, nil
}

// Open resolves an /uploads/... reference (or bare key) back to the object.
func (s *ImageService) Open(ctx context.Context, ref string) ([]byte, string, error) {
	key := strings.TrimPrefix(ref, UploadPathPrefix)
	return s.storage.Download(ctx, key)
}
