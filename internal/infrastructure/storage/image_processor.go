package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ImageProcessor validates and normalizes uploaded review images.
type ImageProcessor struct {
	MaxSize      int64 // bytes
	MaxDimension int   // longest edge after downscale
}

func NewImageProcessor(maxSize int64, maxDimension int) *ImageProcessor {
	return &ImageProcessor{MaxSize: maxSize, MaxDimension: maxDimension}
}

// Validate checks size and format (jpeg/png/gif).
func (p *ImageProcessor) Validate(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "gif":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png/gif)", format)
	}
}

// Process downscales to the configured longest edge and re-encodes as JPEG.
func (p *ImageProcessor) Process(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, p.MaxDimension, p.MaxDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode image: %w", err)
	}
	return buf.Bytes(), nil
}
