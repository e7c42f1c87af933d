package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ImageContentTypes lists the upload content types accepted for listing images.
var ImageContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

// ImageProcessor handles image decoding and resizing.
type ImageProcessor struct {
	quality int
}

// NewImageProcessor creates a new ImageProcessor encoding JPEGs at the given quality.
func NewImageProcessor(quality int) *ImageProcessor {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &ImageProcessor{quality: quality}
}

// Validate checks that content decodes as one of the registered image formats
// and returns the format name.
func (p *ImageProcessor) Validate(content io.Reader) (string, error) {
	_, format, err := image.DecodeConfig(content)
	if err != nil {
		return "", fmt.Errorf("failed to decode image header: %w", err)
	}
	return format, nil
}

// GenerateThumbnail fits the source image into maxWidth x maxHeight and
// returns it as JPEG.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumbnail, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf, nil
}
