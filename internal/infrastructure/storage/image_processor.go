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

// ImageProcessor validates uploaded cover images and builds resized
// variants for the worker.
type ImageProcessor struct {
	MaxSize int64 // bytes
	Width   int   // exact required dimensions
	Height  int
}

func NewImageProcessor(maxSize int64, width, height int) *ImageProcessor {
	return &ImageProcessor{MaxSize: maxSize, Width: width, Height: height}
}

// ValidateImage checks size, format (JPEG/PNG only) and exact pixel
// dimensions before anything touches the network.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}

	switch format {
	case "jpeg", "png":
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}

	if cfg.Width != p.Width || cfg.Height != p.Height {
		return fmt.Errorf("image must be exactly %dx%d pixels, got %dx%d",
			p.Width, p.Height, cfg.Width, cfg.Height)
	}

	return nil
}

// Variants resizes the cover into the named sizes, encoded as JPEG
// quality 90.
func (p *ImageProcessor) Variants(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	vs := map[string]int{"medium": 600, "thumbnail": 300}
	variants := map[string][]byte{}
	for name, size := range vs {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		variants[name] = b.Bytes()
	}
	return variants, nil
}
