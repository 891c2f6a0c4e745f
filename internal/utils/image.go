package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// ThumbnailSizeLimit is the largest thumbnail the platform accepts, in bytes
const ThumbnailSizeLimit = 2097152

// ErrImageTooLarge is returned when an image cannot be brought under the limit
var ErrImageTooLarge = errors.New("image still exceeds size limit")

var (
	jpegQualities = []int{90, 80, 70, 60, 50, 40}
	scaleSteps    = 5
)

// RecompressImage re-encodes an image until it fits in limit bytes.
// It tries a lossless PNG pass first, then JPEG at decreasing quality,
// then downscales by a quarter per step.
func RecompressImage(data []byte, limit int) ([]byte, error) {
	if len(data) <= limit {
		return data, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	LogVerbose("Recompressing %s image of %d bytes (limit %d)", format, len(data), limit)

	if format == "png" {
		var buf bytes.Buffer
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
		if buf.Len() <= limit {
			return buf.Bytes(), nil
		}
	}

	for step := 0; step <= scaleSteps; step++ {
		for _, quality := range jpegQualities {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
				return nil, fmt.Errorf("failed to encode jpeg: %w", err)
			}
			LogDebug("jpeg quality %d at %dx%d: %d bytes", quality, img.Bounds().Dx(), img.Bounds().Dy(), buf.Len())
			if buf.Len() <= limit {
				return buf.Bytes(), nil
			}
		}
		img = downscale(img, 3, 4)
	}

	return nil, ErrImageTooLarge
}

func downscale(src image.Image, num, den int) image.Image {
	b := src.Bounds()
	w := max(b.Dx()*num/den, 1)
	h := max(b.Dy()*num/den, 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
