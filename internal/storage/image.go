package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
)

const (
	MaxImageBytes = 5 << 20
	webpQuality   = 80
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImage checks size and sniffed content type.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return httperr.ErrBadRequest("image_required", "Image file is required")
	}
	if len(data) > MaxImageBytes {
		return httperr.ErrBadRequest("image_too_large", "Image must be at most 5 MB")
	}
	if !allowedImageTypes[http.DetectContentType(data)] {
		return httperr.ErrBadRequest("image_type_not_allowed", "Only jpg, png, gif and webp images are allowed")
	}
	return nil
}

// ToWebP decodes data, shrinks it to maxWidth keeping the aspect ratio and
// re-encodes it as lossy WebP.
func ToWebP(data []byte, maxWidth int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.ErrBadRequest("image_decode_failed", "Image could not be decoded")
	}

	img := resize(src, maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
