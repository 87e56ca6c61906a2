package assets

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	// Registered with image.Decode, which imgio.Open uses.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for image files no registered decoder can read.
var ErrUnsupportedFormat = errors.New("assets: unsupported image format")

// DecodeFunc reads and decodes the image at path.
type DecodeFunc func(path string) (image.Image, error)

// unsupportedExts have no Go decoder; fail fast instead of reading a large file.
var unsupportedExts = map[string]bool{
	".exr": true,
	".hdr": true,
	".ktx": true,
	".dds": true,
}

// Decode opens and decodes path. PNG, JPEG and GIF come from the standard library;
// BMP, TIFF and WebP from golang.org/x/image.
func Decode(path string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if unsupportedExts[ext] {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	img, err := imgio.Open(path)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
		}
		return nil, err
	}
	return img, nil
}

// Fit scales img down so neither side exceeds maxSize, keeping the aspect ratio.
// Images already within bounds, or maxSize <= 0, are returned unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}
