package paperdoll

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Decoders for the ingestion helpers. Consumers with exotic formats
	// decode themselves and hand over pixel buffers.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gogpu/paperdoll/internal/raster"
)

// PixmapFromRGBA builds a pixmap from a straight-alpha RGBA byte buffer,
// 4 bytes per pixel, row-major.
func PixmapFromRGBA(pixels []byte, width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ingest rgba: %w", ErrInvalidDimensions)
	}
	if len(pixels) < width*height*4 {
		return nil, fmt.Errorf("ingest rgba: %w", raster.ErrDataTooSmall)
	}

	pm := NewPixmap(width, height)
	copy(pm.Data(), pixels)
	return pm, nil
}

// PixmapFromRGB builds a pixmap from an RGB byte buffer, 3 bytes per pixel,
// row-major. Every pixel becomes fully opaque.
func PixmapFromRGB(pixels []byte, width, height int) (*Pixmap, error) {
	src, err := raster.FromRaw(pixels, width, height, raster.FormatRGB8,
		raster.FormatRGB8.RowBytes(width))
	if err != nil {
		return nil, fmt.Errorf("ingest rgb: %w", err)
	}

	pm := NewPixmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := src.GetRGBA(x, y)
			pm.SetRGBA(x, y, r, g, b, a)
		}
	}
	return pm, nil
}

// DecodePixmap decodes an image from the reader into a pixmap,
// auto-detecting the format. Supported formats: PNG, JPEG, WebP.
func DecodePixmap(r io.Reader) (*Pixmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: decode: %w", err)
	}
	return FromImage(img), nil
}

// LoadPixmap loads an image file into a pixmap, auto-detecting the format.
func LoadPixmap(path string) (*Pixmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("ingest: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodePixmap(f)
}
