// Package raster provides pixel buffer management and compositing primitives
// for gogpu/paperdoll.
package raster

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	// Fragments ingested as RGB are treated as fully opaque.
	FormatRGB8 Format = iota

	// FormatRGBA8 is 32-bit straight-alpha RGBA (4 bytes per pixel).
	// This is the standard format for all compositing operations.
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB8:
		return 3
	case FormatRGBA8:
		return 4
	default:
		return 0
	}
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f == FormatRGBA8
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
