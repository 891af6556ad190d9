package raster

import "errors"

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("raster: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("raster: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("raster: data buffer too small")
)

// Buffer is a rectangular pixel buffer with explicit stride and format.
//
// Buffer stores pixel data in a contiguous byte slice. All compositing in
// this package works on straight (non-premultiplied) alpha.
//
// Thread safety: Buffer is safe for concurrent read access. Write operations
// require external synchronization.
type Buffer struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// New creates a new zeroed buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or the format is unknown.
func New(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	data := make([]byte, stride*height)

	return &Buffer{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw creates a Buffer from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the Buffer.
// Stride must be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	minStride := format.RowBytes(width)
	if stride < minStride {
		return nil, ErrInvalidStride
	}

	requiredSize := stride * height
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &Buffer{
		data:   data[:requiredSize],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &Buffer{
		data:   newData,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		format: b.format,
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *Buffer) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *Buffer) Format() Format {
	return b.format
}

// Bounds returns the buffer dimensions as (width, height).
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *Buffer) Data() []byte {
	return b.data
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// GetRGBA returns the color at (x, y) as straight-alpha (r, g, b, a).
// For FormatRGB8, a=255. Returns (0,0,0,0) if coordinates are out of bounds.
func (b *Buffer) GetRGBA(x, y int) (r, g, bl, a uint8) {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return 0, 0, 0, 0
	}

	switch b.format {
	case FormatRGB8:
		return b.data[offset], b.data[offset+1], b.data[offset+2], 255
	case FormatRGBA8:
		return b.data[offset], b.data[offset+1], b.data[offset+2], b.data[offset+3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y) from straight-alpha (r, g, b, a).
// For FormatRGB8 the alpha is dropped. Out-of-bounds writes are ignored.
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return
	}

	switch b.format {
	case FormatRGB8:
		b.data[offset] = r
		b.data[offset+1] = g
		b.data[offset+2] = bl
	case FormatRGBA8:
		b.data[offset] = r
		b.data[offset+1] = g
		b.data[offset+2] = bl
		b.data[offset+3] = a
	}
}

// Clear sets all pixels to zero (transparent black for RGBA).
func (b *Buffer) Clear() {
	clear(b.data)
}

// Fill sets all pixels to the given RGBA color.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	for y := range b.height {
		for x := range b.width {
			b.SetRGBA(x, y, r, g, bl, a)
		}
	}
}

// IsEmpty returns true if the buffer has zero dimensions.
func (b *Buffer) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}
