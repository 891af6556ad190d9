package paperdoll

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestPixmapFromRGBA(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 128,
		0, 0, 255, 64, 10, 20, 30, 40,
	}
	pm, err := PixmapFromRGBA(pixels, 2, 2)
	if err != nil {
		t.Fatalf("PixmapFromRGBA() error: %v", err)
	}
	if r, _, _, a := pm.GetRGBA(0, 0); r != 255 || a != 255 {
		t.Errorf("pixel (0, 0) = (r=%d, a=%d), want (255, 255)", r, a)
	}
	if _, g, _, a := pm.GetRGBA(1, 0); g != 255 || a != 128 {
		t.Errorf("pixel (1, 0) = (g=%d, a=%d), want (255, 128)", g, a)
	}
}

func TestPixmapFromRGBAInvalid(t *testing.T) {
	if _, err := PixmapFromRGBA(make([]byte, 16), 0, 2); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := PixmapFromRGBA(make([]byte, 8), 2, 2); err == nil {
		t.Error("short buffer accepted")
	}
}

func TestPixmapFromRGB(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 7, 8, 9,
	}
	pm, err := PixmapFromRGB(pixels, 2, 2)
	if err != nil {
		t.Fatalf("PixmapFromRGB() error: %v", err)
	}

	// Alpha-less input becomes fully opaque
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if _, _, _, a := pm.GetRGBA(x, y); a != 255 {
				t.Errorf("pixel (%d, %d) alpha = %d, want 255", x, y, a)
			}
		}
	}
	if r, g, b, _ := pm.GetRGBA(1, 1); r != 7 || g != 8 || b != 9 {
		t.Errorf("pixel (1, 1) = (%d, %d, %d), want (7, 8, 9)", r, g, b)
	}
}

func TestPixmapFromRGBInvalid(t *testing.T) {
	if _, err := PixmapFromRGB(make([]byte, 6), 2, 2); err == nil {
		t.Error("short buffer accepted")
	}
}

func TestDecodePixmapPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 128})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	pm, err := DecodePixmap(&buf)
	if err != nil {
		t.Fatalf("DecodePixmap() error: %v", err)
	}
	if r, _, _, a := pm.GetRGBA(0, 0); r != 255 || a != 255 {
		t.Errorf("pixel (0, 0) = (r=%d, a=%d), want (255, 255)", r, a)
	}
	if _, _, b, a := pm.GetRGBA(1, 1); b != 255 || a != 128 {
		t.Errorf("pixel (1, 1) = (b=%d, a=%d), want (255, 128)", b, a)
	}
}

func TestDecodePixmapGarbage(t *testing.T) {
	if _, err := DecodePixmap(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("garbage input decoded without error")
	}
}

func TestLoadPixmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frag.png")

	pm := NewPixmap(3, 3)
	pm.Fill(0, 255, 0, 255)
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error: %v", err)
	}

	loaded, err := LoadPixmap(path)
	if err != nil {
		t.Fatalf("LoadPixmap() error: %v", err)
	}
	if loaded.Width() != 3 || loaded.Height() != 3 {
		t.Fatalf("size = %dx%d, want 3x3", loaded.Width(), loaded.Height())
	}
	if _, g, _, _ := loaded.GetRGBA(1, 1); g != 255 {
		t.Errorf("loaded pixel g = %d, want 255", g)
	}
}

func TestLoadPixmapMissingFile(t *testing.T) {
	if _, err := LoadPixmap(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file loaded without error")
	}
}
