package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"strip-analyzer/pkg/colorutil"
)

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestFromImagePixelAccess(t *testing.T) {
	buf := FromImage(gradientImage(16, 8))
	if buf.Width() != 16 || buf.Height() != 8 {
		t.Fatalf("expected 16x8, got %dx%d", buf.Width(), buf.Height())
	}

	c, alpha := buf.At(5, 3)
	if c != (colorutil.RGB{R: 5, G: 3, B: 128}) || alpha != 255 {
		t.Errorf("At(5,3) = %+v alpha %d", c, alpha)
	}

	if b := buf.Bounds(); b.Width != 16 || b.Height != 8 || b.X != 0 || b.Y != 0 {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestFromImageNonZeroOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.SetRGBA(10, 20, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	buf := FromImage(src)
	if buf.Width() != 4 || buf.Height() != 3 {
		t.Fatalf("expected 4x3, got %dx%d", buf.Width(), buf.Height())
	}
	if c, _ := buf.At(0, 0); c != (colorutil.RGB{R: 200, G: 100, B: 50}) {
		t.Errorf("origin pixel not translated, got %+v", c)
	}
}

func TestGrayLuma(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	buf := FromImage(img)
	if g := buf.Gray(0, 0); g != 255 {
		t.Errorf("white luma = %d", g)
	}
	if g := buf.Gray(1, 0); g != 76 { // 0.299 * 255
		t.Errorf("red luma = %d, want 76", g)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, gradientImage(12, 10)); err != nil {
		t.Fatal(err)
	}

	buf, err := Decode(&encoded)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width() != 12 || buf.Height() != 10 {
		t.Errorf("expected 12x10, got %dx%d", buf.Width(), buf.Height())
	}
	if c, _ := buf.At(7, 4); c != (colorutil.RGB{R: 7, G: 4, B: 128}) {
		t.Errorf("pixel lost in decode: %+v", c)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Path == "" {
		t.Error("LoadError should carry the path")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradientImage(8, 8)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	buf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width() != 8 || buf.Height() != 8 {
		t.Errorf("expected 8x8, got %dx%d", buf.Width(), buf.Height())
	}
}

func TestDownscale(t *testing.T) {
	buf := FromImage(gradientImage(200, 100))

	scaled, factor := buf.Downscale(50)
	if scaled.Width() != 50 || scaled.Height() != 25 {
		t.Errorf("expected 50x25, got %dx%d", scaled.Width(), scaled.Height())
	}
	if factor != 4 {
		t.Errorf("expected factor 4, got %v", factor)
	}

	// Already small enough: same buffer back, factor 1.
	same, factor := buf.Downscale(400)
	if same != buf || factor != 1 {
		t.Errorf("expected identity, got %p factor %v", same, factor)
	}
}
