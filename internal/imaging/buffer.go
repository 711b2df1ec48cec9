// Package imaging provides pixel buffer loading and access for strip
// photos. It registers decoders for the formats consumer photos arrive
// in (PNG, JPEG, TIFF, WebP); anything the decoders accept works.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"strip-analyzer/pkg/colorutil"
	"strip-analyzer/pkg/geometry"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadError reports that a source image could not be opened or
// decoded. It is fatal to an analysis call: no readings are produced.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load image %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Buffer is an immutable RGBA pixel grid with explicit dimensions.
// It is the sole input to the analysis pipeline; components read
// subregions through clipped bounds and never mutate it.
type Buffer struct {
	img    *image.RGBA
	width  int
	height int
}

// FromImage copies a decoded image into a Buffer.
func FromImage(src image.Image) *Buffer {
	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return &Buffer{img: rgba, width: bounds.Dx(), height: bounds.Dy()}
}

// Decode reads and decodes an image from r.
func Decode(r io.Reader) (*Buffer, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return FromImage(src), nil
}

// Load opens and decodes an image file.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return FromImage(src), nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the full buffer extent as a rectangle at the origin.
func (b *Buffer) Bounds() geometry.RectInt {
	return geometry.RectInt{Width: b.width, Height: b.height}
}

// At returns the color and alpha of the pixel at (x, y). Coordinates
// must be in bounds; callers clip regions before walking pixels.
func (b *Buffer) At(x, y int) (colorutil.RGB, uint8) {
	i := b.img.PixOffset(x, y)
	p := b.img.Pix[i : i+4 : i+4]
	return colorutil.RGB{R: p[0], G: p[1], B: p[2]}, p[3]
}

// Gray returns the luma (0-255) of the pixel at (x, y) using the
// Rec. 601 weights 0.299/0.587/0.114.
func (b *Buffer) Gray(x, y int) uint8 {
	i := b.img.PixOffset(x, y)
	p := b.img.Pix[i : i+4 : i+4]
	return uint8((299*uint32(p[0]) + 587*uint32(p[1]) + 114*uint32(p[2])) / 1000)
}

// Image returns the underlying image for encoding. The caller must not
// mutate it.
func (b *Buffer) Image() image.Image { return b.img }

// Downscale returns a copy reduced so the longest side is at most
// maxDim, along with the factor that maps scaled coordinates back to
// the source. Buffers already within the limit are returned as-is with
// factor 1. Bounding the working size keeps the locator's sliding
// window affordable on large photos.
func (b *Buffer) Downscale(maxDim int) (*Buffer, float64) {
	long := max(b.width, b.height)
	if maxDim < 1 || long <= maxDim {
		return b, 1.0
	}

	factor := float64(long) / float64(maxDim)
	w := int(float64(b.width)/factor + 0.5)
	h := int(float64(b.height)/factor + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), b.img, b.img.Bounds(), xdraw.Src, nil)
	return &Buffer{img: dst, width: w, height: h}, factor
}
