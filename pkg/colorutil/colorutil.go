// Package colorutil provides shared color types, conversions, and
// perceptual distance functions for the strip analyzer.
package colorutil

import (
	"fmt"
	"math"
)

// RGB is a color in the sRGB cube, each channel in 0-255.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV is a color in hue/saturation/value space.
// H is in degrees [0, 360), S and V are percentages [0, 100].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// White is the neutral fallback color returned when a sample region
// contains no usable pixels.
var White = RGB{R: 255, G: 255, B: 255}

// Hex returns the color as a #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBToHSV converts an RGB color to HSV using the standard
// max/min/diff decomposition. Achromatic inputs (diff == 0) map to
// hue 0, saturation 0.
func RGBToHSV(c RGB) HSV {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v := maxC * 100.0

	var s float64
	if maxC > 0 {
		s = (diff / maxC) * 100.0
	}

	var h float64
	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}
	if h < 0 {
		h += 360
	}

	return HSV{H: h, S: s, V: v}
}

// HSVToRGB converts an HSV color back to RGB. Round-tripping any RGB
// color through RGBToHSV and back lands within one unit per channel.
func HSVToRGB(c HSV) RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := c.S / 100.0
	v := c.V / 100.0

	chroma := v * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - chroma

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = chroma, x, 0
	case h < 120:
		r, g, b = x, chroma, 0
	case h < 180:
		r, g, b = 0, chroma, x
	case h < 240:
		r, g, b = 0, x, chroma
	case h < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}

	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}

// RGBDistance returns the Euclidean distance between two RGB colors.
// The range is [0, 441.67] (sqrt(255^2 * 3)).
func RGBDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// MaxRGBDistance is the diagonal of the RGB cube.
var MaxRGBDistance = math.Sqrt(255 * 255 * 3)

// HSVDistance returns a perceptual distance between two HSV colors.
// The circular hue difference is weighted by min(S1,S2)/100 so that
// near-gray pixels are not penalized for meaningless hue mismatch;
// saturation and value differences contribute directly. The result has
// no fixed upper bound; callers normalize with an empirical maximum.
func HSVDistance(a, b HSV) float64 {
	dh := math.Abs(a.H - b.H)
	if dh > 180 {
		dh = 360 - dh
	}
	hueWeight := math.Min(a.S, b.S) / 100.0
	return dh*hueWeight + math.Abs(a.S-b.S) + math.Abs(a.V-b.V)
}

// Saturation returns the HSV saturation (0-100) of an RGB color
// without computing the full conversion.
func Saturation(c RGB) float64 {
	maxC := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
	minC := math.Min(float64(c.R), math.Min(float64(c.G), float64(c.B)))
	if maxC == 0 {
		return 0
	}
	return (maxC - minC) / maxC * 100.0
}

// Brightness returns the HSV value (0-100) of an RGB color.
func Brightness(c RGB) float64 {
	maxC := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
	return maxC / 255.0 * 100.0
}
