// Package geometry provides the rectangle and point types used for
// pixel-buffer addressing throughout the application.
package geometry

import "math"

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// RectInt represents a rectangle in pixel-buffer coordinates.
// A valid rectangle has Width > 0 and Height > 0.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the center point of the rectangle.
func (r RectInt) Center() Point2D {
	return Point2D{X: float64(r.X) + float64(r.Width)/2, Y: float64(r.Y) + float64(r.Height)/2}
}

// Contains returns true if the pixel (x, y) is inside the rectangle.
func (r RectInt) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Clip returns the intersection of r with a bounding area of the given
// width and height anchored at the origin. Regions that fall entirely
// outside come back empty rather than erroring; callers sampling pixels
// skip empty rectangles.
func (r RectInt) Clip(width, height int) RectInt {
	x1 := max(r.X, 0)
	y1 := max(r.Y, 0)
	x2 := min(r.X+r.Width, width)
	y2 := min(r.Y+r.Height, height)
	if x2 <= x1 || y2 <= y1 {
		return RectInt{}
	}
	return RectInt{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Inset returns the rectangle shrunk symmetrically so that the given
// fraction of each dimension remains, centered on the original. A
// fraction of 0.45 keeps the central 45% on both axes.
func (r RectInt) Inset(fraction float64) RectInt {
	if fraction <= 0 || fraction > 1 {
		return r
	}
	w := int(float64(r.Width) * fraction)
	h := int(float64(r.Height) * fraction)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return RectInt{
		X:      r.X + (r.Width-w)/2,
		Y:      r.Y + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// Scale returns the rectangle with all coordinates multiplied by the
// given factor, used to map regions found on a downscaled image back to
// source coordinates.
func (r RectInt) Scale(factor float64) RectInt {
	return RectInt{
		X:      int(float64(r.X) * factor),
		Y:      int(float64(r.Y) * factor),
		Width:  int(float64(r.Width) * factor),
		Height: int(float64(r.Height) * factor),
	}
}

// AspectRatio returns the long-side to short-side ratio. A square
// returns 1; an invalid rectangle returns 0.
func (r RectInt) AspectRatio() float64 {
	if r.Empty() {
		return 0
	}
	long := float64(max(r.Width, r.Height))
	short := float64(min(r.Width, r.Height))
	return long / short
}
