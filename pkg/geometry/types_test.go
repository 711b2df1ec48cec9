package geometry

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	a := Point2D{X: 1, Y: 2}
	b := Point2D{X: 4, Y: 6}
	if d := a.Distance(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %v", d)
	}
	if d := a.Distance(a); d != 0 {
		t.Errorf("expected zero self-distance, got %v", d)
	}
}

func TestRectClip(t *testing.T) {
	tests := []struct {
		name string
		r    RectInt
		want RectInt
	}{
		{"inside", RectInt{X: 10, Y: 10, Width: 20, Height: 20}, RectInt{X: 10, Y: 10, Width: 20, Height: 20}},
		{"overhang", RectInt{X: 90, Y: 90, Width: 20, Height: 20}, RectInt{X: 90, Y: 90, Width: 10, Height: 10}},
		{"negative origin", RectInt{X: -5, Y: -5, Width: 20, Height: 20}, RectInt{X: 0, Y: 0, Width: 15, Height: 15}},
		{"fully outside", RectInt{X: 200, Y: 200, Width: 20, Height: 20}, RectInt{}},
		{"fully negative", RectInt{X: -50, Y: -50, Width: 20, Height: 20}, RectInt{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Clip(100, 100); got != tt.want {
				t.Errorf("Clip() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := RectInt{X: 0, Y: 0, Width: 100, Height: 40}
	got := r.Inset(0.5)
	if got.Width != 50 || got.Height != 20 {
		t.Errorf("expected 50x20, got %+v", got)
	}
	if got.X != 25 || got.Y != 10 {
		t.Errorf("expected centered at (25,10), got %+v", got)
	}

	// Never collapses below one pixel.
	tiny := RectInt{Width: 2, Height: 2}.Inset(0.1)
	if tiny.Empty() {
		t.Errorf("inset of a tiny rect must stay non-empty, got %+v", tiny)
	}

	// Out-of-range fractions leave the rect alone.
	if got := r.Inset(0); got != r {
		t.Errorf("Inset(0) changed the rect: %+v", got)
	}
	if got := r.Inset(1.5); got != r {
		t.Errorf("Inset(1.5) changed the rect: %+v", got)
	}
}

func TestRectScale(t *testing.T) {
	r := RectInt{X: 10, Y: 20, Width: 30, Height: 40}
	if got := r.Scale(2); got != (RectInt{X: 20, Y: 40, Width: 60, Height: 80}) {
		t.Errorf("Scale(2) = %+v", got)
	}
	if got := r.Scale(1); got != r {
		t.Errorf("Scale(1) = %+v", got)
	}
}

func TestRectAspectRatio(t *testing.T) {
	if got := (RectInt{Width: 40, Height: 160}).AspectRatio(); math.Abs(got-4) > 1e-9 {
		t.Errorf("expected 4, got %v", got)
	}
	if got := (RectInt{Width: 160, Height: 40}).AspectRatio(); math.Abs(got-4) > 1e-9 {
		t.Errorf("orientation must not matter, got %v", got)
	}
	if got := (RectInt{Width: 10, Height: 10}).AspectRatio(); got != 1 {
		t.Errorf("expected 1 for a square, got %v", got)
	}
	if got := (RectInt{}).AspectRatio(); got != 0 {
		t.Errorf("expected 0 for an empty rect, got %v", got)
	}
}

func TestRectContainsAndCenter(t *testing.T) {
	r := RectInt{X: 10, Y: 10, Width: 4, Height: 4}
	if !r.Contains(10, 10) || !r.Contains(13, 13) {
		t.Error("corner pixels must be contained")
	}
	if r.Contains(14, 10) || r.Contains(10, 14) {
		t.Error("pixels past the far edge must not be contained")
	}
	if c := r.Center(); c.X != 12 || c.Y != 12 {
		t.Errorf("expected center (12,12), got %+v", c)
	}
}
