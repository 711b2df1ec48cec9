package strip

import "strip-analyzer/pkg/geometry"

// SegmentBands divides a located strip into count ordered pad regions.
// The strip length is split into count+1 equal slices with the spare
// slice absorbed half at each end, since physical strips carry a
// handle and tip margin around the pads. Each pad keeps only the
// central BandKeepFrac of its slice and BandWidthFrac of the strip
// width, which avoids bleed from neighboring pads and the strip edge.
//
// Regions come back top-to-bottom for vertical strips and
// left-to-right for horizontal ones, matching the parameter order of
// the strip product.
func SegmentBands(bounds geometry.RectInt, vertical bool, count int, params DetectionParams) []geometry.RectInt {
	if count <= 0 || bounds.Empty() {
		return nil
	}

	bands := make([]geometry.RectInt, count)

	if vertical {
		sliceH := float64(bounds.Height) / float64(count+1)
		edge := sliceH / 2
		padH := max(1, int(sliceH*params.BandKeepFrac))
		padW := max(1, int(float64(bounds.Width)*params.BandWidthFrac))
		padX := bounds.X + (bounds.Width-padW)/2

		for i := 0; i < count; i++ {
			sliceTop := float64(bounds.Y) + edge + float64(i)*sliceH
			bands[i] = geometry.RectInt{
				X:      padX,
				Y:      int(sliceTop + (sliceH-float64(padH))/2),
				Width:  padW,
				Height: padH,
			}
		}
		return bands
	}

	sliceW := float64(bounds.Width) / float64(count+1)
	edge := sliceW / 2
	padW := max(1, int(sliceW*params.BandKeepFrac))
	padH := max(1, int(float64(bounds.Height)*params.BandWidthFrac))
	padY := bounds.Y + (bounds.Height-padH)/2

	for i := 0; i < count; i++ {
		sliceLeft := float64(bounds.X) + edge + float64(i)*sliceW
		bands[i] = geometry.RectInt{
			X:      int(sliceLeft + (sliceW-float64(padW))/2),
			Y:      padY,
			Width:  padW,
			Height: padH,
		}
	}
	return bands
}

// FallbackBands returns fixed proportional pad regions for when no
// strip was detected: a centered column (or row, for landscape
// images) spanning 15%-85% of the long dimension at 20% of the short
// dimension. Sampling these keeps the pipeline producing a full
// reading set at reduced confidence. Dimensions are clamped to one
// pixel so even degenerate images yield count regions.
func FallbackBands(width, height, count int, params DetectionParams) []geometry.RectInt {
	if count <= 0 || width <= 0 || height <= 0 {
		return nil
	}

	vertical := height >= width
	var bounds geometry.RectInt
	if vertical {
		w := max(1, width/5)
		bounds = geometry.RectInt{
			X:      (width - w) / 2,
			Y:      int(float64(height) * 0.15),
			Width:  w,
			Height: max(1, int(float64(height)*0.70)),
		}
	} else {
		h := max(1, height/5)
		bounds = geometry.RectInt{
			X:      int(float64(width) * 0.15),
			Y:      (height - h) / 2,
			Width:  max(1, int(float64(width)*0.70)),
			Height: h,
		}
	}

	return SegmentBands(bounds, vertical, count, params)
}
