package strip

// DetectionParams holds tuning parameters for strip localization, pad
// segmentation, and color sampling.
type DetectionParams struct {
	// Sliding-window search
	StepPixels    int     // window position/size step
	MinWidthFrac  float64 // strip width, fraction of the short image dimension
	MaxWidthFrac  float64
	MinLengthFrac float64 // strip length, fraction of the long image dimension
	AspectMin     float64 // long/short ratio bounds for a plausible strip
	AspectMax     float64
	AspectPeak    float64 // ratio scoring peaks here
	MaxCandidates int     // candidates kept for band-variation rescoring
	MaxWindows    int     // hard cap on windows examined, independent of timeout
	MinConfidence float64 // below this the locator reports no detection

	// Pad sampling
	SampleInset  float64 // central fraction of the pad kept for sampling
	SampleStride int     // pixel stride while walking the window
	AlphaMin     uint8   // pixels at or below this alpha are skipped
	WhiteFloor   uint8   // all channels above: background, skipped
	BlackCeil    uint8   // all channels below: shadow or print, skipped
	GraySatMax   float64 // saturation below this and
	GrayValMin   float64 // value above this marks a gray pixel
	QuantShift   uint    // channel bits dropped when bucketing (5 = buckets of 32)

	// Segmentation
	BandKeepFrac  float64 // central fraction of each slice kept as the pad
	BandWidthFrac float64 // pad width as a fraction of strip width

	// UseCV switches localization to the OpenCV contour locator.
	// Requires an OpenCV runtime; the heuristic locator needs none.
	UseCV bool
}

// DefaultParams returns detection parameters tuned for handheld photos
// of pool test strips.
func DefaultParams() DetectionParams {
	return DetectionParams{
		StepPixels:    10,
		MinWidthFrac:  0.10,
		MaxWidthFrac:  0.40,
		MinLengthFrac: 0.30,
		AspectMin:     2.0,
		AspectMax:     8.0,
		AspectPeak:    4.0, // typical 6-pad strip proportions
		MaxCandidates: 5,
		MaxWindows:    250000,
		MinConfidence: 0.3,

		SampleInset:  0.45,
		SampleStride: 2,
		AlphaMin:     200,
		WhiteFloor:   238,
		BlackCeil:    28,
		GraySatMax:   12,
		GrayValMin:   85,
		QuantShift:   5,

		BandKeepFrac:  0.40,
		BandWidthFrac: 0.80,
	}
}

// WithStep returns a copy with a different sliding-window step.
func (p DetectionParams) WithStep(step int) DetectionParams {
	if step > 0 {
		p.StepPixels = step
	}
	return p
}

// WithMinConfidence returns a copy with a different detection
// threshold.
func (p DetectionParams) WithMinConfidence(c float64) DetectionParams {
	p.MinConfidence = c
	return p
}

// WithCV returns a copy that selects the OpenCV contour locator.
func (p DetectionParams) WithCV(enabled bool) DetectionParams {
	p.UseCV = enabled
	return p
}
