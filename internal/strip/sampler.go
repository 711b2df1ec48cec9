package strip

import (
	"sort"

	"strip-analyzer/internal/imaging"
	"strip-analyzer/pkg/colorutil"
	"strip-analyzer/pkg/geometry"
)

// bucket accumulates quantized near-duplicate colors. The most
// saturated member represents the bucket, since reagent color is the
// saturated component of a pad and lighting noise washes toward gray.
type bucket struct {
	key     uint32
	count   int
	rep     colorutil.RGB
	repSat  float64
	repVal  float64
}

// SampleRegion extracts the dominant color of one pad region.
//
// The window shrinks to its central portion to avoid pad borders, then
// pixels are walked on a stride. Translucent, near-white (background),
// and near-black (shadow, printed markings) pixels are skipped. Gray
// pixels are skipped too unless nothing chromatic survives, in which
// case the pass repeats accepting them: an unreacted pad is legitimately
// gray-white and still needs a reading. Survivors are quantized into
// coarse RGB buckets scored by population, saturation, and brightness.
//
// Never fails: a region with no usable pixels yields white with
// confidence 0. Deterministic for a fixed buffer, region, and params.
func SampleRegion(buf *imaging.Buffer, region geometry.RectInt, params DetectionParams) BandSample {
	sample := BandSample{Region: region, Color: colorutil.White, Confidence: 0}

	window := region.Inset(params.SampleInset).Clip(buf.Width(), buf.Height())
	if window.Empty() {
		return sample
	}

	buckets, total := collectBuckets(buf, window, params, false)
	if total == 0 {
		// Only grays (or nothing) in the window; retry accepting them.
		buckets, total = collectBuckets(buf, window, params, true)
	}
	if total == 0 {
		return sample
	}

	// Deterministic winner: highest score, ties broken by key.
	sort.Slice(buckets, func(i, j int) bool {
		si, sj := bucketScore(buckets[i]), bucketScore(buckets[j])
		if si != sj {
			return si > sj
		}
		return buckets[i].key < buckets[j].key
	})

	best := buckets[0]
	sample.Color = best.rep
	sample.Confidence = float64(best.count) / float64(total)
	return sample
}

// bucketScore weights population by saturation and brightness so a
// vivid reacted pad beats a larger count of washed-out pixels.
func bucketScore(b bucket) float64 {
	brightWeight := 0.5 + b.repVal/200.0
	return float64(b.count) * (1 + b.repSat/100.0) * brightWeight
}

func collectBuckets(buf *imaging.Buffer, window geometry.RectInt, params DetectionParams, acceptGray bool) ([]bucket, int) {
	stride := max(1, params.SampleStride)
	shift := params.QuantShift
	byKey := make(map[uint32]*bucket)
	total := 0

	for y := window.Y; y < window.Y+window.Height; y += stride {
		for x := window.X; x < window.X+window.Width; x += stride {
			c, alpha := buf.At(x, y)
			if alpha <= params.AlphaMin {
				continue
			}
			if c.R > params.WhiteFloor && c.G > params.WhiteFloor && c.B > params.WhiteFloor {
				continue
			}
			if c.R < params.BlackCeil && c.G < params.BlackCeil && c.B < params.BlackCeil {
				continue
			}

			sat := colorutil.Saturation(c)
			val := colorutil.Brightness(c)
			if !acceptGray && sat < params.GraySatMax && val > params.GrayValMin {
				continue
			}

			key := uint32(c.R>>shift)<<10 | uint32(c.G>>shift)<<5 | uint32(c.B>>shift)
			b := byKey[key]
			if b == nil {
				b = &bucket{key: key}
				byKey[key] = b
			}
			b.count++
			total++
			if sat > b.repSat || b.count == 1 {
				b.rep = c
				b.repSat = sat
				b.repVal = val
			}
		}
	}

	buckets := make([]bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, *b)
	}
	return buckets, total
}
