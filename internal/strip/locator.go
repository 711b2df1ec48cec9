package strip

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"strip-analyzer/internal/imaging"
	"strip-analyzer/internal/logging"
	"strip-analyzer/pkg/colorutil"
	"strip-analyzer/pkg/geometry"
)

// Locate finds the most plausible strip region in a photo using edge
// and color analysis, without any external CV runtime.
//
// A Sobel gradient map is searched with a coarse sliding window over
// position and size, restricted to plausible strip proportions. Each
// window is scored by edge strength along its border combined with an
// aspect-ratio preference, the top few survivors are rescored by how
// much the pad colors inside them vary from each other, and the best
// candidate is returned with its segmented bands. Returns nil when no
// candidate reaches params.MinConfidence; callers then use
// FallbackBands.
//
// bandCount is the pad count of the strip product being analyzed; it
// drives both the variation rescoring and the returned band regions.
func Locate(buf *imaging.Buffer, bandCount int, params DetectionParams) *Candidate {
	w, h := buf.Width(), buf.Height()
	if min(w, h) < 4*params.StepPixels {
		return nil
	}

	edges := edgeMap(buf)

	var kept []scoredWindow
	windows := 0
	for _, vertical := range []bool{true, false} {
		kept = slideWindows(edges, w, h, vertical, params, kept, &windows)
	}
	if len(kept) == 0 {
		return nil
	}

	// Rescore the survivors by inter-band color variation: a real
	// strip shows distinctly colored pads, a plain edge-heavy region
	// does not.
	best := scoredWindow{score: -1}
	for _, cand := range kept {
		bands := SegmentBands(cand.bounds, cand.vertical, bandCount, params)
		variation := bandVariation(buf, bands)
		cand.score = (cand.score + variation) / 2
		if cand.score > best.score {
			best = cand
		}
	}

	logging.Logger().Debug("strip located",
		"confidence", best.score, "windows", windows,
		"vertical", best.vertical, "bounds", best.bounds)

	if best.score < params.MinConfidence {
		return nil
	}

	return &Candidate{
		Bounds:     best.bounds,
		Vertical:   best.vertical,
		Confidence: best.score,
		Bands:      SegmentBands(best.bounds, best.vertical, bandCount, params),
		Method:     MethodHeuristic,
	}
}

type scoredWindow struct {
	bounds   geometry.RectInt
	vertical bool
	score    float64
}

// slideWindows enumerates windows of one orientation and keeps the
// top params.MaxCandidates by border-edge and aspect score. The
// windows counter caps total work across both orientations so a huge
// image cannot stall the pipeline regardless of wall-clock budget.
func slideWindows(edges []float64, w, h int, vertical bool, params DetectionParams, kept []scoredWindow, windows *int) []scoredWindow {
	shortDim := min(w, h)
	longDim := max(w, h)
	step := max(1, params.StepPixels)

	minNarrow := max(step, int(float64(shortDim)*params.MinWidthFrac))
	maxNarrow := int(float64(shortDim) * params.MaxWidthFrac)
	minLong := int(float64(longDim) * params.MinLengthFrac)

	for narrow := minNarrow; narrow <= maxNarrow; narrow += step {
		longLo := max(minLong, int(float64(narrow)*params.AspectMin))
		longHi := int(float64(narrow) * params.AspectMax)
		if vertical {
			longHi = min(longHi, h)
		} else {
			longHi = min(longHi, w)
		}

		for length := longLo; length <= longHi; length += step {
			cw, ch := narrow, length
			if !vertical {
				cw, ch = length, narrow
			}
			if cw > w || ch > h {
				continue
			}

			ratio := float64(length) / float64(narrow)
			aspectScore := 1 - math.Abs(ratio-params.AspectPeak)/params.AspectPeak
			if aspectScore < 0 {
				aspectScore = 0
			}

			for y := 0; y+ch <= h; y += step {
				for x := 0; x+cw <= w; x += step {
					*windows++
					if *windows > params.MaxWindows {
						return kept
					}

					border := borderScore(edges, w, geometry.RectInt{X: x, Y: y, Width: cw, Height: ch})
					score := (border + aspectScore) / 2
					kept = keepTop(kept, scoredWindow{
						bounds:   geometry.RectInt{X: x, Y: y, Width: cw, Height: ch},
						vertical: vertical,
						score:    score,
					}, params.MaxCandidates)
				}
			}
		}
	}
	return kept
}

// keepTop inserts cand into a score-descending slice capped at n.
func keepTop(kept []scoredWindow, cand scoredWindow, n int) []scoredWindow {
	if len(kept) == n && cand.score <= kept[n-1].score {
		return kept
	}
	kept = append(kept, cand)
	sort.Slice(kept, func(i, j int) bool { return kept[i].score > kept[j].score })
	if len(kept) > n {
		kept = kept[:n]
	}
	return kept
}

// borderScore averages edge strength along the window's four border
// lines, sampled every other pixel. A strip's outline produces strong
// gradients on all four sides; random windows do not.
func borderScore(edges []float64, stride int, r geometry.RectInt) float64 {
	var sum float64
	var n int

	y2 := r.Y + r.Height - 1
	for x := r.X; x < r.X+r.Width; x += 2 {
		sum += edges[r.Y*stride+x] + edges[y2*stride+x]
		n += 2
	}
	x2 := r.X + r.Width - 1
	for y := r.Y; y < r.Y+r.Height; y += 2 {
		sum += edges[y*stride+r.X] + edges[y*stride+x2]
		n += 2
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// edgeMap computes Sobel gradient magnitude over the buffer's luma,
// normalized into [0,1] against a mean+3σ ceiling so a handful of hot
// pixels cannot flatten the rest of the map.
func edgeMap(buf *imaging.Buffer) []float64 {
	w, h := buf.Width(), buf.Height()
	gray := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray[y*w+x] = float64(buf.Gray(x, y))
		}
	}

	mag := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			gx := gray[i-w+1] + 2*gray[i+1] + gray[i+w+1] -
				gray[i-w-1] - 2*gray[i-1] - gray[i+w-1]
			gy := gray[i+w-1] + 2*gray[i+w] + gray[i+w+1] -
				gray[i-w-1] - 2*gray[i-w] - gray[i-w+1]
			mag[i] = math.Sqrt(gx*gx + gy*gy)
		}
	}

	mean, std := stat.MeanStdDev(mag, nil)
	ceiling := mean + 3*std
	if ceiling <= 0 {
		return mag // flat image, all zeros
	}
	for i, v := range mag {
		mag[i] = math.Min(1, v/ceiling)
	}
	return mag
}

// bandVariation scores how distinct the mean colors of the candidate's
// bands are from each other: the mean pairwise RGB distance divided by
// 100, clamped to 1.
func bandVariation(buf *imaging.Buffer, bands []geometry.RectInt) float64 {
	if len(bands) < 2 {
		return 0
	}

	colors := make([]colorutil.RGB, len(bands))
	for i, b := range bands {
		colors[i] = meanColor(buf, b)
	}

	var dists []float64
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			dists = append(dists, colorutil.RGBDistance(colors[i], colors[j]))
		}
	}
	return math.Min(1, stat.Mean(dists, nil)/100)
}

// meanColor averages a region's pixels on a stride with no filtering;
// it only feeds relative variation scoring, not value matching.
func meanColor(buf *imaging.Buffer, region geometry.RectInt) colorutil.RGB {
	r := region.Clip(buf.Width(), buf.Height())
	if r.Empty() {
		return colorutil.White
	}

	var sr, sg, sb, n uint64
	for y := r.Y; y < r.Y+r.Height; y += 2 {
		for x := r.X; x < r.X+r.Width; x += 2 {
			c, _ := buf.At(x, y)
			sr += uint64(c.R)
			sg += uint64(c.G)
			sb += uint64(c.B)
			n++
		}
	}
	if n == 0 {
		return colorutil.White
	}
	return colorutil.RGB{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n)}
}
