package strip

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"strip-analyzer/internal/imaging"
	"strip-analyzer/internal/logging"
	"strip-analyzer/pkg/geometry"
)

// CVLocate finds the strip region using OpenCV contours instead of the
// sliding-window search: grayscale, Gaussian blur, Canny edges, a
// morphological close to join the strip outline, then external contour
// bounding boxes filtered by the same plausibility rules and rescored
// by inter-band color variation. Selected via DetectionParams.UseCV;
// requires an OpenCV runtime.
func CVLocate(buf *imaging.Buffer, bandCount int, params DetectionParams) *Candidate {
	mat := imageToMat(buf)
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, 50, 150)

	// Close small gaps so the strip outline forms one contour
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 5, Y: 5})
	defer kernel.Close()
	gocv.MorphologyEx(edges, &edges, gocv.MorphClose, kernel)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	w, h := buf.Width(), buf.Height()
	shortDim := min(w, h)
	longDim := max(w, h)
	minNarrow := int(float64(shortDim) * params.MinWidthFrac)
	maxNarrow := int(float64(shortDim) * params.MaxWidthFrac)
	minLong := int(float64(longDim) * params.MinLengthFrac)

	var kept []scoredWindow
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		cw, ch := rect.Dx(), rect.Dy()
		if cw <= 0 || ch <= 0 {
			continue
		}

		vertical := ch >= cw
		narrow, length := min(cw, ch), max(cw, ch)
		if narrow < minNarrow || narrow > maxNarrow || length < minLong {
			continue
		}

		ratio := float64(length) / float64(narrow)
		if ratio < params.AspectMin || ratio > params.AspectMax {
			continue
		}
		aspectScore := 1 - math.Abs(ratio-params.AspectPeak)/params.AspectPeak
		if aspectScore < 0 {
			aspectScore = 0
		}

		kept = keepTop(kept, scoredWindow{
			bounds:   geometry.RectInt{X: rect.Min.X, Y: rect.Min.Y, Width: cw, Height: ch},
			vertical: vertical,
			score:    aspectScore,
		}, params.MaxCandidates)
	}

	best := scoredWindow{score: -1}
	for _, cand := range kept {
		bands := SegmentBands(cand.bounds, cand.vertical, bandCount, params)
		variation := bandVariation(buf, bands)
		cand.score = (cand.score + variation) / 2
		if cand.score > best.score {
			best = cand
		}
	}

	logging.Logger().Debug("cv strip located",
		"confidence", best.score, "contours", contours.Size())

	if best.score < params.MinConfidence {
		return nil
	}

	return &Candidate{
		Bounds:     best.bounds,
		Vertical:   best.vertical,
		Confidence: best.score,
		Bands:      SegmentBands(best.bounds, best.vertical, bandCount, params),
		Method:     MethodCV,
	}
}

// imageToMat copies the buffer into an OpenCV Mat in BGR channel
// order.
func imageToMat(buf *imaging.Buffer) gocv.Mat {
	w, h := buf.Width(), buf.Height()
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := buf.At(x, y)
			mat.SetUCharAt(y, x*3+0, c.B)
			mat.SetUCharAt(y, x*3+1, c.G)
			mat.SetUCharAt(y, x*3+2, c.R)
		}
	}
	return mat
}
