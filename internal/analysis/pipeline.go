// Package analysis orchestrates the image-to-measurement pipeline:
// locate the strip, segment its pads, sample each pad's dominant
// color, and match the colors against the product's calibration
// tables. The stages run as a linear chain with explicit fallbacks;
// recoverable conditions lower confidence instead of failing the call.
package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"strip-analyzer/internal/calibration"
	"strip-analyzer/internal/imaging"
	"strip-analyzer/internal/logging"
	"strip-analyzer/internal/match"
	"strip-analyzer/internal/remote"
	"strip-analyzer/internal/strip"
	"strip-analyzer/pkg/geometry"
)

// Stage identifies a pipeline phase. Cancellation is cooperative and
// checked at stage boundaries.
type Stage int

const (
	StageIdle Stage = iota
	StageLocating
	StageSegmenting
	StageSampling
	StageMatching
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageLocating:
		return "locating"
	case StageSegmenting:
		return "segmenting"
	case StageSampling:
		return "sampling"
	case StageMatching:
		return "matching"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	// DefaultTimeout bounds one full analysis call.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxDimension is the longest image side the locator works
	// on; larger photos are downscaled for localization and sampled at
	// full resolution.
	DefaultMaxDimension = 640

	// fallbackConfidenceFactor scales reading confidence when no strip
	// was detected and fixed proportional regions were sampled.
	fallbackConfidenceFactor = 0.7

	// remoteConfidence is assigned to bounds supplied by the detection
	// service, which reports detection but no score of its own.
	remoteConfidence = 0.9
)

// Config assembles a Pipeline. The zero value selects the 6-in-1
// product, RGB matching, default detection parameters, and no remote
// assist.
type Config struct {
	// StripType selects a registered calibration product. Ignored when
	// Product is set.
	StripType calibration.StripType

	// Product overrides the registry lookup, for alternate strip
	// brands loaded from file.
	Product *calibration.Product

	// Space selects the color space for calibration matching.
	Space match.Space

	// Params tunes localization, segmentation, and sampling. The zero
	// value selects strip.DefaultParams.
	Params strip.DetectionParams

	// Remote, when set, is consulted for strip bounds before local
	// localization runs.
	Remote *remote.Client

	// MaxDimension caps the working image size during localization.
	MaxDimension int

	// Timeout bounds the whole call. Non-positive selects
	// DefaultTimeout.
	Timeout time.Duration
}

// Pipeline runs analyses for one strip product. It is stateless across
// calls; concurrent Analyze calls on different images need no
// coordination.
type Pipeline struct {
	product *calibration.Product
	matcher *match.Matcher
	params  strip.DetectionParams
	remote  *remote.Client
	maxDim  int
	timeout time.Duration
}

// New builds a pipeline from cfg.
func New(cfg Config) (*Pipeline, error) {
	product := cfg.Product
	if product == nil {
		t := cfg.StripType
		if t == "" {
			t = calibration.Strip6in1
		}
		product = calibration.ForType(t)
		if product == nil {
			return nil, fmt.Errorf("no calibration product registered for strip type %q", t)
		}
	}
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("calibration product %s: %w", product.Name(), err)
	}

	params := cfg.Params
	if params == (strip.DetectionParams{}) {
		params = strip.DefaultParams()
	}
	maxDim := cfg.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Pipeline{
		product: product,
		matcher: match.New(product, cfg.Space),
		params:  params,
		remote:  cfg.Remote,
		maxDim:  maxDim,
		timeout: timeout,
	}, nil
}

// Product returns the calibration product the pipeline analyzes for.
func (p *Pipeline) Product() *calibration.Product { return p.product }

// AnalyzeFile loads an image file and analyzes it.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*Report, error) {
	buf, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	return p.Analyze(ctx, buf)
}

// Analyze runs the full pipeline over one photo. A successfully
// decoded image always yields a complete reading set: detection
// failures degrade confidence, they never remove readings. Only a
// timeout fails the call.
func (p *Pipeline) Analyze(ctx context.Context, buf *imaging.Buffer) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	start := time.Now()

	if err := stageErr(ctx, StageLocating); err != nil {
		return nil, err
	}
	cand := p.detect(ctx, buf)

	if err := stageErr(ctx, StageSegmenting); err != nil {
		return nil, err
	}
	count := p.product.BandCount()
	var bands []geometry.RectInt
	method := strip.MethodFallback
	multiplier := fallbackConfidenceFactor
	if cand != nil {
		bands = cand.Bands
		if len(bands) != count {
			bands = strip.SegmentBands(cand.Bounds, cand.Vertical, count, p.params)
		}
		method = cand.Method
		multiplier = 1.0
	} else {
		bands = strip.FallbackBands(buf.Width(), buf.Height(), count, p.params)
	}

	if err := stageErr(ctx, StageSampling); err != nil {
		return nil, err
	}
	// One sample per parameter even when segmentation came up short on
	// a degenerate image; an empty region samples as white with
	// confidence 0.
	samples := make([]strip.BandSample, count)
	for i := range samples {
		var band geometry.RectInt
		if i < len(bands) {
			band = bands[i]
		}
		samples[i] = strip.SampleRegion(buf, band, p.params)
	}

	if err := stageErr(ctx, StageMatching); err != nil {
		return nil, err
	}
	readings := make([]ParameterReading, 0, count)
	for i, table := range p.product.Parameters {
		sample := samples[i]
		res, err := p.matcher.Match(sample.Color, table.Key)
		if err != nil {
			// A bad key means a broken table, not a broken photo; skip
			// the parameter instead of aborting the batch.
			logging.Logger().Warn("parameter skipped", "key", table.Key, "error", err)
			continue
		}

		// Truncate rather than round so the reported confidence never
		// exceeds its weakest contributor.
		confidence := math.Min(sample.Confidence, res.Confidence) * multiplier
		confidence = math.Floor(confidence*100) / 100
		readings = append(readings, ParameterReading{
			ParameterKey:  table.Key,
			Value:         res.Value,
			Status:        res.Status,
			Unit:          table.Unit,
			Confidence:    confidence,
			DetectedColor: sample.Color,
			Method:        method,
		})
	}

	logging.Logger().Debug("analysis done",
		"product", p.product.Name(), "method", method.String(),
		"readings", len(readings), "elapsed", time.Since(start))

	return &Report{Readings: readings, Strip: cand}, nil
}

// detect produces the working strip candidate, consulting the remote
// service first when configured and falling back to the local locator.
// Returns nil when nothing was detected; the caller then samples fixed
// proportional regions.
func (p *Pipeline) detect(ctx context.Context, buf *imaging.Buffer) *strip.Candidate {
	count := p.product.BandCount()

	if p.remote != nil {
		det, err := p.remote.DetectStrip(ctx, buf)
		switch {
		case err != nil:
			logging.Logger().Debug("falling back to local detection",
				"reason", ErrRemoteUnavailable, "error", err)
		case det.StripDetected:
			bounds := det.StripBounds.Clip(buf.Width(), buf.Height())
			if !bounds.Empty() {
				vertical := bounds.Height >= bounds.Width
				return &strip.Candidate{
					Bounds:     bounds,
					Vertical:   vertical,
					Confidence: remoteConfidence,
					Bands:      strip.SegmentBands(bounds, vertical, count, p.params),
					Method:     strip.MethodRemote,
				}
			}
		}
	}

	work, factor := buf.Downscale(p.maxDim)
	var cand *strip.Candidate
	if p.params.UseCV {
		cand = strip.CVLocate(work, count, p.params)
	} else {
		cand = strip.Locate(work, count, p.params)
	}
	if cand == nil {
		logging.Logger().Debug("sampling fixed regions", "reason", ErrNoStripDetected)
		return nil
	}

	if factor != 1.0 {
		cand.Bounds = cand.Bounds.Scale(factor).Clip(buf.Width(), buf.Height())
		cand.Bands = strip.SegmentBands(cand.Bounds, cand.Vertical, count, p.params)
	}
	return cand
}

func stageErr(ctx context.Context, s Stage) error {
	select {
	case <-ctx.Done():
		return &TimeoutError{Stage: s, Err: ctx.Err()}
	default:
		return nil
	}
}
