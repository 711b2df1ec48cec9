// Package match maps extracted pad colors to calibrated chemical
// values with a confidence score.
package match

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"strip-analyzer/internal/calibration"
	"strip-analyzer/pkg/colorutil"
)

// ErrUnknownParameter is returned for a calibration lookup on a key
// the product does not define. Callers skip the parameter rather than
// abort the batch.
var ErrUnknownParameter = errors.New("unknown parameter key")

// Space selects which color space distances are computed in. The
// calibration tables are RGB-keyed; the HSV strategy converts both the
// sample and the references once per match so a single comparison
// never mixes spaces.
type Space int

const (
	SpaceRGB Space = iota
	SpaceHSV
)

func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceHSV:
		return "hsv"
	default:
		return "unknown"
	}
}

const (
	// Snap thresholds: a closest entry nearer than this wins outright
	// with no interpolation toward the runner-up.
	snapDistanceRGB = 50.0
	snapDistanceHSV = 30.0

	// maxDistanceHSV is the empirical normalization ceiling for the
	// unbounded HSV distance; beyond it confidence floors out.
	maxDistanceHSV = 200.0

	// minConfidence keeps even far matches above zero, since a value
	// is still reported for every pad.
	minConfidence = 0.1
)

// Result is the outcome of matching one sampled color against one
// parameter's calibration table.
type Result struct {
	Value      float64
	Status     calibration.Status
	Confidence float64
	Distance   float64
}

// Matcher matches sampled colors against a product's calibration
// tables in a fixed color space chosen at construction.
type Matcher struct {
	product *calibration.Product
	space   Space
}

// New creates a matcher for the given product and color space.
func New(product *calibration.Product, space Space) *Matcher {
	return &Matcher{product: product, space: space}
}

// Space returns the matcher's color space.
func (m *Matcher) Space() Space { return m.space }

// Match returns the interpolated value, status, and confidence for a
// sampled color against the named parameter's table.
func (m *Matcher) Match(color colorutil.RGB, key string) (Result, error) {
	table, ok := m.product.Parameter(key)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownParameter, key)
	}

	type ranked struct {
		entry calibration.Entry
		dist  float64
	}
	rankedEntries := make([]ranked, len(table.Entries))

	switch m.space {
	case SpaceHSV:
		sample := colorutil.RGBToHSV(color)
		for i, e := range table.Entries {
			rankedEntries[i] = ranked{entry: e, dist: colorutil.HSVDistance(sample, colorutil.RGBToHSV(e.Ref))}
		}
	default:
		for i, e := range table.Entries {
			rankedEntries[i] = ranked{entry: e, dist: colorutil.RGBDistance(color, e.Ref)}
		}
	}

	sort.SliceStable(rankedEntries, func(i, j int) bool {
		return rankedEntries[i].dist < rankedEntries[j].dist
	})

	closest := rankedEntries[0]
	snap, maxDist := snapDistanceRGB, colorutil.MaxRGBDistance
	if m.space == SpaceHSV {
		snap, maxDist = snapDistanceHSV, maxDistanceHSV
	}

	var value float64
	if closest.dist < snap || len(rankedEntries) < 2 {
		value = closest.entry.Midpoint()
	} else {
		// Interpolate toward the runner-up. The weights look swapped
		// but are not: dividing by the other entry's distance gives
		// the closer match the larger weight.
		second := rankedEntries[1]
		total := closest.dist + second.dist
		weightClosest := second.dist / total
		weightSecond := closest.dist / total
		value = closest.entry.Midpoint()*weightClosest + second.entry.Midpoint()*weightSecond
	}

	// Status is recomputed from the final value rather than copied
	// from the closest entry, so what the user sees always agrees
	// with the number shown.
	confidence := 1 - closest.dist/maxDist
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > 1 {
		confidence = 1
	}

	value = math.Round(value*10) / 10

	return Result{
		Value:      value,
		Status:     table.StatusFor(value),
		Confidence: math.Round(confidence*100) / 100,
		Distance:   closest.dist,
	}, nil
}
