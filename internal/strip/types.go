// Package strip provides test-strip localization, reagent pad
// segmentation, and robust pad color sampling on consumer photos.
package strip

import (
	"encoding/json"
	"fmt"

	"strip-analyzer/pkg/colorutil"
	"strip-analyzer/pkg/geometry"
)

// Method indicates how a strip region was obtained.
type Method int

const (
	// MethodHeuristic indicates the pure-Go edge/gradient locator.
	MethodHeuristic Method = iota
	// MethodCV indicates the OpenCV-backed contour locator.
	MethodCV
	// MethodRemote indicates bounds supplied by the remote detection
	// service.
	MethodRemote
	// MethodFallback indicates fixed proportional center sampling
	// after detection failed.
	MethodFallback
	// MethodManual indicates a user-supplied value that replaced the
	// detected reading.
	MethodManual
)

func (m Method) String() string {
	switch m {
	case MethodHeuristic:
		return "heuristic"
	case MethodCV:
		return "cv"
	case MethodRemote:
		return "remote"
	case MethodFallback:
		return "fallback"
	case MethodManual:
		return "manual"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the method name so JSON reports read without the
// enum values.
func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts the names MarshalJSON produces.
func (m *Method) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, known := range []Method{MethodHeuristic, MethodCV, MethodRemote, MethodFallback, MethodManual} {
		if known.String() == name {
			*m = known
			return nil
		}
	}
	return fmt.Errorf("unknown strip method %q", name)
}

// Candidate is a located strip region with its segmented pad regions.
// Candidates are created fresh per analysis call; the highest-scoring
// one above the confidence threshold becomes the working strip.
type Candidate struct {
	Bounds     geometry.RectInt   `json:"bounds"`
	Vertical   bool               `json:"vertical"`
	Confidence float64            `json:"confidence"`
	Bands      []geometry.RectInt `json:"bands,omitempty"`
	Method     Method             `json:"method"`
}

// BandSample is the dominant color extracted from one pad region.
type BandSample struct {
	Region     geometry.RectInt
	Color      colorutil.RGB
	Confidence float64
}
