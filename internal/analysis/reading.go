package analysis

import (
	"strip-analyzer/internal/calibration"
	"strip-analyzer/internal/strip"
	"strip-analyzer/pkg/colorutil"
)

// ParameterReading is the externally visible result for one chemical
// parameter: the interpolated value, its qualitative status, and the
// combined confidence of the sampling and matching that produced it.
// Readings are immutable once produced; Override is the only sanctioned
// replacement and returns a copy.
type ParameterReading struct {
	ParameterKey  string             `json:"parameterKey"`
	Value         float64            `json:"value"`
	Status        calibration.Status `json:"status"`
	Unit          string             `json:"unit"`
	Confidence    float64            `json:"confidence"`
	DetectedColor colorutil.RGB      `json:"detectedColor"`
	Method        strip.Method       `json:"method"`
}

// Override returns a copy carrying a user-supplied value and status.
// The copy is pinned to confidence 1.0 and marked manual; the detected
// color is kept for display.
func (r ParameterReading) Override(value float64, status calibration.Status) ParameterReading {
	r.Value = value
	r.Status = status
	r.Confidence = 1.0
	r.Method = strip.MethodManual
	return r
}

// Report is the outcome of one analysis call: readings in band order
// plus the strip candidate that produced them (nil when fallback
// sampling was used).
type Report struct {
	Readings []ParameterReading `json:"readings"`
	Strip    *strip.Candidate   `json:"strip,omitempty"`
}

// Reading returns the reading for a parameter key.
func (r *Report) Reading(key string) (ParameterReading, bool) {
	for _, pr := range r.Readings {
		if pr.ParameterKey == key {
			return pr, true
		}
	}
	return ParameterReading{}, false
}

// Keys returns the parameter keys present, in band order.
func (r *Report) Keys() []string {
	keys := make([]string, len(r.Readings))
	for i, pr := range r.Readings {
		keys[i] = pr.ParameterKey
	}
	return keys
}
