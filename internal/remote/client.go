// Package remote implements the client side of the optional strip
// detection service. The pipeline consults it before running local
// localization when an endpoint is configured; any failure here simply
// hands detection back to the local locator.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"time"

	"strip-analyzer/internal/imaging"
	"strip-analyzer/internal/logging"
	"strip-analyzer/pkg/geometry"
)

// DefaultTimeout bounds one detection round trip. The service is an
// accelerator, not a dependency; a slow answer is worth less than the
// local locator.
const DefaultTimeout = 5 * time.Second

// Detection is the service's answer for one uploaded photo.
type Detection struct {
	StripDetected    bool              `json:"stripDetected"`
	StripBounds      *geometry.RectInt `json:"stripBounds,omitempty"`
	ProcessingMethod string            `json:"processingMethod,omitempty"`
}

// Client calls a strip detection endpoint over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for the given detection endpoint URL.
// A non-positive timeout selects DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// DetectStrip uploads the photo as PNG and returns the service's
// detection. Any transport, status, or decoding failure is returned as
// an error for the caller to absorb.
func (c *Client) DetectStrip(ctx context.Context, buf *imaging.Buffer) (*Detection, error) {
	var body bytes.Buffer
	if err := png.Encode(&body, buf.Image()); err != nil {
		return nil, fmt.Errorf("encode detection upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build detection request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call detection service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("detection service returned %s", resp.Status)
	}

	var det Detection
	if err := json.NewDecoder(resp.Body).Decode(&det); err != nil {
		return nil, fmt.Errorf("decode detection response: %w", err)
	}
	if det.StripDetected && (det.StripBounds == nil || det.StripBounds.Empty()) {
		return nil, fmt.Errorf("detection service reported a strip without usable bounds")
	}

	logging.Logger().Debug("remote detection",
		"detected", det.StripDetected, "method", det.ProcessingMethod,
		"elapsed", time.Since(start))
	return &det, nil
}
