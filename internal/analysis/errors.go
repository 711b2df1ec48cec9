package analysis

import (
	"errors"
	"fmt"
)

// Recoverable conditions absorbed by the fallback chain. They never
// surface from Analyze; they appear in logs and mark why a branch was
// taken.
var (
	// ErrNoStripDetected means the locator found nothing above its
	// confidence threshold. Analysis continues with fallback sampling.
	ErrNoStripDetected = errors.New("no strip detected")

	// ErrRemoteUnavailable means the optional detection service was
	// unreachable or answered badly. Analysis continues with the local
	// locator.
	ErrRemoteUnavailable = errors.New("remote detection unavailable")
)

// TimeoutError reports that the pipeline exceeded its wall-clock
// budget. It is fatal to the call; the caller should retry with a
// smaller or clearer image.
type TimeoutError struct {
	Stage Stage
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("analysis timed out during %s: %v", e.Stage, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
