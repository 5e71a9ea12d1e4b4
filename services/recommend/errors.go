package recommend

import (
	"errors"
	"fmt"
)

// ErrFetchInProgress gates re-entrant fetches for the same session and kind,
// e.g. rapid repeated "Show More" taps.
var ErrFetchInProgress = errors.New("a fetch for this recommendation kind is already in progress")

// GatewayError reports a failed upstream chat-completion round trip: either a
// non-2xx provider status or a transport failure (Status 0).
type GatewayError struct {
	Status int
	Body   string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chat gateway: %v", e.Err)
	}
	return fmt.Sprintf("chat gateway: upstream status %d: %s", e.Status, e.Body)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Extraction failure steps.
const (
	StepDelimiters  = "delimiters"   // no usable delimiter pair in the text
	StepParse       = "parse"        // candidate payload is not valid JSON
	StepRequiredKey = "required-key" // parsed object lacks the required key
)

// ExtractionError reports model output that could not be coerced into the
// expected JSON shape. Snippet carries the original text truncated for
// diagnostics; it is logged but never shown to the user.
type ExtractionError struct {
	Step    string
	Snippet string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("response extraction failed at %s step: %q", e.Step, e.Snippet)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
