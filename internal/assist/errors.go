package assist

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey means no generation credentials are configured.
var ErrMissingAPIKey = errors.New("gemini api key not configured")

// MissingKeyNotice is shown when ErrMissingAPIKey is returned.
var MissingKeyNotice = Notice{Title: "API Key Missing", Description: "Please set GEMINI_API_KEY in your .env file."}

// Error codes recorded on failed invocations.
const (
	ErrorCodeUpstream = "upstream_error"
	ErrorCodeInternal = "internal_error"
)

// ValidationError lists every required input left blank.
type ValidationError struct {
	Feature string
	Missing []string
	Notice  Notice
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required inputs: %s", e.Feature, strings.Join(e.Missing, ", "))
}

// UpstreamError wraps a failed generation call.
type UpstreamError struct {
	Feature      string
	PromptID     string
	InvocationID string
	Notice       Notice
	Err          error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s (%s): generation failed: %v", e.Feature, e.PromptID, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
