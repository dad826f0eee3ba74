package invocations

import "time"

// Status values.
const (
	StatusCompleted = "completed"
	StatusFallback  = "fallback"
	StatusFailed    = "failed"
)

// Invocation is the audit record of one feature invoke call. It never holds
// user inputs or model output.
type Invocation struct {
	ID         string    `json:"id"`
	Feature    string    `json:"feature"`
	PromptID   string    `json:"promptId"`
	PromptHash string    `json:"promptHash"`
	Status     string    `json:"status"`
	ErrorCode  string    `json:"errorCode,omitempty"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
