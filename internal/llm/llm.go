package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation endpoint used by every feature.
type Client interface {
	GenerateContent(ctx context.Context, req GenerateRequest) (Response, error)
}

// Response carries the generated text. Found is false when the success body
// did not contain candidates[0].content.parts[0].text.
type Response struct {
	Text         string
	Found        bool
	FinishReason string
	Usage        Usage
}

// Usage mirrors the vendor usage metadata block.
type Usage struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient stands in when no API key is available.
type PlaceholderClient struct{}

// GenerateContent returns ErrNotConfigured.
func (PlaceholderClient) GenerateContent(ctx context.Context, req GenerateRequest) (Response, error) {
	_ = ctx
	_ = req
	return Response{}, ErrNotConfigured
}
