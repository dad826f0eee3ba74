package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{name: "text present", body: `{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`, want: "hi", found: true},
		{name: "first part only", body: `{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`, want: "a", found: true},
		{name: "no candidates", body: `{}`, found: false},
		{name: "no parts", body: `{"candidates":[{"content":{}}]}`, found: false},
		{name: "empty text", body: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, found: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var resp GenerateResponse
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, found := ExtractText(resp)
			if got != tt.want || found != tt.found {
				t.Fatalf("ExtractText() = (%q, %v), want (%q, %v)", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestPlaceholderClient(t *testing.T) {
	_, err := PlaceholderClient{}.GenerateContent(context.Background(), GenerateRequest{})
	if err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
