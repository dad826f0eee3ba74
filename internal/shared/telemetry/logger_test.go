package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("catalog.default_missing", map[string]any{"feature": "fraud_detection", "level": "ignored"})

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", line, err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected level warn, got %v", entry["level"])
	}
	if entry["msg"] != "catalog.default_missing" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if entry["feature"] != "fraud_detection" {
		t.Fatalf("expected feature field, got %v", entry["feature"])
	}
	if entry["ts"] == "" {
		t.Fatalf("expected ts")
	}
}

func TestWriteMarshalFailure(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Error("bad", map[string]any{"ch": make(chan int)})

	if !strings.Contains(buf.String(), "logger marshal failed") {
		t.Fatalf("expected fallback line, got %q", buf.String())
	}
}
