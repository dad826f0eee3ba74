package extract

import (
	"strings"
	"testing"
)

func TestSanitizeUploadName(t *testing.T) {
	got, err := sanitizeUploadName(" policy/terms.pdf ")
	if err != nil {
		t.Fatalf("sanitizeUploadName: %v", err)
	}
	if got != "policy_terms.pdf" {
		t.Fatalf("unexpected name %q", got)
	}
	if got, _ := sanitizeUploadName(`C:\claims\denial.docx`); got != "C:_claims_denial.docx" {
		t.Fatalf("unexpected windows name %q", got)
	}
	if got, _ := sanitizeUploadName(".env"); got != "env" {
		t.Fatalf("expected leading dots stripped, got %q", got)
	}

	for _, bad := range []string{"../etc/passwd", "   ", "claim\x00.pdf", "line\nbreak.txt", "bad\xffname.pdf"} {
		if _, err := sanitizeUploadName(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestSanitizeUploadNameKeepsExtensionWhenTruncating(t *testing.T) {
	long := strings.Repeat("a", 400) + ".pdf"
	got, err := sanitizeUploadName(long)
	if err != nil {
		t.Fatalf("sanitizeUploadName: %v", err)
	}
	if len(got) != maxUploadNameLen {
		t.Fatalf("expected %d chars, got %d", maxUploadNameLen, len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("expected extension kept, got %q", got[len(got)-8:])
	}
}
