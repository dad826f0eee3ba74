package invocations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(repo Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(repo).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandlerListRecent(t *testing.T) {
	repo := NewMemoryRepo()
	_ = repo.Create(context.Background(), Invocation{ID: "inv-1", Feature: "chat_support", Status: StatusFallback, CreatedAt: time.Now()})

	resp := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/invocations?limit=5", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Items []Invocation `json:"items"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Status != StatusFallback {
		t.Fatalf("unexpected items: %+v", body.Items)
	}
}

func TestHandlerRejectsBadLimit(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter(NewMemoryRepo()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/invocations?limit=abc", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerStats(t *testing.T) {
	repo := NewMemoryRepo()
	_ = repo.Create(context.Background(), Invocation{Feature: "fraud_detection"})

	resp := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/invocations/stats", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		ByFeature map[string]int `json:"byFeature"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ByFeature["fraud_detection"] != 1 {
		t.Fatalf("unexpected stats: %v", body.ByFeature)
	}
}
