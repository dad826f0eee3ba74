package invocations

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"insurance-assistant/internal/shared/server/respond"
	"insurance-assistant/internal/shared/telemetry"
)

// Handler exposes the audit log over HTTP.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches invocation routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invocations", h.list)
	rg.GET("/invocations/stats", h.stats)
}

func (h *Handler) list(c *gin.Context) {
	limit := DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	items, err := h.Repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		telemetry.Error("invocations.list_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list invocations", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) stats(c *gin.Context) {
	counts, err := h.Repo.CountByFeature(c.Request.Context())
	if err != nil {
		telemetry.Error("invocations.stats_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to count invocations", nil)
		return
	}
	respond.OK(c, gin.H{"byFeature": counts})
}
