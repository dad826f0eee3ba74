package assist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"insurance-assistant/internal/prompts"
	"insurance-assistant/internal/shared/server/middleware"
	"insurance-assistant/internal/shared/server/respond"
	"insurance-assistant/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the assist service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feature routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/project", h.project)
	rg.GET("/features", h.listFeatures)
	rg.GET("/features/:feature", h.getFeature)
	rg.POST("/features/:feature/invoke", h.invoke)
}

type featureSummary struct {
	Key             string            `json:"key"`
	Agent           prompts.AgentInfo `json:"agent"`
	DefaultPromptID string            `json:"defaultPromptId"`
	Factors         []string          `json:"factors"`
	Inputs          []Input           `json:"inputs"`
	VariantCount    int               `json:"variantCount"`
}

type featureDetail struct {
	featureSummary
	Variants []prompts.Variant `json:"variants"`
}

type invokeRequest struct {
	Inputs   map[string]string `json:"inputs"`
	Criteria map[string]string `json:"criteria"`
}

func (h *Handler) project(c *gin.Context) {
	respond.OK(c, prompts.ProjectInfo())
}

func (h *Handler) listFeatures(c *gin.Context) {
	catalog := h.Svc.Catalog()
	items := make([]featureSummary, 0, len(catalog.Features()))
	for _, key := range catalog.Features() {
		entry, _ := catalog.Entry(key)
		items = append(items, summarize(entry))
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) getFeature(c *gin.Context) {
	entry, ok := h.Svc.Catalog().Entry(c.Param("feature"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "feature not found", nil)
		return
	}
	respond.OK(c, featureDetail{featureSummary: summarize(entry), Variants: entry.Variants})
}

func (h *Handler) invoke(c *gin.Context) {
	feature := c.Param("feature")
	c.Set(middleware.FeatureKey, feature)

	var body invokeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	result, err := h.Svc.Invoke(c.Request.Context(), Request{
		Feature:  feature,
		Inputs:   body.Inputs,
		Criteria: prompts.Criteria(body.Criteria),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set(middleware.PromptIDKey, result.PromptID)
	c.Set(middleware.InvocationIDKey, result.InvocationID)
	respond.OK(c, result)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *ValidationError
	var uerr *UpstreamError
	switch {
	case errors.Is(err, prompts.ErrUnknownFeature):
		respond.Error(c, http.StatusNotFound, "not_found", "feature not found", nil)
	case errors.Is(err, ErrMissingAPIKey):
		respond.Error(c, http.StatusServiceUnavailable, "config_error", MissingKeyNotice.Description, gin.H{"title": MissingKeyNotice.Title})
	case errors.As(err, &verr):
		details := make([]map[string]string, 0, len(verr.Missing))
		for _, field := range verr.Missing {
			details = append(details, map[string]string{"field": field, "issue": "required"})
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Notice.Description, details)
	case errors.As(err, &uerr):
		c.Set(middleware.PromptIDKey, uerr.PromptID)
		c.Set(middleware.InvocationIDKey, uerr.InvocationID)
		respond.Error(c, http.StatusBadGateway, "upstream_error", uerr.Notice.Description, gin.H{
			"title":        uerr.Notice.Title,
			"invocationId": uerr.InvocationID,
			"promptId":     uerr.PromptID,
		})
	default:
		telemetry.Error("invoke.internal_error", map[string]any{
			"feature": c.Param("feature"),
			"error":   err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to invoke feature", nil)
	}
}

func summarize(entry prompts.FeatureEntry) featureSummary {
	var inputs []Input
	if spec, ok := LookupSpec(entry.Key); ok {
		inputs = spec.Inputs
	}
	return featureSummary{
		Key:             entry.Key,
		Agent:           entry.Agent,
		DefaultPromptID: entry.DefaultPromptID,
		Factors:         entry.Factors,
		Inputs:          inputs,
		VariantCount:    len(entry.Variants),
	}
}
