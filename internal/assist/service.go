package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"insurance-assistant/internal/invocations"
	"insurance-assistant/internal/llm"
	"insurance-assistant/internal/prompts"
	"insurance-assistant/internal/render"
	"insurance-assistant/internal/shared/metrics"
	"insurance-assistant/internal/shared/telemetry"
	"insurance-assistant/internal/shared/util"
)

// Request is one feature invocation.
type Request struct {
	Feature  string
	Inputs   map[string]string
	Criteria prompts.Criteria
}

// Result is the outcome shown to the user.
type Result struct {
	InvocationID string `json:"invocationId"`
	Feature      string `json:"feature"`
	PromptID     string `json:"promptId"`
	Text         string `json:"text"`
	HTML         string `json:"html"`
	Fallback     bool   `json:"fallback"`
	Notice       Notice `json:"notice"`
}

// Service contains business logic for feature invocations.
type Service struct {
	Resolver *prompts.Resolver
	LLM      llm.Client
	// HasAPIKey gates every call; without a key no request is sent.
	HasAPIKey bool
	Audit     invocations.Repo
	Now       func() time.Time
}

// NewService constructs a Service over catalog.
func NewService(catalog *prompts.Catalog, client llm.Client, hasAPIKey bool, audit invocations.Repo) *Service {
	return &Service{
		Resolver:  prompts.NewResolver(catalog),
		LLM:       client,
		HasAPIKey: hasAPIKey,
		Audit:     audit,
		Now:       time.Now,
	}
}

// Catalog returns the catalog the service resolves against.
func (s *Service) Catalog() *prompts.Catalog {
	return s.Resolver.Catalog
}

// Invoke runs one feature. Errors are prompts.ErrUnknownFeature,
// ErrMissingAPIKey, *ValidationError, *UpstreamError or an internal error.
func (s *Service) Invoke(ctx context.Context, req Request) (Result, error) {
	spec, ok := LookupSpec(req.Feature)
	if !ok || !prompts.IsKnownFeature(req.Feature) {
		return Result{}, fmt.Errorf("%w: %q", prompts.ErrUnknownFeature, req.Feature)
	}
	if !s.HasAPIKey || s.LLM == nil {
		return Result{}, ErrMissingAPIKey
	}
	if missing := missingInputs(spec, req.Inputs); len(missing) > 0 {
		notice := spec.Missing
		if notice.Description == "" {
			notice.Description = "Please fill in: " + strings.Join(missing, ", ")
		}
		return Result{}, &ValidationError{Feature: req.Feature, Missing: missing, Notice: notice}
	}

	inv, err := s.Resolver.Resolve(req.Feature, spec.Variables(req.Inputs), req.Criteria)
	if err != nil {
		return Result{}, fmt.Errorf("resolve %s: %w", req.Feature, err)
	}

	invocationID := uuid.NewString()
	startedAt := s.now()
	metrics.IncInvocationStarted()
	metrics.IncPromptSelected(inv.Feature, inv.PromptID)
	telemetry.Info("invocation.started", map[string]any{
		"invocation_id": invocationID,
		"feature":       inv.Feature,
		"prompt_id":     inv.PromptID,
		"criteria":      len(req.Criteria),
	})

	audit := invocations.Invocation{
		ID:         invocationID,
		Feature:    inv.Feature,
		PromptID:   inv.PromptID,
		PromptHash: util.HashPrompt(inv.Prompt),
		CreatedAt:  startedAt.UTC(),
	}

	resp, err := s.LLM.GenerateContent(ctx, prompts.BuildRequest(inv))
	elapsed := s.now().Sub(startedAt)
	audit.DurationMs = elapsed.Milliseconds()
	metrics.ObserveInvocationDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncInvocationFailed()
		audit.Status = invocations.StatusFailed
		audit.ErrorCode = ErrorCodeUpstream
		s.record(ctx, audit)
		telemetry.Error("invocation.failed", map[string]any{
			"invocation_id": invocationID,
			"feature":       inv.Feature,
			"prompt_id":     inv.PromptID,
			"duration_ms":   audit.DurationMs,
			"error":         err.Error(),
		})
		return Result{}, &UpstreamError{
			Feature:      inv.Feature,
			PromptID:     inv.PromptID,
			InvocationID: invocationID,
			Notice:       spec.Failure,
			Err:          err,
		}
	}

	text := resp.Text
	fallback := !resp.Found
	if fallback {
		text = spec.Fallback
		audit.Status = invocations.StatusFallback
		metrics.IncInvocationFallback()
	} else {
		audit.Status = invocations.StatusCompleted
	}
	metrics.IncInvocationCompleted()
	s.record(ctx, audit)

	telemetry.Info("invocation.completed", map[string]any{
		"invocation_id":     invocationID,
		"feature":           inv.Feature,
		"prompt_id":         inv.PromptID,
		"fallback":          fallback,
		"finish_reason":     resp.FinishReason,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"candidates_tokens": resp.Usage.CandidatesTokens,
		"duration_ms":       audit.DurationMs,
	})

	return Result{
		InvocationID: invocationID,
		Feature:      inv.Feature,
		PromptID:     inv.PromptID,
		Text:         text,
		HTML:         render.MarkdownToHTML(text),
		Fallback:     fallback,
		Notice:       spec.SuccessNotice(inv.PromptID),
	}, nil
}

// Preview resolves a feature without calling the model.
func (s *Service) Preview(req Request) (prompts.Invocation, error) {
	spec, ok := LookupSpec(req.Feature)
	if !ok {
		return prompts.Invocation{}, fmt.Errorf("%w: %q", prompts.ErrUnknownFeature, req.Feature)
	}
	return s.Resolver.Resolve(req.Feature, spec.Variables(req.Inputs), req.Criteria)
}

func (s *Service) record(ctx context.Context, inv invocations.Invocation) {
	if s.Audit == nil {
		return
	}
	// The request context may already be canceled after an upstream failure.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Audit.Create(recordCtx, inv); err != nil {
		telemetry.Warn("invocation.audit_failed", map[string]any{
			"invocation_id": inv.ID,
			"feature":       inv.Feature,
			"error":         err.Error(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func missingInputs(spec FeatureSpec, inputs map[string]string) []string {
	var missing []string
	for _, in := range spec.Inputs {
		if strings.TrimSpace(inputs[in.Field]) == "" {
			missing = append(missing, in.Field)
		}
	}
	return missing
}
