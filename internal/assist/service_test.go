package assist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-assistant/internal/invocations"
	"insurance-assistant/internal/llm"
	"insurance-assistant/internal/prompts"
)

type fakeLLM struct {
	mu    sync.Mutex
	calls []llm.GenerateRequest
	resp  llm.Response
	err   error
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req llm.GenerateRequest) (llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestService(t *testing.T, client *fakeLLM, hasKey bool) (*Service, *invocations.MemoryRepo) {
	t.Helper()
	catalog, err := prompts.LoadCatalog()
	require.NoError(t, err)
	audit := invocations.NewMemoryRepo()
	svc := NewService(catalog, client, hasKey, audit)
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}
	return svc, audit
}

func okResponse(text string) llm.Response {
	return llm.Response{Text: text, Found: true, FinishReason: "STOP"}
}

func TestInvokeUnknownFeature(t *testing.T) {
	client := &fakeLLM{resp: okResponse("x")}
	svc, _ := newTestService(t, client, true)

	_, err := svc.Invoke(context.Background(), Request{Feature: "pet_insurance"})
	assert.ErrorIs(t, err, prompts.ErrUnknownFeature)
	assert.Zero(t, client.callCount())
}

func TestInvokeMissingAPIKeyNeverCallsClient(t *testing.T) {
	client := &fakeLLM{resp: okResponse("x")}
	svc, audit := newTestService(t, client, false)

	_, err := svc.Invoke(context.Background(), Request{
		Feature: prompts.FeatureChatSupport,
		Inputs:  map[string]string{"userQuestion": "What is a deductible?"},
	})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, client.callCount())

	items, err := audit.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInvokeMissingAPIKeyCheckedBeforeInputs(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{}, false)

	_, err := svc.Invoke(context.Background(), Request{Feature: prompts.FeatureFraudDetection})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestInvokeListsEveryBlankInput(t *testing.T) {
	client := &fakeLLM{resp: okResponse("x")}
	svc, _ := newTestService(t, client, true)

	_, err := svc.Invoke(context.Background(), Request{
		Feature: prompts.FeatureProductRecommendation,
		Inputs:  map[string]string{"age": "34", "income": "   "},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"income", "familySize", "coverageGoal"}, verr.Missing)
	assert.Equal(t, "Incomplete Profile", verr.Notice.Title)
	assert.Equal(t, "Please fill in: income, familySize, coverageGoal", verr.Notice.Description)
	assert.Zero(t, client.callCount())
}

func TestInvokeSingleFieldValidationNotice(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{}, true)

	_, err := svc.Invoke(context.Background(), Request{
		Feature: prompts.FeatureClauseSimplifier,
		Inputs:  map[string]string{"policyText": "\n\t"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"policyText"}, verr.Missing)
	assert.Equal(t, "Please enter insurance policy text or clauses to simplify.", verr.Notice.Description)
}

func TestInvokeProductRecommendation(t *testing.T) {
	client := &fakeLLM{resp: okResponse("## TOP RECOMMENDATIONS\n* **Term life** cover")}
	svc, audit := newTestService(t, client, true)

	res, err := svc.Invoke(context.Background(), Request{
		Feature: prompts.FeatureProductRecommendation,
		Inputs: map[string]string{
			"age":          "34",
			"income":       "80000",
			"familySize":   "3",
			"coverageGoal": "family",
		},
	})
	require.NoError(t, err)

	require.Equal(t, 1, client.callCount())
	sent := client.calls[0]
	assert.Contains(t, sent.PromptText(), "$80000")
	assert.Contains(t, sent.PromptText(), "34")
	assert.InDelta(t, 0.6, sent.GenerationConfig.Temperature, 1e-9)
	assert.Equal(t, 2000, sent.GenerationConfig.MaxOutputTokens)
	assert.InDelta(t, prompts.DefaultTopP, sent.GenerationConfig.TopP, 1e-9)
	assert.Equal(t, prompts.DefaultTopK, sent.GenerationConfig.TopK)

	assert.Equal(t, "product_recommendation_v1", res.PromptID)
	assert.False(t, res.Fallback)
	assert.Equal(t, "## TOP RECOMMENDATIONS\n* **Term life** cover", res.Text)
	assert.Contains(t, res.HTML, "<h2")
	assert.Contains(t, res.HTML, `<strong class="font-semibold">Term life</strong>`)
	assert.Equal(t, "Recommendations Generated", res.Notice.Title)
	assert.Contains(t, res.Notice.Description, "product_recommendation_v1")
	assert.NotEmpty(t, res.InvocationID)

	items, err := audit.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, res.InvocationID, items[0].ID)
	assert.Equal(t, invocations.StatusCompleted, items[0].Status)
	assert.Len(t, items[0].PromptHash, 64)
	assert.Equal(t, int64(250), items[0].DurationMs)
}

func TestInvokeFallbackWhenTextMissing(t *testing.T) {
	client := &fakeLLM{resp: llm.Response{Found: false, FinishReason: "SAFETY"}}
	svc, audit := newTestService(t, client, true)

	res, err := svc.Invoke(context.Background(), Request{
		Feature: prompts.FeatureFraudDetection,
		Inputs:  map[string]string{"transactionData": "3 claims in 2 days from one address"},
	})
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	assert.Equal(t, "No analysis available", res.Text)
	assert.Equal(t, "No analysis available", res.HTML)

	items, err := audit.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, invocations.StatusFallback, items[0].Status)
}

func TestInvokeFallbackStrings(t *testing.T) {
	want := map[string]string{
		prompts.FeatureFraudDetection:        "No analysis available",
		prompts.FeatureClaimAssistant:        "No assistance available",
		prompts.FeatureProductRecommendation: "No recommendations available",
		prompts.FeatureClauseSimplifier:      "No simplification available",
		prompts.FeatureChatSupport:           "No response available",
	}
	for feature, fallback := range want {
		spec, ok := LookupSpec(feature)
		require.True(t, ok, feature)
		assert.Equal(t, fallback, spec.Fallback, feature)
	}
}

func TestInvokeUpstreamFailure(t *testing.T) {
	boom := errors.New("gemini http status 500: internal")
	client := &fakeLLM{err: boom}
	svc, audit := newTestService(t, client, true)

	_, err := svc.Invoke(context.Background(), Request{
		Feature: prompts.FeatureClaimAssistant,
		Inputs:  map[string]string{"rejectionReason": "Pre-existing condition"},
	})

	var uerr *UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "claim_assistant_v1", uerr.PromptID)
	assert.Equal(t, "Failed to generate assistance. Please check your API key and try again.", uerr.Notice.Description)
	assert.Equal(t, 1, client.callCount())

	items, err := audit.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, invocations.StatusFailed, items[0].Status)
	assert.Equal(t, ErrorCodeUpstream, items[0].ErrorCode)
	assert.Equal(t, uerr.InvocationID, items[0].ID)
}

func TestInvokeUsesCriteria(t *testing.T) {
	client := &fakeLLM{resp: okResponse("Risk: low")}
	svc, _ := newTestService(t, client, true)

	res, err := svc.Invoke(context.Background(), Request{
		Feature:  prompts.FeatureFraudDetection,
		Inputs:   map[string]string{"transactionData": "single claim"},
		Criteria: prompts.Criteria{"response_time_requirement": "fast"},
	})
	require.NoError(t, err)
	assert.Equal(t, "fraud_detection_v2_quick", res.PromptID)
}

func TestInvokeChatSupportNotice(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{resp: okResponse("File within 30 days.")}, true)

	res, err := svc.Invoke(context.Background(), Request{
		Feature: prompts.FeatureChatSupport,
		Inputs:  map[string]string{"userQuestion": "How long do I have to file?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Support response generated using chat_support_v1", res.Notice.Description)
}

func TestPreviewDoesNotCallClient(t *testing.T) {
	client := &fakeLLM{}
	svc, _ := newTestService(t, client, false)

	inv, err := svc.Preview(Request{
		Feature: prompts.FeatureChatSupport,
		Inputs:  map[string]string{"userQuestion": "Is hail covered?"},
	})
	require.NoError(t, err)
	assert.Contains(t, inv.Prompt, "Is hail covered?")
	assert.Zero(t, client.callCount())
}

func TestFeatureSpecsCoverCatalogPlaceholders(t *testing.T) {
	catalog, err := prompts.LoadCatalog()
	require.NoError(t, err)

	for _, key := range catalog.Features() {
		spec, ok := LookupSpec(key)
		require.True(t, ok, key)
		vars := make([]string, 0, len(spec.Inputs))
		for _, in := range spec.Inputs {
			vars = append(vars, in.Variable)
		}
		for _, v := range catalog.Variants(key) {
			assert.ElementsMatch(t, vars, prompts.Placeholders(v.Template), v.ID)
		}
	}
}
