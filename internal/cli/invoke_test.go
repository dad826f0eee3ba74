package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-assistant/internal/llm"
)

func TestInvokeCmd_PrintsText(t *testing.T) {
	client := &stubLLM{resp: llm.Response{Text: "A copay is a **fixed** fee.", Found: true}}
	cleanup := setupTestService(t, client, true)
	defer cleanup()

	out, errOut, err := execute("invoke", "chat_support", "--var", "userQuestion=What is a copay?")

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, out, "A copay is a **fixed** fee.")
	assert.Contains(t, errOut, "chat_support_v1")
}

func TestInvokeCmd_HTML(t *testing.T) {
	client := &stubLLM{resp: llm.Response{Text: "A copay is a **fixed** fee.", Found: true}}
	cleanup := setupTestService(t, client, true)
	defer cleanup()

	out, _, err := execute("invoke", "chat_support", "--var", "userQuestion=What is a copay?", "--html")

	require.NoError(t, err)
	assert.Contains(t, out, "<strong class=\"font-semibold\">fixed</strong>")
}

func TestInvokeCmd_MissingKey(t *testing.T) {
	client := &stubLLM{}
	cleanup := setupTestService(t, client, false)
	defer cleanup()

	_, _, err := execute("invoke", "chat_support", "--var", "userQuestion=Hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API Key Missing")
	assert.Zero(t, client.calls)
}

func TestInvokeCmd_MissingInputs(t *testing.T) {
	client := &stubLLM{}
	cleanup := setupTestService(t, client, true)
	defer cleanup()

	_, _, err := execute("invoke", "product_recommendation", "--var", "age=34")

	require.Error(t, err)
	assert.Zero(t, client.calls)
}

func TestInvokeCmd_UpstreamFailure(t *testing.T) {
	client := &stubLLM{err: errors.New("gemini http status 500: boom")}
	cleanup := setupTestService(t, client, true)
	defer cleanup()

	_, _, err := execute("invoke", "fraud_detection", "--var", "transactionData=amount=9000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini http status 500")
}
