package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"insurance-assistant/internal/assist"
	"insurance-assistant/internal/invocations"
	"insurance-assistant/internal/llm"
	"insurance-assistant/internal/prompts"
)

type stubLLM struct {
	resp  llm.Response
	err   error
	calls int
}

func (s *stubLLM) GenerateContent(ctx context.Context, req llm.GenerateRequest) (llm.Response, error) {
	s.calls++
	return s.resp, s.err
}

func setupTestService(t *testing.T, client llm.Client, hasKey bool) func() {
	t.Helper()
	catalog, err := prompts.LoadCatalog()
	require.NoError(t, err)

	old := service
	service = assist.NewService(catalog, client, hasKey, invocations.NewMemoryRepo())
	return func() { service = old }
}

// resetFlags clears flag state left by earlier executions of rootCmd.
func resetFlags() {
	versionJSON = false
	featuresJSON = false
	selectCriteria = map[string]string{}
	renderVars = map[string]string{}
	renderFiles = map[string]string{}
	renderCriteria = map[string]string{}
	renderJSON = false
	invokeVars = map[string]string{}
	invokeFiles = map[string]string{}
	invokeCriteria = map[string]string{}
	invokeHTML = false
	invokeJSON = false
}

func execute(args ...string) (string, string, error) {
	resetFlags()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
