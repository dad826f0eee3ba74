package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"insurance-assistant/internal/assist"
	"insurance-assistant/internal/prompts"
)

var (
	renderVars     map[string]string
	renderFiles    map[string]string
	renderCriteria map[string]string
	renderJSON     bool
)

var renderCmd = &cobra.Command{
	Use:   "render [feature]",
	Short: "Render the filled-in prompt without calling the model",
	Long: `Selects a variant, substitutes the given inputs and prints the
resulting prompt. With --json the full generateContent request body is
printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringToStringVar(&renderVars, "var", nil, "request inputs as field=value pairs")
	renderCmd.Flags().StringToStringVar(&renderFiles, "file", nil, "request inputs read from pdf, docx or txt files as field=path pairs")
	renderCmd.Flags().StringToStringVarP(&renderCriteria, "criteria", "c", nil, "selection criteria as key=value pairs")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "print the request body as JSON")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if service == nil {
		return errNoService
	}
	feature := args[0]
	if !prompts.IsKnownFeature(feature) {
		return unknownFeature(feature)
	}

	inputs, err := collectInputs(context.Background(), renderVars, renderFiles)
	if err != nil {
		return err
	}
	inv, err := service.Preview(assist.Request{
		Feature:  feature,
		Inputs:   inputs,
		Criteria: prompts.Criteria(renderCriteria),
	})
	if err != nil {
		return err
	}

	if renderJSON {
		data, err := json.MarshalIndent(prompts.BuildRequest(inv), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Prompt: %s (temperature=%.2f maxTokens=%d)\n\n", inv.PromptID, inv.Temperature, inv.MaxTokens)
	cmd.Println(inv.Prompt)
	return nil
}
