package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"insurance-assistant/internal/assist"
	"insurance-assistant/internal/prompts"
)

var (
	invokeVars     map[string]string
	invokeFiles    map[string]string
	invokeCriteria map[string]string
	invokeHTML     bool
	invokeJSON     bool
)

var invokeCmd = &cobra.Command{
	Use:   "invoke [feature]",
	Short: "Run a feature against the model",
	Long: `Validates the inputs, selects a variant, calls Gemini once and prints
the generated text. Requires GEMINI_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringToStringVar(&invokeVars, "var", nil, "request inputs as field=value pairs")
	invokeCmd.Flags().StringToStringVar(&invokeFiles, "file", nil, "request inputs read from pdf, docx or txt files as field=path pairs")
	invokeCmd.Flags().StringToStringVarP(&invokeCriteria, "criteria", "c", nil, "selection criteria as key=value pairs")
	invokeCmd.Flags().BoolVar(&invokeHTML, "html", false, "print the rendered HTML instead of markdown")
	invokeCmd.Flags().BoolVar(&invokeJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(cmd *cobra.Command, args []string) error {
	if service == nil {
		return errNoService
	}
	ctx := context.Background()

	inputs, err := collectInputs(ctx, invokeVars, invokeFiles)
	if err != nil {
		return err
	}
	result, err := service.Invoke(ctx, assist.Request{
		Feature:  args[0],
		Inputs:   inputs,
		Criteria: prompts.Criteria(invokeCriteria),
	})
	if err != nil {
		return describeInvokeError(err)
	}

	if invokeJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.PrintErrf("%s: %s\n", result.Notice.Title, result.Notice.Description)
	if invokeHTML {
		cmd.Println(result.HTML)
	} else {
		cmd.Println(result.Text)
	}
	return nil
}

func describeInvokeError(err error) error {
	var verr *assist.ValidationError
	var uerr *assist.UpstreamError
	switch {
	case errors.Is(err, assist.ErrMissingAPIKey):
		return fmt.Errorf("%s: %s", assist.MissingKeyNotice.Title, assist.MissingKeyNotice.Description)
	case errors.As(err, &verr):
		return fmt.Errorf("%s: %s", verr.Notice.Title, verr.Notice.Description)
	case errors.As(err, &uerr):
		return fmt.Errorf("%s: %s (%w)", uerr.Notice.Title, uerr.Notice.Description, uerr.Err)
	default:
		return err
	}
}
