package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"insurance-assistant/internal/prompts"
)

var featuresJSON bool

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List assistant features",
	Args:  cobra.NoArgs,
	RunE:  runFeatures,
}

var variantsCmd = &cobra.Command{
	Use:   "variants [feature]",
	Short: "List the prompt variants of a feature",
	Args:  cobra.ExactArgs(1),
	RunE:  runVariants,
}

func init() {
	featuresCmd.Flags().BoolVar(&featuresJSON, "json", false, "output features as JSON")
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(variantsCmd)
}

type featureRow struct {
	Key             string `json:"key"`
	Agent           string `json:"agent"`
	DefaultPromptID string `json:"defaultPromptId"`
	Variants        int    `json:"variants"`
}

func runFeatures(cmd *cobra.Command, args []string) error {
	if service == nil {
		return errNoService
	}
	catalog := service.Catalog()

	rows := make([]featureRow, 0, len(catalog.Features()))
	for _, key := range catalog.Features() {
		entry, _ := catalog.Entry(key)
		rows = append(rows, featureRow{
			Key:             key,
			Agent:           entry.Agent.Name,
			DefaultPromptID: entry.DefaultPromptID,
			Variants:        len(entry.Variants),
		})
	}

	if featuresJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal features: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for _, r := range rows {
		cmd.Printf("%-24s %-36s default=%s variants=%d\n", r.Key, r.Agent, r.DefaultPromptID, r.Variants)
	}
	return nil
}

func runVariants(cmd *cobra.Command, args []string) error {
	if service == nil {
		return errNoService
	}
	feature := args[0]
	catalog := service.Catalog()

	info, err := catalog.AgentInfo(feature)
	if err != nil {
		return err
	}
	variants := catalog.Variants(feature)
	if len(variants) == 0 {
		return fmt.Errorf("%w for agent: %s", prompts.ErrNoPrompts, feature)
	}
	defaultID := catalog.DefaultPromptID(feature)

	cmd.Printf("%s (%s)\n", info.Name, feature)
	for _, v := range variants {
		marker := " "
		if v.ID == defaultID {
			marker = "*"
		}
		cmd.Printf("%s %-40s priority=%d temperature=%.2f maxTokens=%d  %s\n",
			marker, v.ID, v.Priority, v.Temperature, v.MaxTokens, v.Name)
	}
	return nil
}
