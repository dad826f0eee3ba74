package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"insurance-assistant/internal/prompts"
)

var selectCriteria map[string]string

var selectCmd = &cobra.Command{
	Use:   "select [feature]",
	Short: "Show which prompt variant the selector picks",
	Long: `Scores every variant of a feature against the given criteria and
prints the winner followed by the full ranking. Without criteria the
catalog default is picked.`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringToStringVarP(&selectCriteria, "criteria", "c", nil, "selection criteria as key=value pairs")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	if service == nil {
		return errNoService
	}
	feature := args[0]
	if !prompts.IsKnownFeature(feature) {
		return unknownFeature(feature)
	}

	selector := service.Resolver.Selector
	criteria := prompts.Criteria(selectCriteria)
	chosen, err := selector.Select(feature, criteria)
	if err != nil {
		return err
	}
	cmd.Printf("Selected: %s\n", chosen.ID)

	if len(criteria) == 0 {
		cmd.Println("No criteria given; using catalog default.")
		return nil
	}

	scores := selector.Scores(feature, criteria)
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	cmd.Println("Scores:")
	for _, id := range ids {
		cmd.Printf("  %-40s %d\n", id, scores[id])
	}
	return nil
}
