// Package cli implements promptctl, a command line tool for inspecting the
// prompt catalog and running features against the model.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"insurance-assistant/internal/assist"
)

// service backs every subcommand. Set by main or by tests.
var service *assist.Service

var errNoService = errors.New("assist service not configured")

var rootCmd = &cobra.Command{
	Use:   "promptctl",
	Short: "Inspect and exercise the insurance assistant prompts",
	Long: `promptctl lists the assistant features and their prompt variants,
shows which variant the selector picks for a set of criteria, renders
filled-in prompts and invokes features against Gemini.`,
	SilenceUsage: true,
}

// SetService installs the service used by the commands.
func SetService(svc *assist.Service) {
	service = svc
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
