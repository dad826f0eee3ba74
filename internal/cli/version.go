package cli

import (
	"encoding/json"
	"runtime"

	"github.com/spf13/cobra"

	"insurance-assistant/internal/prompts"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionJSON bool

type versionInfo struct {
	Version        string `json:"version"`
	CatalogVersion string `json:"catalogVersion"`
	GoVersion      string `json:"goVersion"`
	Platform       string `json:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Version:        version,
			CatalogVersion: prompts.ProjectInfo().Version,
			GoVersion:      runtime.Version(),
			Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		}
		if versionJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		cmd.Printf("promptctl version %s (catalog %s)\n", info.Version, info.CatalogVersion)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output version information as JSON")
	rootCmd.AddCommand(versionCmd)
}
