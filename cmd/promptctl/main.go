package main

import (
	"os"

	"insurance-assistant/internal/assist"
	"insurance-assistant/internal/bootstrap"
	"insurance-assistant/internal/cli"
	"insurance-assistant/internal/invocations"
	"insurance-assistant/internal/prompts"
	"insurance-assistant/internal/shared/config"
	"insurance-assistant/internal/shared/telemetry"
)

func main() {
	// Keep stdout for command output.
	telemetry.SetOutput(os.Stderr)
	cfg := config.Load()

	catalog, err := prompts.LoadCatalog()
	if err != nil {
		telemetry.Error("promptctl.catalog_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	client, err := bootstrap.BuildLLM(cfg)
	if err != nil {
		telemetry.Error("promptctl.gemini_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	cli.SetService(assist.NewService(catalog, client, cfg.HasGeminiKey(), invocations.NewMemoryRepo()))
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
