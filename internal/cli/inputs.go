package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"insurance-assistant/internal/extract"
	"insurance-assistant/internal/prompts"
)

// collectInputs merges --var values with text extracted from --file paths.
// A field given both ways takes the file contents.
func collectInputs(ctx context.Context, vars, files map[string]string) (map[string]string, error) {
	inputs := make(map[string]string, len(vars)+len(files))
	for k, v := range vars {
		inputs[k] = v
	}
	for field, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		name := filepath.Base(path)
		text, err := extract.ExtractTextFromBytes(ctx, data, mime.TypeByExtension(filepath.Ext(name)), name)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", name, err)
		}
		inputs[field] = text
	}
	return inputs, nil
}

func unknownFeature(feature string) error {
	return fmt.Errorf("%w: %q", prompts.ErrUnknownFeature, feature)
}
