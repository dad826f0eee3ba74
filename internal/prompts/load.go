package prompts

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFiles embed.FS

type catalogFile struct {
	AgentInfo         AgentInfo `yaml:"agent_info"`
	Prompts           []Variant `yaml:"prompts"`
	SelectionCriteria struct {
		DefaultPrompt string   `yaml:"default_prompt"`
		Factors       []string `yaml:"factors"`
	} `yaml:"selection_criteria"`
}

// LoadCatalog decodes the embedded catalog files. The file name (without
// extension) is the feature key.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(catalogFiles, "catalog")
}

// LoadCatalogFS decodes every *.yaml file under dir in fsys. Features are
// ordered as in FeatureKeys.
func LoadCatalogFS(fsys fs.FS, dir string) (*Catalog, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]FeatureEntry, len(matches))
	for _, name := range matches {
		key := strings.TrimSuffix(path.Base(name), ".yaml")
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		byKey[key] = FeatureEntry{
			Key:             key,
			Agent:           file.AgentInfo,
			Variants:        file.Prompts,
			DefaultPromptID: file.SelectionCriteria.DefaultPrompt,
			Factors:         file.SelectionCriteria.Factors,
		}
	}

	entries := make([]FeatureEntry, 0, len(byKey))
	for _, key := range FeatureKeys {
		if e, ok := byKey[key]; ok {
			entries = append(entries, e)
			delete(byKey, key)
		}
	}
	for key := range byKey {
		return nil, fmt.Errorf("%w: catalog file %q", ErrUnknownFeature, key)
	}
	return NewCatalog(entries...)
}
