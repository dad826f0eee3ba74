package prompts

import (
	"insurance-assistant/internal/llm"
)

// Sampling parameters shared by every feature.
const (
	DefaultTopP = 0.8
	DefaultTopK = 40
)

// Invocation is the result of selection plus substitution. It is consumed
// to build exactly one request.
type Invocation struct {
	Feature     string
	PromptID    string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Resolver combines the selector with variable substitution.
type Resolver struct {
	Catalog  *Catalog
	Selector *Selector
}

// NewResolver returns a resolver using the default scoring rules.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{Catalog: catalog, Selector: NewSelector(catalog, nil)}
}

// Resolve picks a variant for feature and substitutes vars into it.
func (r *Resolver) Resolve(feature string, vars map[string]string, criteria Criteria) (Invocation, error) {
	variant, err := r.Selector.Select(feature, criteria)
	if err != nil {
		return Invocation{}, err
	}
	return Invocation{
		Feature:     feature,
		PromptID:    variant.ID,
		Prompt:      Substitute(variant.Template, vars),
		Temperature: variant.Temperature,
		MaxTokens:   variant.MaxTokens,
	}, nil
}

// BuildRequest packages inv into the generateContent body.
func BuildRequest(inv Invocation) llm.GenerateRequest {
	return llm.GenerateRequest{
		Contents: []llm.Content{
			{Parts: []llm.Part{{Text: inv.Prompt}}},
		},
		GenerationConfig: llm.GenerationConfig{
			Temperature:     inv.Temperature,
			MaxOutputTokens: inv.MaxTokens,
			TopP:            DefaultTopP,
			TopK:            DefaultTopK,
		},
	}
}
