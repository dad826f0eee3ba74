// Package prompts holds the prompt catalog for every assistant feature and the
// logic that picks a prompt variant, fills in its placeholders and packages the
// generation request.
package prompts

import (
	"errors"
	"fmt"
)

// Feature keys. The set is closed; the catalog rejects anything else.
const (
	FeatureFraudDetection        = "fraud_detection"
	FeatureClaimAssistant        = "claim_assistant"
	FeatureProductRecommendation = "product_recommendation"
	FeatureClauseSimplifier      = "clause_simplifier"
	FeatureChatSupport           = "chat_support"
)

// FeatureKeys lists the known features in display order.
var FeatureKeys = []string{
	FeatureFraudDetection,
	FeatureClaimAssistant,
	FeatureProductRecommendation,
	FeatureClauseSimplifier,
	FeatureChatSupport,
}

var (
	ErrUnknownFeature = errors.New("unknown feature")
	ErrNoPrompts      = errors.New("no prompts available")
)

// Variant is one candidate prompt template plus its generation parameters.
type Variant struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Template    string  `yaml:"prompt" json:"template"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"maxTokens"`
	Priority    int     `yaml:"priority" json:"priority"`
}

// AgentInfo describes the assistant behind a feature.
type AgentInfo struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon,omitempty"`
	Color       string `yaml:"color" json:"color,omitempty"`
}

// FeatureEntry is the catalog record for one feature.
type FeatureEntry struct {
	Key             string
	Agent           AgentInfo
	Variants        []Variant
	DefaultPromptID string
	Factors         []string
}

// Catalog is an immutable feature -> entry table. It is safe for concurrent use.
type Catalog struct {
	order   []string
	entries map[string]FeatureEntry
}

// NewCatalog builds a catalog from explicit entries.
func NewCatalog(entries ...FeatureEntry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]FeatureEntry, len(entries))}
	for _, e := range entries {
		if !IsKnownFeature(e.Key) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, e.Key)
		}
		if _, dup := c.entries[e.Key]; dup {
			return nil, fmt.Errorf("duplicate feature %q", e.Key)
		}
		seen := make(map[string]struct{}, len(e.Variants))
		for _, v := range e.Variants {
			if _, dup := seen[v.ID]; dup {
				return nil, fmt.Errorf("feature %q: duplicate prompt id %q", e.Key, v.ID)
			}
			seen[v.ID] = struct{}{}
		}
		e.Variants = append([]Variant(nil), e.Variants...)
		e.Factors = append([]string(nil), e.Factors...)
		c.entries[e.Key] = e
		c.order = append(c.order, e.Key)
	}
	return c, nil
}

// IsKnownFeature reports whether key belongs to the closed feature set.
func IsKnownFeature(key string) bool {
	for _, k := range FeatureKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Features returns the loaded feature keys in load order.
func (c *Catalog) Features() []string {
	return append([]string(nil), c.order...)
}

// Entry returns a copy of the entry for feature.
func (c *Catalog) Entry(feature string) (FeatureEntry, bool) {
	e, ok := c.entries[feature]
	if !ok {
		return FeatureEntry{}, false
	}
	e.Variants = append([]Variant(nil), e.Variants...)
	e.Factors = append([]string(nil), e.Factors...)
	return e, true
}

// AgentInfo returns the agent description for feature or ErrUnknownFeature.
func (c *Catalog) AgentInfo(feature string) (AgentInfo, error) {
	e, ok := c.entries[feature]
	if !ok {
		return AgentInfo{}, fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
	}
	return e.Agent, nil
}

// Variants returns the ordered variants for feature; empty when unknown.
func (c *Catalog) Variants(feature string) []Variant {
	e, ok := c.entries[feature]
	if !ok {
		return []Variant{}
	}
	return append([]Variant(nil), e.Variants...)
}

// DefaultPromptID returns the declared default variant id for feature.
func (c *Catalog) DefaultPromptID(feature string) string {
	return c.entries[feature].DefaultPromptID
}

// Validate reports configuration drift without failing the load. The selector
// still falls back to the first variant when the default id is missing.
func (c *Catalog) Validate() []string {
	var problems []string
	for _, key := range c.order {
		e := c.entries[key]
		if len(e.Variants) == 0 {
			problems = append(problems, fmt.Sprintf("feature %q has no prompts", key))
			continue
		}
		found := false
		for _, v := range e.Variants {
			if v.ID == e.DefaultPromptID {
				found = true
				break
			}
		}
		if !found {
			problems = append(problems, fmt.Sprintf("feature %q: default prompt %q not found, first variant %q will be used", key, e.DefaultPromptID, e.Variants[0].ID))
		}
	}
	return problems
}
