package prompts

import (
	"fmt"
	"sort"
)

// Selector chooses one variant per feature.
type Selector struct {
	catalog *Catalog
	rules   ScoringRules
}

// NewSelector returns a selector over catalog. A nil rules table means
// DefaultScoringRules.
func NewSelector(catalog *Catalog, rules ScoringRules) *Selector {
	if rules == nil {
		rules = DefaultScoringRules
	}
	return &Selector{catalog: catalog, rules: rules}
}

// Select returns the default variant when criteria is empty and the best
// scoring variant otherwise. Ties keep catalog order.
func (s *Selector) Select(feature string, criteria Criteria) (Variant, error) {
	variants := s.catalog.Variants(feature)
	if len(variants) == 0 {
		return Variant{}, fmt.Errorf("%w for agent: %s", ErrNoPrompts, feature)
	}

	if len(criteria) == 0 {
		defaultID := s.catalog.DefaultPromptID(feature)
		for _, v := range variants {
			if v.ID == defaultID {
				return v, nil
			}
		}
		return variants[0], nil
	}

	type scored struct {
		variant Variant
		score   int
	}
	ranked := make([]scored, len(variants))
	for i, v := range variants {
		ranked[i] = scored{variant: v, score: s.rules.Score(feature, v, criteria)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked[0].variant, nil
}

// Scores exposes the per-variant scores for inspection tools.
func (s *Selector) Scores(feature string, criteria Criteria) map[string]int {
	variants := s.catalog.Variants(feature)
	out := make(map[string]int, len(variants))
	for _, v := range variants {
		out[v.ID] = s.rules.Score(feature, v, criteria)
	}
	return out
}
