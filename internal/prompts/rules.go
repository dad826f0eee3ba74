package prompts

import "strings"

// Criteria carries optional categorical hints, e.g. budget_constraints=low.
type Criteria map[string]string

// Rule awards Bonus to variants whose id contains IDContains when the
// criterion has the given value.
type Rule struct {
	Criterion  string
	Value      string
	IDContains string
	Bonus      int
}

// ScoringRules maps a feature key to its bonus rules.
type ScoringRules map[string][]Rule

const (
	primaryBonus   = 20
	secondaryBonus = 15
	priorityWeight = 10
)

// DefaultScoringRules is the selection heuristic. Features without an entry
// are scored by priority alone.
var DefaultScoringRules = ScoringRules{
	FeatureFraudDetection: {
		{Criterion: "response_time_requirement", Value: "fast", IDContains: "v2", Bonus: primaryBonus},
		{Criterion: "response_time_requirement", Value: "detailed", IDContains: "v3", Bonus: primaryBonus},
		{Criterion: "response_time_requirement", Value: "standard", IDContains: "v1", Bonus: primaryBonus},
		{Criterion: "complexity_level", Value: "simple", IDContains: "v2", Bonus: secondaryBonus},
		{Criterion: "complexity_level", Value: "complex", IDContains: "v3", Bonus: secondaryBonus},
		{Criterion: "complexity_level", Value: "moderate", IDContains: "v1", Bonus: secondaryBonus},
	},
	FeatureClaimAssistant: {
		{Criterion: "complexity_of_rejection", Value: "simple", IDContains: "v2", Bonus: primaryBonus},
		{Criterion: "complexity_of_rejection", Value: "complex", IDContains: "v3", Bonus: primaryBonus},
		{Criterion: "complexity_of_rejection", Value: "moderate", IDContains: "v1", Bonus: primaryBonus},
		{Criterion: "legal_involvement", Value: "extensive", IDContains: "v3", Bonus: secondaryBonus},
		{Criterion: "legal_involvement", Value: "none", IDContains: "v2", Bonus: secondaryBonus},
		{Criterion: "legal_involvement", Value: "basic", IDContains: "v1", Bonus: secondaryBonus},
	},
	FeatureProductRecommendation: {
		{Criterion: "budget_constraints", Value: "low", IDContains: "v2", Bonus: primaryBonus},
		{Criterion: "budget_constraints", Value: "high", IDContains: "v3", Bonus: primaryBonus},
		{Criterion: "budget_constraints", Value: "medium", IDContains: "v1", Bonus: primaryBonus},
		{Criterion: "coverage_complexity", Value: "basic", IDContains: "v2", Bonus: secondaryBonus},
		{Criterion: "coverage_complexity", Value: "comprehensive", IDContains: "v3", Bonus: secondaryBonus},
		{Criterion: "coverage_complexity", Value: "standard", IDContains: "v1", Bonus: secondaryBonus},
	},
	FeatureClauseSimplifier: {
		{Criterion: "complexity_of_language", Value: "simple", IDContains: "v2", Bonus: primaryBonus},
		{Criterion: "complexity_of_language", Value: "complex", IDContains: "v3", Bonus: primaryBonus},
		{Criterion: "complexity_of_language", Value: "moderate", IDContains: "v1", Bonus: primaryBonus},
		{Criterion: "legal_importance", Value: "high", IDContains: "v3", Bonus: secondaryBonus},
		{Criterion: "legal_importance", Value: "low", IDContains: "v2", Bonus: secondaryBonus},
		{Criterion: "legal_importance", Value: "medium", IDContains: "v1", Bonus: secondaryBonus},
	},
}

// Score computes the selection score of v for feature under criteria.
func (r ScoringRules) Score(feature string, v Variant, criteria Criteria) int {
	rules, ok := r[feature]
	if !ok {
		return v.Priority
	}
	score := v.Priority * priorityWeight
	for _, rule := range rules {
		if criteria[rule.Criterion] == rule.Value && strings.Contains(v.ID, rule.IDContains) {
			score += rule.Bonus
		}
	}
	return score
}
