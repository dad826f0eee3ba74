// Package assist runs one assistant feature end to end: input checks, prompt
// selection, the generation call, fallback text, rendering and the audit record.
package assist

import (
	"insurance-assistant/internal/prompts"
)

// Input maps a request field to the template variable it fills.
type Input struct {
	Field    string `json:"field"`
	Variable string `json:"variable"`
	Label    string `json:"label"`
}

// Notice is a short title/description pair shown to the user.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FeatureSpec describes how a feature is invoked and what the user is told.
type FeatureSpec struct {
	Key      string
	Inputs   []Input
	Fallback string
	// Missing is used when required inputs are blank. An empty Description
	// lists the blank fields instead.
	Missing Notice
	// Success.Description may reference {promptId}.
	Success Notice
	Failure Notice
}

// FeatureSpecs is the per-feature invocation table.
var FeatureSpecs = map[string]FeatureSpec{
	prompts.FeatureFraudDetection: {
		Key:      prompts.FeatureFraudDetection,
		Inputs:   []Input{{Field: "transactionData", Variable: "transaction_data", Label: "Transaction or claim details"}},
		Fallback: "No analysis available",
		Missing:  Notice{Title: "No Data Provided", Description: "Please enter transaction or claim details to analyze."},
		Success:  Notice{Title: "Analysis Complete", Description: "Fraud detection analysis has been generated using {promptId}."},
		Failure:  Notice{Title: "Analysis Failed", Description: "Failed to analyze the data. Please check your API key and try again."},
	},
	prompts.FeatureClaimAssistant: {
		Key:      prompts.FeatureClaimAssistant,
		Inputs:   []Input{{Field: "rejectionReason", Variable: "rejection_reason", Label: "Claim rejection details"}},
		Fallback: "No assistance available",
		Missing:  Notice{Title: "No Information Provided", Description: "Please enter your claim rejection details."},
		Success:  Notice{Title: "Assistance Generated", Description: "Claim help and appeal draft have been created using {promptId}."},
		Failure:  Notice{Title: "Request Failed", Description: "Failed to generate assistance. Please check your API key and try again."},
	},
	prompts.FeatureProductRecommendation: {
		Key: prompts.FeatureProductRecommendation,
		Inputs: []Input{
			{Field: "age", Variable: "age", Label: "Age"},
			{Field: "income", Variable: "income", Label: "Annual income"},
			{Field: "familySize", Variable: "family_size", Label: "Family size"},
			{Field: "coverageGoal", Variable: "coverageGoal", Label: "Coverage goal"},
		},
		Fallback: "No recommendations available",
		Missing:  Notice{Title: "Incomplete Profile"},
		Success:  Notice{Title: "Recommendations Generated", Description: "Personalized insurance recommendations are ready ({promptId})."},
		Failure:  Notice{Title: "Request Failed", Description: "Failed to generate recommendations. Please check your API key and try again."},
	},
	prompts.FeatureClauseSimplifier: {
		Key:      prompts.FeatureClauseSimplifier,
		Inputs:   []Input{{Field: "policyText", Variable: "policy_text", Label: "Policy text"}},
		Fallback: "No simplification available",
		Missing:  Notice{Title: "No Text Provided", Description: "Please enter insurance policy text or clauses to simplify."},
		Success:  Notice{Title: "Simplification Complete", Description: "Policy clauses have been simplified into plain English using {promptId}."},
		Failure:  Notice{Title: "Request Failed", Description: "Failed to simplify clauses. Please check your API key and try again."},
	},
	prompts.FeatureChatSupport: {
		Key:      prompts.FeatureChatSupport,
		Inputs:   []Input{{Field: "userQuestion", Variable: "user_question", Label: "Question"}},
		Fallback: "No response available",
		Missing:  Notice{Title: "No Question Provided", Description: "Please enter your insurance-related question."},
		Success:  Notice{Title: "Response Generated", Description: "Support response generated using {promptId}"},
		Failure:  Notice{Title: "Request Failed", Description: "Failed to generate support response. Please check your API key and try again."},
	},
}

// LookupSpec returns the invocation spec for feature.
func LookupSpec(feature string) (FeatureSpec, bool) {
	spec, ok := FeatureSpecs[feature]
	return spec, ok
}

// RequiredFields lists the request fields of spec in order.
func (s FeatureSpec) RequiredFields() []string {
	out := make([]string, 0, len(s.Inputs))
	for _, in := range s.Inputs {
		out = append(out, in.Field)
	}
	return out
}

// Variables maps request inputs onto template variables. Unknown input
// fields are dropped.
func (s FeatureSpec) Variables(inputs map[string]string) map[string]string {
	vars := make(map[string]string, len(s.Inputs))
	for _, in := range s.Inputs {
		if v, ok := inputs[in.Field]; ok {
			vars[in.Variable] = v
		}
	}
	return vars
}

// SuccessNotice renders the success notice for promptID.
func (s FeatureSpec) SuccessNotice(promptID string) Notice {
	return Notice{
		Title:       s.Success.Title,
		Description: prompts.Substitute(s.Success.Description, map[string]string{"promptId": promptID}),
	}
}
