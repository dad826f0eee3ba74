package prompts

// Project describes the platform as a whole.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	AIModel     string `json:"aiModel"`
	Framework   string `json:"framework"`
}

// ProjectInfo returns the static platform description.
func ProjectInfo() Project {
	return Project{
		Name:        "AI Insurance Assistant Platform",
		Description: "Multi-agent GenAI platform for insurance fraud detection, claims assistance, product recommendations, policy clarification, and customer support",
		Version:     "2.0.0",
		AIModel:     "Google Gemini 1.5 Flash",
		Framework:   "Go + Gin",
	}
}
