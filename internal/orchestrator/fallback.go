package orchestrator

import "architect/internal/agent"

// fallbackOutput is returned when the decision call keeps failing with
// recoverable errors. It guarantees the turn still produces some output: a
// generic clarifying question about project type.
func fallbackOutput() agent.OrchestratorOutput {
	return agent.OrchestratorOutput{
		Mode:    agent.ModeClarify,
		Message: "I'd love to help you design your architecture! Let me start by understanding your project better.",
		Question: &agent.ClarifyingQuestion{
			ID:       "q-project-type",
			Question: "What type of application are you building?",
			Context:  "This helps me recommend the right architecture pattern",
			Options: []agent.QuestionOption{
				{ID: "web", Label: "Web Application", Value: "web-app"},
				{ID: "mobile", Label: "Mobile App", Value: "mobile-app"},
				{ID: "api", Label: "API / Backend", Value: "api-backend"},
				{ID: "realtime", Label: "Real-time System", Value: "realtime-system"},
				{ID: "other", Label: "Something else", Value: "other"},
			},
			AllowCustom: true,
			MultiSelect: false,
		},
		ReadyForDesign: false,
		MissingInfo:    []string{"project type", "scale", "requirements"},
	}
}
