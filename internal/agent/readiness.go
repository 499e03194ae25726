package agent

// Readiness is the verdict on whether enough context exists to generate a
// design, with hints about what is still missing.
type Readiness struct {
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing"`
}

// ComputeReadiness decides whether the gathered state supports a meaningful
// design. It is a hint passed to the orchestrator's prompt, not an enforced
// gate: the model may still design early when it judges the context sufficient.
func ComputeReadiness(state GatheredState) Readiness {
	missing := []string{}

	if len(state.Requirements) == 0 {
		missing = append(missing, "system type or core requirements")
	}
	if len(state.Decisions) == 0 && state.QuestionsAnswered < 2 {
		missing = append(missing, "more details about your needs")
	}

	return Readiness{Ready: len(missing) == 0, Missing: missing}
}
