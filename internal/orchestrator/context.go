package orchestrator

import (
	"fmt"
	"strings"

	"architect/internal/agent"
)

// buildContext serializes the conversation history, accumulated decisions and
// requirements, and a readiness banner into the prompt for the decision call.
func buildContext(history []agent.AgentMessage, state agent.GatheredState, isReadyForDesign bool) string {
	if len(history) == 0 {
		return "This is the start of a new conversation. The user wants to design a system architecture."
	}

	var b strings.Builder
	b.WriteString("## Conversation History\n\n")

	var historyDecisions []agent.Decision
	for _, msg := range history {
		switch msg.Role {
		case agent.RoleUser:
			b.WriteString("User: " + msg.Content + "\n")
			if msg.SelectedOption != nil {
				b.WriteString("[Selected: " + msg.SelectedOption.Value + "]\n")
			}
		case agent.RoleAssistant:
			b.WriteString("Assistant: " + msg.Content + "\n")
			if msg.Research != nil && msg.SelectedOption != nil {
				historyDecisions = append(historyDecisions, agent.Decision{
					Topic:  msg.Research.Topic,
					Choice: msg.SelectedOption.Value,
				})
			}
		}
		b.WriteString("\n")
	}

	if len(historyDecisions) > 0 || len(state.Decisions) > 0 {
		b.WriteString("\n## Decisions Made\n")
		for _, d := range append(historyDecisions, state.Decisions...) {
			b.WriteString("- " + d.Topic + ": " + d.Choice + "\n")
		}
	}

	if len(state.Requirements) > 0 {
		b.WriteString("\n## Gathered Requirements\n")
		for _, req := range state.Requirements {
			b.WriteString("- " + req + "\n")
		}
	}

	b.WriteString("\n## Readiness Status\n")
	fmt.Fprintf(&b, "- Questions answered: %d\n", state.QuestionsAnswered)
	fmt.Fprintf(&b, "- Requirements gathered: %d\n", len(state.Requirements))
	fmt.Fprintf(&b, "- Decisions made: %d\n", len(state.Decisions)+len(historyDecisions))
	ready := "NO"
	if isReadyForDesign {
		ready = "YES"
	}
	fmt.Fprintf(&b, "- READY_FOR_DESIGN: %s\n", ready)

	if isReadyForDesign {
		b.WriteString("\nIMPORTANT: The user has provided enough information. You should now use mode: \"design\" to generate the architecture. Do not ask more questions unless absolutely critical.\n")
	}

	return b.String()
}
