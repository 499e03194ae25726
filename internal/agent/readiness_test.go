package agent

import (
	"strings"
	"testing"
)

func TestComputeReadinessEmptyState(t *testing.T) {
	r := ComputeReadiness(EmptyGatheredState())
	if r.Ready {
		t.Fatalf("empty state must not be ready")
	}
	found := false
	for _, m := range r.Missing {
		if strings.Contains(m, "requirements") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing list should mention requirements, got %v", r.Missing)
	}
}

func TestComputeReadinessQuestionsWithoutDecisions(t *testing.T) {
	state := GatheredState{
		Requirements:      []string{"real-time chat"},
		Decisions:         []Decision{},
		QuestionsAnswered: 2,
	}
	r := ComputeReadiness(state)
	if !r.Ready {
		t.Fatalf("1 requirement + 2 answered questions should be ready, missing=%v", r.Missing)
	}
	if len(r.Missing) != 0 {
		t.Fatalf("ready state must have empty missing list, got %v", r.Missing)
	}
}

func TestComputeReadinessDecisionCompensatesForQuestions(t *testing.T) {
	state := GatheredState{
		Requirements:      []string{"e-commerce checkout"},
		Decisions:         []Decision{{Topic: "database", Choice: "PostgreSQL"}},
		QuestionsAnswered: 0,
	}
	if r := ComputeReadiness(state); !r.Ready {
		t.Fatalf("a decision should compensate for unanswered questions, missing=%v", r.Missing)
	}
}

func TestComputeReadinessRequirementsAlone(t *testing.T) {
	state := GatheredState{Requirements: []string{"API backend"}}
	r := ComputeReadiness(state)
	if r.Ready {
		t.Fatalf("requirements without decisions or answers must not be ready")
	}
}
