package orchestrator

import (
	"context"
	"errors"
	"testing"

	"architect/internal/agent"
	"architect/internal/design"
	"architect/internal/llm"
	"architect/internal/research"
)

func collect(t *testing.T, ch <-chan agent.StreamEvent) []agent.StreamEvent {
	t.Helper()
	var events []agent.StreamEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func eventTypes(events []agent.StreamEvent) []agent.EventType {
	types := make([]agent.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func hasType(events []agent.StreamEvent, typ agent.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func newTestOrchestrator(fake *llm.FakeClient) *Orchestrator {
	// A nil provider makes the executor fall back to canned comparisons,
	// which is exactly what offline tests need.
	return New(fake, research.NewExecutor(nil), design.NewGenerator(fake))
}

func designGraph() agent.DesignOutput {
	return agent.DesignOutput{
		Nodes: []agent.DesignNode{
			{ID: "web-client", Label: "React App", Type: agent.NodeClient, Tier: 1},
			{ID: "api-gateway", Label: "Kong", Type: agent.NodeGateway, Tier: 3},
			{ID: "chat-service", Label: "Chat Service", Type: agent.NodeService, Tier: 4},
			{ID: "postgres", Label: "PostgreSQL", Type: agent.NodeDatabase, Tier: 5},
		},
		Edges: []agent.DesignEdge{
			{ID: "e1", Source: "web-client", Target: "api-gateway"},
			{ID: "e2", Source: "api-gateway", Target: "chat-service"},
			{ID: "e3", Source: "chat-service", Target: "postgres"},
		},
		Summary: "A compact chat architecture.",
	}
}

func TestClarifyTurn(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeStep{Object: agent.OrchestratorOutput{
		Mode:    agent.ModeClarify,
		Message: "Great idea! To design the right architecture, I need to understand your scale.",
		Question: &agent.ClarifyingQuestion{
			ID:       "q-scale",
			Question: "What's your expected user scale?",
			Options: []agent.QuestionOption{
				{ID: "small", Label: "Small (< 1K users)", Value: "small-scale"},
				{ID: "large", Label: "Large (100K+)", Value: "large-scale"},
			},
			AllowCustom: true,
		},
		MissingInfo: []string{"scale"},
	}})

	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{
		Message:       "I want to build a chat app",
		GatheredState: agent.EmptyGatheredState(),
	}))

	if !hasType(events, agent.EventActivity) || !hasType(events, agent.EventMessage) || !hasType(events, agent.EventQuestion) {
		t.Fatalf("clarify turn must emit activity, message and question, got %v", eventTypes(events))
	}
	if hasType(events, agent.EventDesign) {
		t.Fatalf("clarify turn must not emit a design, got %v", eventTypes(events))
	}

	last := events[len(events)-1]
	if last.Type != agent.EventDone {
		t.Fatalf("stream must terminate with done, got %v", last.Type)
	}
	if done, ok := last.Data.(agent.DoneData); !ok || !done.Success {
		t.Fatalf("expected successful done event, got %#v", last.Data)
	}

	// Activities precede the message they describe.
	if events[0].Type != agent.EventActivity {
		t.Fatalf("first event must be the analyzing activity, got %v", events[0].Type)
	}
}

func TestRespondTurnEmitsMessageOnly(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeStep{Object: agent.OrchestratorOutput{
		Mode:    agent.ModeRespond,
		Message: "Great choice! Let me continue gathering requirements.",
	}})

	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{Message: "thanks"}))

	if !hasType(events, agent.EventMessage) {
		t.Fatalf("respond turn must emit the message")
	}
	for _, ev := range events {
		if ev.Type == agent.EventQuestion || ev.Type == agent.EventResearch || ev.Type == agent.EventDesign {
			t.Fatalf("respond turn leaked a %v event", ev.Type)
		}
	}
}

func TestDesignTurn(t *testing.T) {
	fake := llm.NewFakeClient(
		llm.FakeStep{Object: agent.OrchestratorOutput{
			Mode:    agent.ModeDesign,
			Message: "Perfect! Generating your architecture now...",
			DesignRequirements: &agent.DesignRequirements{
				SystemType:   "Real-time chat application",
				Scale:        "100K+ concurrent users",
				Requirements: []string{"Real-time messaging", "Message persistence"},
				Decisions:    []agent.Decision{{Topic: "database", Choice: "PostgreSQL"}},
			},
			ReadyForDesign: true,
		}},
		llm.FakeStep{Object: designGraph()},
	)

	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{
		Message: "go ahead",
		GatheredState: agent.GatheredState{
			Requirements:      []string{"real-time chat"},
			Decisions:         []agent.Decision{{Topic: "database", Choice: "PostgreSQL"}},
			QuestionsAnswered: 2,
		},
		IsReadyForDesign: true,
	}))

	var got *agent.DesignOutput
	for _, ev := range events {
		if ev.Type == agent.EventDesign {
			d := ev.Data.(agent.DesignOutput)
			got = &d
		}
	}
	if got == nil {
		t.Fatalf("design turn must emit a design event, got %v", eventTypes(events))
	}
	if len(got.Nodes) < 3 || len(got.Nodes) > 15 {
		t.Fatalf("node count %d outside [3,15]", len(got.Nodes))
	}
	ids := map[string]bool{}
	for _, n := range got.Nodes {
		ids[n.ID] = true
	}
	for _, e := range got.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			t.Fatalf("edge %s references missing node", e.ID)
		}
	}
}

func TestResearchTurnFallsBackToCannedOptions(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeStep{Object: agent.OrchestratorOutput{
		Mode:            agent.ModeResearch,
		Message:         "Let me research the best database options.",
		ResearchTopic:   "database",
		ResearchQuery:   "best database for real-time chat",
		ResearchContext: "100K concurrent users with persistent history",
	}})

	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{
		Message:       "which database?",
		GatheredState: agent.EmptyGatheredState(),
	}))

	var got *agent.ResearchOutput
	for _, ev := range events {
		if ev.Type == agent.EventResearch {
			r := ev.Data.(agent.ResearchOutput)
			got = &r
		}
	}
	if got == nil {
		t.Fatalf("research turn must emit a research event, got %v", eventTypes(events))
	}
	if len(got.Options) < 2 || len(got.Options) > 4 {
		t.Fatalf("expected 2-4 options, got %d", len(got.Options))
	}
	if hasType(events, agent.EventDesign) {
		t.Fatalf("no designRequirements were supplied, design must not run")
	}
}

func TestResearchTurnChainsIntoDesignWhenReady(t *testing.T) {
	fake := llm.NewFakeClient(
		llm.FakeStep{Object: agent.OrchestratorOutput{
			Mode:            agent.ModeResearch,
			Message:         "Researching caches, then designing.",
			ResearchTopic:   "cache",
			ResearchQuery:   "best cache for session storage",
			ResearchContext: "web app with 50K users",
			DesignRequirements: &agent.DesignRequirements{
				SystemType:   "web app",
				Scale:        "50K users",
				Requirements: []string{"session storage"},
				Decisions:    []agent.Decision{},
			},
		}},
		llm.FakeStep{Object: designGraph()},
	)

	// One requirement plus the decision synthesized from the research result
	// makes the local readiness check pass, so the turn continues into design
	// without waiting for another user message.
	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{
		Message:       "pick a cache for me",
		GatheredState: agent.GatheredState{Requirements: []string{"session storage"}, Decisions: []agent.Decision{}},
	}))

	if !hasType(events, agent.EventResearch) {
		t.Fatalf("expected research event, got %v", eventTypes(events))
	}
	if !hasType(events, agent.EventDesign) {
		t.Fatalf("expected chained design event, got %v", eventTypes(events))
	}

	// Research must come before design in the stream.
	researchAt, designAt := -1, -1
	for i, ev := range events {
		if ev.Type == agent.EventResearch && researchAt == -1 {
			researchAt = i
		}
		if ev.Type == agent.EventDesign && designAt == -1 {
			designAt = i
		}
	}
	if researchAt > designAt {
		t.Fatalf("research result must precede the design it triggered")
	}
}

func TestFallbackAfterPersistentRecoverableFailures(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeStep{Err: llm.NewRecoverableError(errors.New("no object generated"))})

	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{
		Message:       "hello",
		GatheredState: agent.EmptyGatheredState(),
	}))

	if got := fake.Calls(); got != 3 {
		t.Fatalf("expected 3 generation attempts, got %d", got)
	}
	if hasType(events, agent.EventError) {
		t.Fatalf("recoverable failure must not surface as an error event")
	}

	var q *agent.ClarifyingQuestion
	for _, ev := range events {
		if ev.Type == agent.EventQuestion {
			cq := ev.Data.(agent.ClarifyingQuestion)
			q = &cq
		}
	}
	if q == nil || q.Question == "" {
		t.Fatalf("fallback turn must carry a non-empty clarifying question, got %v", eventTypes(events))
	}
	if done := events[len(events)-1]; done.Type != agent.EventDone || !done.Data.(agent.DoneData).Success {
		t.Fatalf("fallback turn still completes successfully")
	}
}

func TestUnrecognizedModeDegradesToMessage(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeStep{Object: map[string]any{
		"mode":           "negotiate",
		"message":        "Let me think about that.",
		"readyForDesign": false,
	}})

	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{Message: "hm"}))

	if !hasType(events, agent.EventMessage) {
		t.Fatalf("unknown mode should still deliver the message")
	}
	if hasType(events, agent.EventError) {
		t.Fatalf("unknown mode is not an error")
	}
}

func TestPermanentErrorTerminatesStreamCleanly(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeStep{Err: errors.New("provider quota exhausted")})

	events := collect(t, newTestOrchestrator(fake).Run(context.Background(), TurnInput{Message: "hi"}))

	if !hasType(events, agent.EventError) {
		t.Fatalf("permanent failure must emit an error event, got %v", eventTypes(events))
	}
	last := events[len(events)-1]
	if last.Type != agent.EventDone {
		t.Fatalf("stream must still terminate with done, got %v", last.Type)
	}
	if last.Data.(agent.DoneData).Success {
		t.Fatalf("done event must report failure")
	}
	for _, ev := range events {
		if ev.Type == agent.EventError {
			msg := ev.Data.(agent.ErrorData).Message
			if msg == "" || msg == "provider quota exhausted" {
				t.Fatalf("error message must be user-safe and non-empty, got %q", msg)
			}
		}
	}
}

func TestCancellationStopsProducer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := llm.NewFakeClient(llm.FakeStep{Object: agent.OrchestratorOutput{Mode: agent.ModeRespond, Message: "late"}})
	ch := newTestOrchestrator(fake).Run(ctx, TurnInput{Message: "hi"})

	for range ch {
	}
	// Reaching here means the channel closed; a canceled turn must not hang.
}
