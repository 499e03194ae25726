package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"architect/internal/agent"
	"architect/internal/design"
	"architect/internal/llm"
	"architect/internal/research"
)

const (
	// decisionAttempts is the initial call plus two retries for recoverable
	// generation failures.
	decisionAttempts = 3
	retryBaseDelay   = 300 * time.Millisecond
)

// TurnInput is everything the client submits for one turn.
type TurnInput struct {
	Message          string               `json:"message"`
	Messages         []agent.AgentMessage `json:"messages"`
	GatheredState    agent.GatheredState  `json:"gatheredState"`
	IsReadyForDesign bool                 `json:"isReadyForDesign"`
}

// Orchestrator drives the per-turn state machine: it classifies the next
// action, invokes the research executor or design generator as needed, and
// emits an ordered sequence of stream events.
type Orchestrator struct {
	llm      llm.Client
	research *research.Executor
	design   *design.Generator
}

func New(client llm.Client, researcher *research.Executor, designer *design.Generator) *Orchestrator {
	return &Orchestrator{
		llm:      llm.Retry(decisionAttempts, retryBaseDelay)(client),
		research: researcher,
		design:   designer,
	}
}

// Run executes one turn and streams its events on the returned channel. The
// channel always terminates with a done event and is then closed, even on
// failure; cancelling ctx stops the producer without further events.
func (o *Orchestrator) Run(ctx context.Context, in TurnInput) <-chan agent.StreamEvent {
	ch := make(chan agent.StreamEvent)
	go func() {
		defer close(ch)

		emit := func(ev agent.StreamEvent) bool {
			select {
			case ch <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		err := o.runTurn(ctx, in, emit)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("orchestrator: turn failed: %v", err)
			emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityError, "An error occurred")})
			emit(agent.StreamEvent{Type: agent.EventError, Data: agent.ErrorData{Message: userSafeMessage(err)}})
		}
		emit(agent.StreamEvent{Type: agent.EventDone, Data: agent.DoneData{Success: err == nil}})
	}()
	return ch
}

func (o *Orchestrator) runTurn(ctx context.Context, in TurnInput, emit func(agent.StreamEvent) bool) error {
	emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityAnalyzing, "Analyzing your request")})

	out, err := o.decide(ctx, in)
	if err != nil {
		return err
	}

	switch out.Mode {
	case agent.ModeClarify:
		o.handleClarify(out, emit)
	case agent.ModeResearch:
		if err := o.handleResearch(ctx, out, in.GatheredState, emit); err != nil {
			return err
		}
	case agent.ModeDesign:
		if err := o.handleDesign(ctx, out, emit); err != nil {
			return err
		}
	case agent.ModeRespond:
		emit(agent.StreamEvent{Type: agent.EventMessage, Data: agent.MessageData{Content: out.Message, IsComplete: true}})
	default:
		// The mode string comes from the model and is untrusted; an
		// unrecognized tag degrades to a plain response.
		log.Printf("orchestrator: unrecognized mode %q, responding with message only", out.Mode)
		emit(agent.StreamEvent{Type: agent.EventMessage, Data: agent.MessageData{Content: out.Message, IsComplete: true}})
	}

	emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityComplete, "Done")})
	return nil
}

// decide obtains the turn's structured decision. Recoverable failures are
// retried by the llm middleware; when they persist, the hard-coded fallback
// question keeps the turn alive. Permanent errors propagate to the outer
// boundary.
func (o *Orchestrator) decide(ctx context.Context, in TurnInput) (agent.OrchestratorOutput, error) {
	convContext := buildContext(in.Messages, in.GatheredState, in.IsReadyForDesign)

	prompt := convContext + "\n\nUser's message: \"" + in.Message + "\"" + promptSuffix
	if in.IsReadyForDesign {
		prompt += readyHint
	}

	raw, err := o.llm.GenerateObject(ctx, systemPrompt, prompt, outputSchema)
	if err != nil {
		if ctx.Err() != nil {
			return agent.OrchestratorOutput{}, ctx.Err()
		}
		if llm.IsRecoverable(err) {
			log.Printf("orchestrator: decision failed after retries, using fallback: %v", err)
			return fallbackOutput(), nil
		}
		return agent.OrchestratorOutput{}, err
	}

	var out agent.OrchestratorOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("orchestrator: decision payload unusable, using fallback: %v", err)
		return fallbackOutput(), nil
	}
	return sanitize(out), nil
}

func (o *Orchestrator) handleClarify(out agent.OrchestratorOutput, emit func(agent.StreamEvent) bool) {
	emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityClarifying, "Preparing question")})
	emit(agent.StreamEvent{Type: agent.EventMessage, Data: agent.MessageData{Content: out.Message, IsComplete: true}})
	if out.Question != nil {
		emit(agent.StreamEvent{Type: agent.EventQuestion, Data: *out.Question})
	}
}

func (o *Orchestrator) handleResearch(ctx context.Context, out agent.OrchestratorOutput, state agent.GatheredState, emit func(agent.StreamEvent) bool) error {
	emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityResearching, "Researching "+out.ResearchTopic, out.ResearchQuery)})
	emit(agent.StreamEvent{Type: agent.EventMessage, Data: agent.MessageData{Content: out.Message, IsComplete: true}})

	if out.ResearchTopic == "" || out.ResearchQuery == "" || out.ResearchContext == "" {
		return nil
	}
	if o.research == nil {
		return fmt.Errorf("orchestrator: research executor not configured")
	}

	emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityComparing, "Comparing options")})

	result, err := o.research.Execute(ctx, research.Input{
		Topic:   out.ResearchTopic,
		Query:   out.ResearchQuery,
		Context: out.ResearchContext,
	})
	if err != nil {
		return err
	}

	emit(agent.StreamEvent{Type: agent.EventResearch, Data: result})

	// Record the synthesized decision on a local copy only; the client owns
	// the canonical gathered state and re-submits it next turn.
	choice := result.Recommendation
	if choice == "" && len(result.Options) > 0 {
		choice = result.Options[0].Name
	}
	if choice == "" {
		choice = "pending"
	}
	updated := state
	updated.Decisions = append(append([]agent.Decision{}, state.Decisions...), agent.Decision{
		Topic:  out.ResearchTopic,
		Choice: choice,
	})

	if agent.ComputeReadiness(updated).Ready && out.DesignRequirements != nil {
		return o.handleDesign(ctx, out, emit)
	}
	return nil
}

func (o *Orchestrator) handleDesign(ctx context.Context, out agent.OrchestratorOutput, emit func(agent.StreamEvent) bool) error {
	emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityDesigning, "Generating architecture")})
	emit(agent.StreamEvent{Type: agent.EventMessage, Data: agent.MessageData{Content: out.Message, IsComplete: true}})

	if out.DesignRequirements == nil {
		return nil
	}
	if o.design == nil {
		return fmt.Errorf("orchestrator: design generator not configured")
	}

	emit(agent.StreamEvent{Type: agent.EventActivity, Data: agent.NewActivity(agent.ActivityRendering, "Preparing visualization")})

	result, err := o.design.Generate(ctx, *out.DesignRequirements)
	if err != nil {
		return err
	}
	emit(agent.StreamEvent{Type: agent.EventDesign, Data: result})
	return nil
}

// userSafeMessage hides internals from the client while keeping the log as
// the place with the full error.
func userSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	return "Something went wrong while processing your request. Please try again."
}
