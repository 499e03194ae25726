package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"architect/internal/agent"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultTimeout      = 120 * time.Second
	cacheSize           = 256
)

// Input identifies one technology decision to research.
type Input struct {
	Topic   string `json:"topic"`
	Query   string `json:"query"`
	Context string `json:"context"`
}

// outputSchema is the contract the research provider fills per option.
var outputSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"options": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":          map[string]any{"type": "string"},
					"description":   map[string]any{"type": "string"},
					"advantages":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"disadvantages": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"bestUseCases":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"name", "description", "advantages", "disadvantages", "bestUseCases"},
			},
		},
		"recommendation": map[string]any{"type": "string"},
		"reasoning":      map[string]any{"type": "string"},
	},
	"required": []string{"options", "recommendation", "reasoning"},
}

// parsedResearch mirrors the provider's structured output.
type parsedResearch struct {
	Options []struct {
		Name          string   `json:"name"`
		Description   string   `json:"description"`
		Advantages    []string `json:"advantages"`
		Disadvantages []string `json:"disadvantages"`
		BestUseCases  []string `json:"bestUseCases"`
	} `json:"options"`
	Recommendation string `json:"recommendation"`
	Reasoning      string `json:"reasoning"`
}

// Executor runs deep-research tasks against the external provider, with a
// result cache and canned comparisons when the provider is degraded.
type Executor struct {
	Exa          *ExaClient
	PollInterval time.Duration
	Timeout      time.Duration

	cache *lru.Cache[string, agent.ResearchOutput]
}

func NewExecutor(exa *ExaClient) *Executor {
	cache, _ := lru.New[string, agent.ResearchOutput](cacheSize)
	return &Executor{
		Exa:          exa,
		PollInterval: defaultPollInterval,
		Timeout:      defaultTimeout,
		cache:        cache,
	}
}

// Execute researches a decision and always returns a usable comparison set:
// live results when the provider cooperates, canned ones otherwise. The only
// error it returns is cancellation of the turn context.
func (e *Executor) Execute(ctx context.Context, in Input) (agent.ResearchOutput, error) {
	key := in.Topic + "|" + in.Query
	if e.cache != nil {
		if out, ok := e.cache.Get(key); ok {
			return out, nil
		}
	}

	out, err := e.executeLive(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return agent.ResearchOutput{}, ctx.Err()
		}
		log.Printf("research: falling back for topic %q: %v", in.Topic, err)
		return fallbackResults(in), nil
	}

	if e.cache != nil {
		e.cache.Add(key, out)
	}
	return out, nil
}

// executeLive creates a provider task and polls until it terminates. The turn
// context bounds the whole poll loop, so aborting the turn abandons the poll;
// the 120s budget is layered on top.
func (e *Executor) executeLive(ctx context.Context, in Input) (agent.ResearchOutput, error) {
	if e.Exa == nil {
		return agent.ResearchOutput{}, fmt.Errorf("research: no provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	id, err := e.Exa.CreateTask(ctx, BuildInstructions(in), outputSchema)
	if err != nil {
		return agent.ResearchOutput{}, err
	}

	ticker := time.NewTicker(e.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return agent.ResearchOutput{}, ctx.Err()
		case <-ticker.C:
		}

		task, err := e.Exa.GetTask(ctx, id)
		if err != nil {
			return agent.ResearchOutput{}, err
		}
		if !TerminalStatus(task.Status) {
			continue
		}
		if task.Status != TaskCompleted {
			return agent.ResearchOutput{}, fmt.Errorf("research: task ended with status %s", task.Status)
		}
		if task.Output == nil || len(task.Output.Parsed) == 0 {
			return agent.ResearchOutput{}, fmt.Errorf("research: no parsed data in task output")
		}

		var data parsedResearch
		if err := json.Unmarshal(task.Output.Parsed, &data); err != nil {
			return agent.ResearchOutput{}, fmt.Errorf("research: parse task output: %w", err)
		}
		return formatOutput(in, data), nil
	}
}

// BuildInstructions renders the natural-language research brief sent to the
// provider, including the expected per-option breakdown.
func BuildInstructions(in Input) string {
	return strings.TrimSpace(fmt.Sprintf(`
Research and compare technology options for the following architectural decision:

TOPIC: %s
QUERY: %s
CONTEXT: %s

Please analyze the top 2-4 technology options for this decision. For each option:
1. Provide a clear, one-sentence description
2. List 2-5 key advantages
3. List 2-5 key disadvantages
4. Describe best use cases

Focus on practical, production-ready solutions used in modern software architecture.
Consider factors like: scalability, maintainability, cost, learning curve, and ecosystem support.
Provide a clear recommendation with reasoning based on the given context.
`, in.Topic, in.Query, in.Context))
}

func formatOutput(in Input, data parsedResearch) agent.ResearchOutput {
	return agent.ResearchOutput{
		Topic:          in.Topic,
		Question:       fmt.Sprintf("Which %s should we use?", in.Topic),
		Options:        mapOptions(data),
		Recommendation: data.Recommendation + ". " + data.Reasoning,
	}
}

func mapOptions(data parsedResearch) []agent.ResearchOption {
	opts := data.Options
	if len(opts) > 4 {
		opts = opts[:4]
	}

	options := make([]agent.ResearchOption, 0, len(opts))
	for _, opt := range opts {
		options = append(options, agent.ResearchOption{
			ID:        slugify(opt.Name),
			Name:      opt.Name,
			Summary:   opt.Description,
			Pros:      capStrings(opt.Advantages, 5),
			Cons:      capStrings(opt.Disadvantages, 5),
			BestFor:   strings.Join(capStrings(opt.BestUseCases, 3), ", "),
			Citations: []agent.Citation{},
		})
	}
	return options
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func capStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
