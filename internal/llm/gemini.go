package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client, constrained
// to schema-conforming JSON output.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// GenerateObject requests application/json constrained by schema. Truncation
// and empty or invalid payloads come back as RecoverableError so the caller's
// retry policy can kick in.
func (g *GeminiClient) GenerateObject(ctx context.Context, system, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	log.Printf("LLM request (%s): %d bytes", g.model, len(system)+len(prompt))

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    schema,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, NewRecoverableError(ErrNoObject)
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonMaxTokens {
		return nil, NewRecoverableError(fmt.Errorf("llm: response truncated at max tokens"))
	}
	txt := cand.Content.Parts[0].Text
	raw := json.RawMessage(txt)
	if !json.Valid(raw) {
		return nil, NewRecoverableError(fmt.Errorf("llm: invalid JSON from model"))
	}
	return raw, nil
}
