package llm

import (
	"context"
	"encoding/json"
	"sync"

	genai "google.golang.org/genai"
)

// FakeStep is one scripted GenerateObject result.
type FakeStep struct {
	Object any
	Err    error
}

// FakeClient returns scripted results in order for offline tests. When the
// script is exhausted the last step repeats.
type FakeClient struct {
	mu    sync.Mutex
	steps []FakeStep
	calls int
}

func NewFakeClient(steps ...FakeStep) *FakeClient {
	return &FakeClient{steps: steps}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls reports how many times GenerateObject was invoked.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeClient) GenerateObject(ctx context.Context, system, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	f.mu.Unlock()

	if len(f.steps) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	step := f.steps[i]
	if step.Err != nil {
		return nil, step.Err
	}
	b, err := json.Marshal(step.Object)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
