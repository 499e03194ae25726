package llm

import (
	"context"
	"encoding/json"
	"time"

	genai "google.golang.org/genai"
)

// Middleware wraps a Client with additional behavior.
type Middleware func(Client) Client

// Retry retries GenerateObject up to maxAttempts with exponential backoff
// starting at baseDelay. Only recoverable errors are retried; permanent errors
// and context cancellation stop immediately.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Client) Client {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Client
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) GenerateObject(ctx context.Context, system, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	var last error
	for i := 0; i < r.max; i++ {
		resp, err := r.next.GenerateObject(ctx, system, prompt, schema)
		if err == nil {
			return resp, nil
		}
		if !IsRecoverable(err) {
			return nil, err
		}
		last = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if i < r.max-1 {
			time.Sleep(r.base * time.Duration(1<<i))
		}
	}
	return nil, last
}
