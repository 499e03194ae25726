package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testExecutor(srv *httptest.Server) *Executor {
	exa := NewExaClient("test-key")
	exa.baseURL = srv.URL
	exa.http = srv.Client()
	e := NewExecutor(exa)
	e.PollInterval = 5 * time.Millisecond
	e.Timeout = time.Second
	return e
}

func TestExecuteMapsProviderOutput(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"researchId": "task-1", "status": "pending"})
			return
		}
		// First poll still running, second completes.
		if polls.Add(1) < 2 {
			json.NewEncoder(w).Encode(map[string]any{"researchId": "task-1", "status": "running"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"researchId": "task-1",
			"status":     "completed",
			"output": map[string]any{
				"parsed": map[string]any{
					"options": []map[string]any{
						{
							"name":          "Amazon SQS",
							"description":   "Managed queue",
							"advantages":    []string{"managed", "cheap", "scales", "simple", "reliable", "extra"},
							"disadvantages": []string{"lock-in", "latency"},
							"bestUseCases":  []string{"aws shops", "bursty loads", "background jobs", "ignored"},
						},
						{
							"name":          "RabbitMQ",
							"description":   "Self-hosted broker",
							"advantages":    []string{"routing", "protocols"},
							"disadvantages": []string{"ops burden", "throughput"},
							"bestUseCases":  []string{"task queues"},
						},
					},
					"recommendation": "Amazon SQS",
					"reasoning":      "Least operational overhead for a small team",
				},
			},
		})
	}))
	defer srv.Close()

	out, err := testExecutor(srv).Execute(context.Background(), Input{
		Topic:   "queue",
		Query:   "best queue for background jobs",
		Context: "small team on AWS",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(out.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(out.Options))
	}
	first := out.Options[0]
	if first.ID != "amazon-sqs" {
		t.Fatalf("id should be the slugified name, got %q", first.ID)
	}
	if len(first.Pros) != 5 {
		t.Fatalf("pros must be capped at 5, got %d", len(first.Pros))
	}
	if first.BestFor != "aws shops, bursty loads, background jobs" {
		t.Fatalf("bestFor should join the first 3 use cases, got %q", first.BestFor)
	}
	if !strings.Contains(out.Recommendation, "Least operational overhead") {
		t.Fatalf("recommendation should append reasoning, got %q", out.Recommendation)
	}
	if out.Question != "Which queue should we use?" {
		t.Fatalf("unexpected question %q", out.Question)
	}
}

func TestExecuteCachesSuccessfulResults(t *testing.T) {
	var creates atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			creates.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"researchId": "task-2", "status": "pending"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"researchId": "task-2",
			"status":     "completed",
			"output": map[string]any{
				"parsed": map[string]any{
					"options": []map[string]any{
						{"name": "Redis", "description": "d", "advantages": []string{"a", "b"}, "disadvantages": []string{"c", "d"}, "bestUseCases": []string{"e"}},
						{"name": "Memcached", "description": "d", "advantages": []string{"a", "b"}, "disadvantages": []string{"c", "d"}, "bestUseCases": []string{"e"}},
					},
					"recommendation": "Redis",
					"reasoning":      "richer features",
				},
			},
		})
	}))
	defer srv.Close()

	e := testExecutor(srv)
	in := Input{Topic: "cache", Query: "cache for sessions", Context: "web app"}

	if _, err := e.Execute(context.Background(), in); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if _, err := e.Execute(context.Background(), in); err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if got := creates.Load(); got != 1 {
		t.Fatalf("second identical request should hit the cache, provider saw %d creates", got)
	}
}

func TestExecuteFallsBackWhenProviderFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := testExecutor(srv).Execute(context.Background(), Input{
		Topic: "database", Query: "q", Context: "c",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(out.Options) != 2 {
		t.Fatalf("expected canned database comparison, got %d options", len(out.Options))
	}
	if out.Options[0].Name != "PostgreSQL" || out.Options[1].Name != "MongoDB" {
		t.Fatalf("unexpected fallback options: %v, %v", out.Options[0].Name, out.Options[1].Name)
	}
	if !strings.Contains(out.Recommendation, "research unavailable") {
		t.Fatalf("fallback must be annotated, got %q", out.Recommendation)
	}
}

func TestExecuteFallbackKeywords(t *testing.T) {
	cases := map[string]string{
		"cache":     "Redis",
		"messaging": "Apache Kafka",
		"hosting":   "Popular Option",
	}
	for topic, firstName := range cases {
		out := fallbackResults(Input{Topic: topic})
		if out.Options[0].Name != firstName {
			t.Fatalf("topic %q: expected %q first, got %q", topic, firstName, out.Options[0].Name)
		}
	}
}

func TestExecuteAbortsWithTurnContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"researchId": "task-3", "status": "pending"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"researchId": "task-3", "status": "running"})
	}))
	defer srv.Close()

	e := testExecutor(srv)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := e.Execute(ctx, Input{Topic: "queue", Query: "q", Context: "c"})
	if err == nil {
		t.Fatalf("canceling the turn must abandon the poll, not fall back")
	}
	if ctx.Err() == nil {
		t.Fatalf("expected context cancellation")
	}
}
