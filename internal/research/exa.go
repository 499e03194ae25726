package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ExaClient calls the Exa research API: create a task, then poll it by id.
// See: https://docs.exa.ai/reference/research
type ExaClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
	model   string
}

// NewExaClient creates a research client. If apiKey is empty, it falls back to
// the EXA_API_KEY env var.
func NewExaClient(apiKey string) *ExaClient {
	if apiKey == "" {
		apiKey = os.Getenv("EXA_API_KEY")
	}
	return &ExaClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.exa.ai/research/v1",
		model:   "exa-research",
	}
}

// WithTransport overrides the HTTP client and base URL. Used by tests and by
// deployments that route provider traffic through a proxy.
func (c *ExaClient) WithTransport(httpClient *http.Client, baseURL string) *ExaClient {
	if httpClient != nil {
		c.http = httpClient
	}
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// Task statuses reported by the provider.
const (
	TaskPending   = "pending"
	TaskRunning   = "running"
	TaskCompleted = "completed"
	TaskFailed    = "failed"
	TaskCanceled  = "canceled"
)

// TerminalStatus reports whether a task will make no further progress.
func TerminalStatus(status string) bool {
	return status == TaskCompleted || status == TaskFailed || status == TaskCanceled
}

// Task is the provider's view of one research request.
type Task struct {
	ID     string `json:"researchId"`
	Status string `json:"status"`
	Output *struct {
		Parsed json.RawMessage `json:"parsed"`
	} `json:"output,omitempty"`
}

type createTaskReq struct {
	Instructions string `json:"instructions"`
	Model        string `json:"model"`
	OutputSchema any    `json:"outputSchema"`
}

// CreateTask submits a research task and returns the provider's task id.
func (c *ExaClient) CreateTask(ctx context.Context, instructions string, outputSchema any) (string, error) {
	body, _ := json.Marshal(createTaskReq{
		Instructions: instructions,
		Model:        c.model,
		OutputSchema: outputSchema,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return "", err
	}
	if task.ID == "" {
		return "", fmt.Errorf("research: create returned no task id")
	}
	return task.ID, nil
}

// GetTask fetches the current state of a research task.
func (c *ExaClient) GetTask(ctx context.Context, id string) (Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+id, nil)
	if err != nil {
		return Task{}, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Task{}, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return Task{}, err
	}

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return Task{}, err
	}
	if task.ID == "" {
		task.ID = id
	}
	return task, nil
}

func (c *ExaClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	const max = 2048
	if len(body) > max {
		body = body[:max]
	}
	return fmt.Errorf("research: unexpected status %s: %s", resp.Status, string(body))
}
