package research

import (
	"context"
	"encoding/json"
	"fmt"

	"architect/internal/agent"
)

// Simplified result states exposed to API clients. Anything not yet usable,
// including a failed task, reads as pending so clients keep or stop polling
// based on the error field.
const (
	ResultPending   = "pending"
	ResultCompleted = "completed"
)

// TaskResult is the poll-endpoint view of an asynchronous research task.
type TaskResult struct {
	ResearchID     string                 `json:"researchId"`
	Status         string                 `json:"status"`
	Options        []agent.ResearchOption `json:"options,omitempty"`
	Recommendation string                 `json:"recommendation,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

// StartTask submits a research brief to the provider without waiting for it.
// The caller polls with TaskResult.
func (e *Executor) StartTask(ctx context.Context, question, background string) (string, error) {
	if e.Exa == nil {
		return "", fmt.Errorf("research: no provider configured")
	}
	in := Input{Topic: question, Query: question, Context: background}
	return e.Exa.CreateTask(ctx, BuildInstructions(in), outputSchema)
}

// TaskState returns the current state of a task started with StartTask.
func (e *Executor) TaskState(ctx context.Context, id string) (TaskResult, error) {
	if e.Exa == nil {
		return TaskResult{}, fmt.Errorf("research: no provider configured")
	}

	task, err := e.Exa.GetTask(ctx, id)
	if err != nil {
		return TaskResult{}, err
	}

	res := TaskResult{ResearchID: id, Status: ResultPending}
	if !TerminalStatus(task.Status) {
		return res, nil
	}
	if task.Status != TaskCompleted {
		res.Error = fmt.Sprintf("research task ended with status %s", task.Status)
		return res, nil
	}
	if task.Output == nil || len(task.Output.Parsed) == 0 {
		res.Error = "research task completed without parsed data"
		return res, nil
	}

	var data parsedResearch
	if err := json.Unmarshal(task.Output.Parsed, &data); err != nil {
		res.Error = "research task output was not parseable"
		return res, nil
	}

	res.Status = ResultCompleted
	res.Options = mapOptions(data)
	res.Recommendation = data.Recommendation + ". " + data.Reasoning
	return res, nil
}
