package agent

import (
	"time"

	"github.com/google/uuid"
)

// EventType tags a stream event for client-side dispatch.
type EventType string

const (
	EventActivity EventType = "activity"
	EventMessage  EventType = "message"
	EventQuestion EventType = "question"
	EventResearch EventType = "research"
	EventDesign   EventType = "design"
	EventError    EventType = "error"
	EventDone     EventType = "done"
)

// StreamEvent is one frame of the server-to-client stream.
type StreamEvent struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// ActivityType names what the orchestrator is currently doing.
type ActivityType string

const (
	ActivityAnalyzing   ActivityType = "analyzing"
	ActivityClarifying  ActivityType = "clarifying"
	ActivityResearching ActivityType = "researching"
	ActivityComparing   ActivityType = "comparing"
	ActivityDesigning   ActivityType = "designing"
	ActivityRendering   ActivityType = "rendering"
	ActivityComplete    ActivityType = "complete"
	ActivityError       ActivityType = "error"
)

// ActivityEvent is a progress notice shown in the client's activity feed.
type ActivityEvent struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	Detail    string       `json:"detail,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// NewActivity builds an activity event with a fresh id and current timestamp.
func NewActivity(typ ActivityType, message string, detail ...string) ActivityEvent {
	ev := ActivityEvent{
		ID:        "activity-" + uuid.NewString(),
		Type:      typ,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
	if len(detail) > 0 {
		ev.Detail = detail[0]
	}
	return ev
}

// MessageData is the payload of a message event.
type MessageData struct {
	Content    string `json:"content"`
	IsComplete bool   `json:"isComplete"`
}

// ErrorData is the payload of an error event.
type ErrorData struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// DoneData is the payload of the terminal done event.
type DoneData struct {
	Success bool `json:"success"`
}
