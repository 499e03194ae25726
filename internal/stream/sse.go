package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"architect/internal/agent"
)

// doneMarker terminates every stream, success or failure.
const doneMarker = "[DONE]"

// Writer frames orchestrator events as Server-Sent Events. Call Init once
// before the first Send.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter wraps w. The ResponseWriter should implement http.Flusher;
// without it writes still succeed but may be buffered.
func NewWriter(w http.ResponseWriter) *Writer {
	f, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: f}
}

// Init sets the SSE headers and flushes them to the client.
func (sw *Writer) Init() {
	h := sw.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	if sw.flusher != nil {
		sw.flusher.Flush()
	}
}

// Send writes one "data: <json>\n\n" frame. A serialization failure is
// isolated to the event: a minimal error frame is substituted and the stream
// stays open.
func (sw *Writer) Send(ev agent.StreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("stream: marshal %s event failed: %v", ev.Type, err)
		data, _ = json.Marshal(agent.StreamEvent{
			Type: agent.EventError,
			Data: agent.ErrorData{Message: "failed to serialize event"},
		})
	}
	if _, err := fmt.Fprintf(sw.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("stream: write event: %w", err)
	}
	if sw.flusher != nil {
		sw.flusher.Flush()
	}
	return nil
}

// Done writes the stream-termination marker.
func (sw *Writer) Done() error {
	if _, err := fmt.Fprintf(sw.w, "data: %s\n\n", doneMarker); err != nil {
		return fmt.Errorf("stream: write done marker: %w", err)
	}
	if sw.flusher != nil {
		sw.flusher.Flush()
	}
	return nil
}

// ReadEvents incrementally parses an SSE body back into typed events. The
// channel closes on the [DONE] marker, end of stream, or ctx cancellation.
// Unparseable payloads are logged and skipped; they never stop the reader.
func ReadEvents(ctx context.Context, body io.Reader) <-chan agent.StreamEvent {
	ch := make(chan agent.StreamEvent)
	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var data strings.Builder

		flush := func() bool {
			if data.Len() == 0 {
				return true
			}
			payload := data.String()
			data.Reset()
			if payload == doneMarker {
				return false
			}
			var ev agent.StreamEvent
			if err := json.Unmarshal([]byte(payload), &ev); err != nil {
				log.Printf("stream: skipping unparseable chunk: %v", err)
				return true
			}
			select {
			case ch <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			line := scanner.Text()
			switch {
			case line == "":
				if !flush() {
					return
				}
			case strings.HasPrefix(line, "data: "):
				data.WriteString(strings.TrimPrefix(line, "data: "))
			case strings.HasPrefix(line, "data:"):
				data.WriteString(strings.TrimPrefix(line, "data:"))
			default:
				// Comments and unknown fields are ignored per the SSE spec.
			}
		}
		flush()
	}()
	return ch
}
