package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"architect/internal/agent"
	"architect/internal/orchestrator"
	"architect/internal/stream"

	"github.com/gorilla/websocket"
)

const maxChatMessageLen = 2000

// ChatHandler runs agent turns and streams their events back to the client,
// either over SSE (POST /api/chat) or a websocket (GET /api/chat/ws).
type ChatHandler struct {
	orch *orchestrator.Orchestrator
}

func NewChatHandler(orch *orchestrator.Orchestrator) *ChatHandler {
	return &ChatHandler{orch: orch}
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var in orchestrator.TurnInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.Message = strings.TrimSpace(in.Message)
	if in.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if len(in.Message) > maxChatMessageLen {
		in.Message = in.Message[:maxChatMessageLen]
	}

	sw := stream.NewWriter(w)
	sw.Init()

	for ev := range h.orch.Run(r.Context(), in) {
		if err := sw.Send(ev); err != nil {
			// Client went away; the request context cancellation stops the run.
			break
		}
	}
	sw.Done()
}

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// HandleChatWS is the websocket variant of HandleChat. Each inbound JSON
// message is a full turn request; sending a new one cancels the turn that is
// still in flight.
func (h *ChatHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan agent.StreamEvent, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	var turnCancel context.CancelFunc
	var turnDone chan struct{}

	for {
		var in orchestrator.TurnInput
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		in.Message = strings.TrimSpace(in.Message)
		if in.Message == "" {
			pushChatWS(writeCh, agent.StreamEvent{
				Type: agent.EventError,
				Data: agent.ErrorData{Message: "message is required", Code: "invalid_argument"},
			})
			continue
		}
		if len(in.Message) > maxChatMessageLen {
			in.Message = in.Message[:maxChatMessageLen]
		}

		if turnCancel != nil {
			turnCancel()
			<-turnDone
		}

		turnCtx, tc := context.WithCancel(ctx)
		turnCancel = tc
		turnDone = make(chan struct{})
		go func(done chan struct{}) {
			defer close(done)
			for ev := range h.orch.Run(turnCtx, in) {
				pushChatWS(writeCh, ev)
			}
		}(turnDone)
	}
}

func pushChatWS(writeCh chan agent.StreamEvent, ev agent.StreamEvent) {
	select {
	case writeCh <- ev:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- ev:
	default:
	}
}
