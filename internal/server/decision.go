package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ConversationContext is the client-held record of requirements and selected
// decisions. The server is stateless; the updated context travels back in the
// response and returns with the next turn.
type ConversationContext struct {
	Requirements []string           `json:"requirements"`
	Decisions    []RecordedDecision `json:"decisions"`
	CurrentPhase string             `json:"currentPhase"`
}

type RecordedDecision struct {
	Question       string `json:"question"`
	SelectedOption string `json:"selectedOption"`
	Reasoning      string `json:"reasoning"`
}

type decisionRequest struct {
	DecisionID          string               `json:"decisionId"`
	OptionID            string               `json:"optionId"`
	OptionTitle         string               `json:"optionTitle"`
	ConversationContext *ConversationContext `json:"conversationContext"`
}

type decisionResponse struct {
	Mode                string              `json:"mode"`
	Text                string              `json:"text"`
	ConversationContext ConversationContext `json:"conversationContext"`
}

// DecisionHandler records option selections into the conversation context. It
// only acknowledges; the redesign happens on the following chat turn.
type DecisionHandler struct{}

func NewDecisionHandler() *DecisionHandler {
	return &DecisionHandler{}
}

func (h *DecisionHandler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.DecisionID = strings.TrimSpace(req.DecisionID)
	req.OptionID = strings.TrimSpace(req.OptionID)
	if req.DecisionID == "" || req.OptionID == "" {
		writeError(w, http.StatusBadRequest, "decision id and option id are required")
		return
	}

	context := req.ConversationContext
	if context == nil {
		context = &ConversationContext{
			Requirements: []string{},
			Decisions:    []RecordedDecision{},
			CurrentPhase: "deciding",
		}
	}

	selected := req.OptionTitle
	if selected == "" {
		selected = req.OptionID
	}
	context.Decisions = append(context.Decisions, RecordedDecision{
		Question:       req.DecisionID,
		SelectedOption: selected,
		Reasoning:      "User selected",
	})

	writeJSON(w, http.StatusOK, decisionResponse{
		Mode:                "continue",
		Text:                fmt.Sprintf("Great choice! You've selected %s. This will be incorporated into your architecture design.", selected),
		ConversationContext: *context,
	})
}
