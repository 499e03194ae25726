package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"architect/internal/research"
)

// ResearchHandler exposes the asynchronous create/poll research pair for
// clients that drive research outside a chat turn.
type ResearchHandler struct {
	exec *research.Executor
}

func NewResearchHandler(exec *research.Executor) *ResearchHandler {
	return &ResearchHandler{exec: exec}
}

type researchCreateRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type researchCreateResponse struct {
	ResearchID string `json:"researchId"`
	Status     string `json:"status"`
}

// HandleResearch starts a provider task for POST /api/research.
func (h *ResearchHandler) HandleResearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req researchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	req.Context = strings.TrimSpace(req.Context)
	if req.Question == "" || req.Context == "" {
		writeError(w, http.StatusBadRequest, "question and context are required")
		return
	}

	id, err := h.exec.StartTask(r.Context(), req.Question, req.Context)
	if err != nil {
		log.Printf("research: create task failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create research task")
		return
	}

	writeJSON(w, http.StatusOK, researchCreateResponse{
		ResearchID: id,
		Status:     research.ResultPending,
	})
}

// HandleResearchStatus answers GET /api/research/{id} with the current task
// state.
func (h *ResearchHandler) HandleResearchStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/research/")
	id = strings.TrimSpace(strings.Trim(id, "/"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "research id is required")
		return
	}

	res, err := h.exec.TaskState(r.Context(), id)
	if err != nil {
		log.Printf("research: poll task %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to get research status")
		return
	}

	writeJSON(w, http.StatusOK, res)
}
