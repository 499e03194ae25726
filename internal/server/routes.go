package server

import (
	"encoding/json"
	"net/http"
)

func NewMux(chat *ChatHandler, researchH *ResearchHandler, decision *DecisionHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/chat", chat.HandleChat)
	mux.HandleFunc("/api/chat/ws", chat.HandleChatWS)
	mux.HandleFunc("/api/research", researchH.HandleResearch)
	mux.HandleFunc("/api/research/", researchH.HandleResearchStatus)
	mux.HandleFunc("/api/decision", decision.HandleDecision)

	return CORS(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
