package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// chatRequest is the inbound chat payload.
type chatRequest struct {
	Message string `json:"message"`
}

// handleChat runs one chat turn against the named agent and streams the
// reply as newline-delimited JSON. The reply always comes back with
// status 200: agent-level failures are already rendered as assistant
// content so the conversation stays intact client-side.
func (s *Server) handleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "agent")
		a, ok := s.agents[name]
		if !ok {
			writeDetail(w, http.StatusNotFound, "Unknown agent: "+name)
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeDetail(w, http.StatusBadRequest, "message is required")
			return
		}

		s.metrics.RecordAgentChat(name)
		resp := a.Chat(r.Context(), req.Message)

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(w)
		_ = enc.Encode(resp)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
