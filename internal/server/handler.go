// Package server exposes the conversation orchestrator over HTTP and
// WebSocket.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/askaweather/chat-gateway/internal/chat"
	"github.com/askaweather/chat-gateway/internal/observability"
)

// Responder processes a full conversation and returns one assistant
// message. Satisfied by *chat.Orchestrator.
type Responder interface {
	Respond(ctx context.Context, history []chat.Message) chat.Message
}

// ChatRequest carries the full prior conversation, supplied wholesale by
// the caller on every invocation.
type ChatRequest struct {
	Messages []chat.Message `json:"messages"`
}

// ChatResponse carries the single assistant reply.
type ChatResponse struct {
	Message chat.Message `json:"message"`
}

// ChatHandler handles POST /chat.
func ChatHandler(responder Responder) http.HandlerFunc {
	logger := observability.GetLogger()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := validateMessages(req.Messages); err != "" {
			http.Error(w, err, http.StatusBadRequest)
			return
		}

		reply := responder.Respond(r.Context(), req.Messages)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ChatResponse{Message: reply}); err != nil {
			logger.Error().Err(err).Msg("failed to write chat response")
		}
	}
}

func validateMessages(messages []chat.Message) string {
	for _, m := range messages {
		if m.Role != chat.RoleUser && m.Role != chat.RoleAssistant {
			return "message role must be 'user' or 'assistant'"
		}
	}
	return ""
}
