package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/askaweather/chat-gateway/internal/observability"
)

// ChatWSHandler handles GET /chat/ws. Each frame carries the same
// request shape as POST /chat and produces the same response shape: the
// client supplies the full history every time, so the connection holds
// no conversation state.
func ChatWSHandler(responder Responder, allowedOrigins []string) http.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		},
	}

	logger := observability.GetLogger()

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		for {
			var req ChatRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Warn().Err(err).Msg("websocket read failed")
				}
				return
			}
			if msg := validateMessages(req.Messages); msg != "" {
				if err := conn.WriteJSON(map[string]string{"error": msg}); err != nil {
					return
				}
				continue
			}

			reply := responder.Respond(r.Context(), req.Messages)
			if err := conn.WriteJSON(ChatResponse{Message: reply}); err != nil {
				logger.Warn().Err(err).Msg("websocket write failed")
				return
			}
		}
	}
}
