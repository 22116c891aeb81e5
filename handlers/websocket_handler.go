package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/sporter/live"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler принимает список разрешённых Origin; "*" разрешает любой.
func NewWebSocketHandler(hub *live.Hub, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeMatch подписывает клиента на live-обновления счёта матча.
// Клиент подключается к /ws/matches/{matchID}
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту, так что здесь просто логируем.
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Int("match_id", matchID), slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, live.MatchRoom(matchID))
	if !h.hub.Join(client) {
		slog.WarnContext(r.Context(), "websocket hub stopped, closing connection", slog.Int("match_id", matchID))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
