package handlers

import (
	"log"
	"net/http"

	"github.com/mtran/inventory-web/internal/service"
	"github.com/mtran/inventory-web/internal/websocket"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
}

func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

// Handle upgrades an authenticated request to a websocket connection
// subscribed to the inventory event feed. The browser websocket API
// cannot set headers, so the access token travels as a query
// parameter.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Token required")
		return
	}

	session, _ := h.authService.SessionFromToken(r.Context(), token, "")
	if !session.Valid() {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [handlers.WebSocket] upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, session.User.ID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
