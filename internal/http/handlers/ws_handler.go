package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/propozzals/proposal-backend/internal/http/handlers/common"
	"github.com/propozzals/proposal-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений на события документа.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle обслуживает GET /ws/documents/:sessionId.
func (h *WSHandler) Handle(c *gin.Context) {
	sessionID, err := common.SessionID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		common.RespondInternalError(c, err.Error())
		return
	}

	client := ws.NewClient(conn, h.hub, sessionID)
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
