package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
	ws "github.com/gocomet/taxi-dispatch/pkg/websocket"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket handles GET /v1/ws: upgrades the connection and
// streams dispatch lifecycle events to the client.
func (h *Handlers) HandleWebSocket(c *gin.Context) {
	if h.Hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream not enabled"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("WebSocket upgrade failed", logger.Err(err))
		return
	}

	client := ws.NewClient(h.Hub, conn, c.Query("user_id"), h.Logger)
	h.Hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
