package handlers

import (
	"log"
	"net/http"

	"guess-song-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      WebSocket feed of game events
// @Description  Connect via WebSocket to receive live game events for a group
// @Tags         websocket
// @Param        groupID path string true "Group ID"
// @Router       /ws/group/{groupID} [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	groupID := c.Param("groupID")
	if groupID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing group id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(groupID, conn)
	defer h.hub.RemoveConnection(groupID, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
