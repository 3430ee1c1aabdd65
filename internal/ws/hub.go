package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans game events out to websocket watchers, keyed by group.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(groupID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groups[groupID] == nil {
		h.groups[groupID] = make(map[*websocket.Conn]bool)
	}
	h.groups[groupID][conn] = true
	log.Printf("ws: client connected to group %s (total: %d)", groupID, len(h.groups[groupID]))
}

func (h *Hub) RemoveConnection(groupID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.groups[groupID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.groups, groupID)
		}
		log.Printf("ws: client disconnected from group %s", groupID)
	}
}

// Broadcast holds the write lock for the whole fan-out: publishes come
// in concurrently from round timers and webhook goroutines, and both
// the removal of dead conns and gorilla's one-writer-per-conn rule
// need them serialized.
func (h *Hub) Broadcast(groupID string, message WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.groups[groupID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}

// Publish lets the hub double as the engine's event sink.
func (h *Hub) Publish(groupID, event string, data any) {
	h.Broadcast(groupID, WSMessage{Type: event, Data: data})
}
