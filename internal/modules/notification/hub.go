package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

// AdminHub fans events out to every connected admin/manager client on
// the admin_notifications channel. Writes are best-effort: a failed
// write drops the connection, never the event producer.
type AdminHub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewAdminHub() *AdminHub {
	return &AdminHub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *AdminHub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

func (h *AdminHub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[userID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

// Publish sends the event to every connected client and returns how many
// deliveries succeeded.
func (h *AdminHub) Publish(event any) int {
	h.mutex.RLock()
	targets := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		targets[id] = conn
	}
	h.mutex.RUnlock()

	delivered := 0
	for id, conn := range targets {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(id)
			continue
		}
		delivered++
	}
	return delivered
}

func (h *AdminHub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *AdminHub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
