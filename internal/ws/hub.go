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

// Hub tracks live connections and their subscriber groups: one set per
// classroom, the coordinator dashboard set, and the set of all connections.
// Membership lives only for the connection lifetime and is rebuilt on
// reconnect. All writes happen under the hub lock, so events on one
// connection arrive in dispatch order.
type Hub struct {
	mu        sync.Mutex
	rooms     map[string]map[*websocket.Conn]bool
	dashboard map[*websocket.Conn]bool
	conns     map[*websocket.Conn]string // joined room number, "" if none
}

func NewHub() *Hub {
	return &Hub{
		rooms:     make(map[string]map[*websocket.Conn]bool),
		dashboard: make(map[*websocket.Conn]bool),
		conns:     make(map[*websocket.Conn]string),
	}
}

func (h *Hub) AddConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = ""
	log.Printf("ws: client connected (total: %d)", len(h.conns))
}

// JoinRoom moves the connection into a classroom group, leaving any previous
// room first: a client views one room at a time.
func (h *Hub) JoinRoom(roomNumber string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.conns[conn]; ok && prev != "" {
		h.leaveRoomLocked(prev, conn)
	}
	if h.rooms[roomNumber] == nil {
		h.rooms[roomNumber] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomNumber][conn] = true
	h.conns[conn] = roomNumber
	log.Printf("ws: client joined classroom-%s (viewers: %d)", roomNumber, len(h.rooms[roomNumber]))
}

func (h *Hub) JoinDashboard(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dashboard[conn] = true
	log.Printf("ws: client joined coordinator-dashboard (viewers: %d)", len(h.dashboard))
}

// RemoveConnection tears down every group membership of the connection.
func (h *Hub) RemoveConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(conn)
	log.Printf("ws: client disconnected (total: %d)", len(h.conns))
}

func (h *Hub) leaveRoomLocked(roomNumber string, conn *websocket.Conn) {
	if conns, ok := h.rooms[roomNumber]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, roomNumber)
		}
	}
}

func (h *Hub) BroadcastToRoom(roomNumber, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendLocked(h.rooms[roomNumber], event, data)
}

func (h *Hub) BroadcastToDashboard(event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendLocked(h.dashboard, event, data)
}

func (h *Hub) BroadcastToAll(event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	all := make(map[*websocket.Conn]bool, len(h.conns))
	for conn := range h.conns {
		all[conn] = true
	}
	h.sendLocked(all, event, data)
}

func (h *Hub) sendLocked(conns map[*websocket.Conn]bool, event string, data interface{}) {
	if len(conns) == 0 {
		return
	}

	payload, err := json.Marshal(WSMessage{Type: event, Data: data})
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	var dead []*websocket.Conn
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("ws: write error: %v", err)
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		h.dropLocked(conn)
	}
}

func (h *Hub) dropLocked(conn *websocket.Conn) {
	if room, ok := h.conns[conn]; ok && room != "" {
		h.leaveRoomLocked(room, conn)
	}
	delete(h.dashboard, conn)
	delete(h.conns, conn)
	conn.Close()
}
