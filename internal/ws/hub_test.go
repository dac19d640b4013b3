package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestConn spins up a server-side connection registered in the hub and
// returns the client end. Joins happen before the dial returns.
func dialTestConn(t *testing.T, h *Hub, room string, dashboard bool) *websocket.Conn {
	t.Helper()

	joined := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		h.AddConnection(conn)
		if room != "" {
			h.JoinRoom(room, conn)
		}
		if dashboard {
			h.JoinDashboard(conn)
		}
		close(joined)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.RemoveConnection(conn)
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	select {
	case <-joined:
	case <-time.After(2 * time.Second):
		t.Fatal("server never registered the connection")
	}
	return client
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return msg
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("received a message that should not have been delivered")
	}
}

func TestBroadcastToRoomReachesOnlyThatRoom(t *testing.T) {
	h := NewHub()
	inRoom := dialTestConn(t, h, "202", false)
	otherRoom := dialTestConn(t, h, "205", false)

	h.BroadcastToRoom("202", "attendance-updated", map[string]string{"member_id": "m1"})

	msg := readMessage(t, inRoom)
	if msg.Type != "attendance-updated" {
		t.Fatalf("expected attendance-updated, got %q", msg.Type)
	}
	expectSilence(t, otherRoom)
}

func TestBroadcastToDashboard(t *testing.T) {
	h := NewHub()
	dashboard := dialTestConn(t, h, "", true)
	roomOnly := dialTestConn(t, h, "004", false)

	h.BroadcastToDashboard("new-issue", map[string]string{"category": "power"})

	msg := readMessage(t, dashboard)
	if msg.Type != "new-issue" {
		t.Fatalf("expected new-issue, got %q", msg.Type)
	}
	expectSilence(t, roomOnly)
}

func TestBroadcastToAll(t *testing.T) {
	h := NewHub()
	a := dialTestConn(t, h, "202", false)
	b := dialTestConn(t, h, "", true)

	h.BroadcastToAll("emergency-broadcast", map[string]string{"room_number": "202"})

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Type != "emergency-broadcast" {
			t.Fatalf("expected emergency-broadcast, got %q", msg.Type)
		}
	}
}

func TestPerConnectionOrdering(t *testing.T) {
	h := NewHub()
	conn := dialTestConn(t, h, "207", false)

	for i, event := range []string{"first", "second", "third"} {
		h.BroadcastToRoom("207", event, i)
	}
	for _, want := range []string{"first", "second", "third"} {
		msg := readMessage(t, conn)
		if msg.Type != want {
			t.Fatalf("out of order: expected %q, got %q", want, msg.Type)
		}
	}
}

func TestJoinRoomSwitchesRooms(t *testing.T) {
	h := NewHub()
	conn := dialTestConn(t, h, "202", false)

	// Find the server-side conn and move it to another room.
	h.mu.Lock()
	var serverConn *websocket.Conn
	for sc := range h.conns {
		serverConn = sc
	}
	h.mu.Unlock()
	h.JoinRoom("205", serverConn)

	// The silence check must come last: gorilla makes read errors permanent,
	// so a read deadline hit in expectSilence would poison later reads.
	h.BroadcastToRoom("205", "new-room", nil)
	msg := readMessage(t, conn)
	if msg.Type != "new-room" {
		t.Fatalf("expected new-room, got %q", msg.Type)
	}

	h.BroadcastToRoom("202", "stale-room", nil)
	expectSilence(t, conn)
}
