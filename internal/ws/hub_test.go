package ws

import (
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

// dialInto spins up a test server that registers each incoming socket with
// the hub and returns a connected client-side conn.
func dialInto(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(&Client{Conn: conn})
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Registration happens in the server handler goroutine.
	deadline := time.Now().Add(time.Second)
	for hub.ConnectionCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestBroadcast_ReachesAllClients(t *testing.T) {
	hub := NewHub()
	c1 := dialInto(t, hub)
	c2 := dialInto(t, hub)

	deadline := time.Now().Add(time.Second)
	for hub.ConnectionCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := hub.ConnectionCount(); got != 2 {
		t.Fatalf("connections = %d; want 2", got)
	}

	sent, err := hub.Broadcast(&Event{Type: "curhat.insert", Data: map[string]string{"content": "halo"}})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if sent != 2 {
		t.Fatalf("sent = %d; want 2", sent)
	}

	for i, conn := range []*websocket.Conn{c1, c2} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("client %d read: %v", i, err)
		}
		if !strings.Contains(string(raw), "curhat.insert") || !strings.Contains(string(raw), "halo") {
			t.Errorf("client %d payload = %s", i, raw)
		}
	}
}

func TestBroadcast_EmptyHubIsNoop(t *testing.T) {
	hub := NewHub()
	sent, err := hub.Broadcast(&Event{Type: "curhat.insert"})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if sent != 0 {
		t.Errorf("sent = %d; want 0", sent)
	}
}

func TestBroadcast_DropsDeadClient(t *testing.T) {
	hub := NewHub()
	conn := dialInto(t, hub)

	// Kill the client side, then broadcast until the hub notices.
	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount() > 0 && time.Now().Before(deadline) {
		if _, err := hub.Broadcast(&Event{Type: "curhat.insert"}); err != nil {
			t.Fatalf("Broadcast: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := hub.ConnectionCount(); got != 0 {
		t.Errorf("connections = %d; want 0 after write failures", got)
	}
}

func TestUnregister_Idempotent(t *testing.T) {
	hub := NewHub()
	c := &Client{}
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)
	if got := hub.ConnectionCount(); got != 0 {
		t.Errorf("connections = %d; want 0", got)
	}
}
