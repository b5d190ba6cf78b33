// Package ws implements the realtime fan-out for the anonymous message feed.
//
// Connections are anonymous: the hub tracks raw sockets, not users, and every
// published event goes to every connected client. Consumers are expected to
// deduplicate by record id, so a client that both POSTs a message and holds a
// socket may observe the same insert twice. The hub never blocks a publisher
// on a slow reader; a failed write closes that client's socket and drops it.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "ws_feed_connections",
	Help: "Currently connected anonymous feed clients.",
})

func init() {
	prometheus.MustRegister(wsConnections)
}

// Event is the wire envelope pushed to feed subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client wraps one websocket connection. The mutex serializes writes; gorilla
// connections do not allow concurrent writers.
type Client struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

// Hub is the broadcast registry. Safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	wsConnections.Set(float64(n))
	log.Debug().Int("connections", n).Msg("feed client connected")
}

// Unregister removes a client. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	wsConnections.Set(float64(n))
	log.Debug().Int("connections", n).Msg("feed client disconnected")
}

// ConnectionCount reports the current subscriber count.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the event to every connected client. Clients whose write
// fails are closed and dropped; the event is still delivered to the rest.
// Returns the number of clients that received the event.
func (h *Hub) Broadcast(ev *Event) (int, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return 0, err
	}

	// Snapshot under the read lock so a slow socket cannot stall Register.
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if err := c.write(data); err != nil {
			log.Debug().Err(err).Msg("dropping feed client on write error")
			_ = c.Conn.Close()
			h.Unregister(c)
			continue
		}
		sent++
	}
	return sent, nil
}
