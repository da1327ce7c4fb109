package tuning

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/shoal/config"
	"github.com/lixenwraith/shoal/status"
)

// Target is the simulation side of the tuning surface
type Target interface {
	Live() *config.Live
	RequestRestart()
	Registry() *status.Registry
}

// Hub fans parameter changes and telemetry out to every connected client
// All writes go through the hub lock, so each connection has a single writer
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]string
	upgrader websocket.Upgrader

	target Target
	logger *log.Logger
}

// NewHub creates a hub tuning target
func NewHub(target Target, logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		target: target,
		logger: logger,
	}
}

func (h *Hub) add(conn *websocket.Conn) string {
	id := uuid.NewString()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = id
	return id
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends m to every client, dropping clients that fail
func (h *Hub) Broadcast(m Message) {
	payload, err := Encode(m)
	if err != nil {
		h.logger.Error("failed to encode broadcast", "type", m.Type, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, id := range h.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			h.logger.Warn("failed to write to client", "client", id, "err", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// send writes m to one client
func (h *Hub) send(conn *websocket.Conn, m Message) error {
	payload, err := Encode(m)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return conn.WriteMessage(websocket.BinaryMessage, payload)
}

// State returns the full parameter state message
func (h *Hub) State() Message {
	return Message{Type: TypeState, Values: h.target.Live().Values()}
}

// Telemetry returns the current metrics message
func (h *Hub) Telemetry() Message {
	return Message{Type: TypeTelemetry, Values: h.target.Registry().Snapshot()}
}

// Handler upgrades the request and serves one client until it disconnects
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", "err", err)
			return
		}
		id := h.add(conn)
		defer h.remove(conn)
		h.logger.Info("tuning client connected", "client", id, "remote", r.RemoteAddr)

		// Send the current state immediately
		state := h.State()
		state.Client = id
		if err := h.send(conn, state); err != nil {
			h.logger.Warn("failed to send initial state", "client", id, "err", err)
			return
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				h.logger.Info("tuning client disconnected", "client", id, "err", err)
				return
			}
			h.handle(conn, id, data)
		}
	}
}

// handle applies one client frame; errors go back to the sender only
func (h *Hub) handle(conn *websocket.Conn, id string, data []byte) {
	reply := func(m Message) {
		if err := h.send(conn, m); err != nil {
			h.logger.Warn("failed to reply", "client", id, "err", err)
		}
	}

	m, err := Decode(data)
	if err != nil {
		h.logger.Warn("unable to decode tuning frame", "client", id, "err", err)
		reply(Message{Type: TypeError, Error: err.Error()})
		return
	}

	live := h.target.Live()
	switch m.Type {
	case TypeSet:
		updates := m.Values
		if m.Name != "" {
			updates = map[string]float64{m.Name: m.Value}
		}
		for name, v := range updates {
			applied, err := live.Set(name, v)
			if err != nil {
				h.logger.Warn("rejected parameter", "client", id, "name", name, "value", v, "err", err)
				reply(Message{Type: TypeError, Name: name, Value: v, Error: err.Error()})
				continue
			}
			h.logger.Debug("parameter set", "client", id, "name", name, "value", applied)
			h.Broadcast(Message{Type: TypeApplied, Name: name, Value: applied, Client: id})
		}
	case TypeGet:
		reply(h.State())
	case TypeRestart:
		h.target.RequestRestart()
		h.logger.Info("restart requested", "client", id)
		h.Broadcast(h.State())
	default:
		reply(Message{Type: TypeError, Error: "unknown message type " + m.Type})
	}
}

// Run broadcasts telemetry every interval until ctx is done
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.Clients() > 0 {
				h.Broadcast(h.Telemetry())
			}
		}
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		delete(h.clients, conn)
	}
}
