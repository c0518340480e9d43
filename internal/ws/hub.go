package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-advisor/internal/metrics"
)

type message struct {
	userID  uuid.UUID
	payload []byte
}

// Hub tracks live connections per user and routes messages to them.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	total      int
	send       chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewHub(logger *zap.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		send:       make(chan message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger.With(zap.String("component", "ws_hub")),
		metrics:    m,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
// It must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.add(client)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case msg := <-h.send:
			h.deliver(msg)
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mutex.Lock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	h.total++
	total := h.total
	h.mutex.Unlock()

	h.metrics.SetWSClients(total)
	h.logger.Info("ws connected", zap.String("user_id", c.userID.String()), zap.Int("total_clients", total))
}

func (h *Hub) remove(c *Client) {
	h.mutex.Lock()
	set, ok := h.clients[c.userID]
	if ok {
		if _, ok = set[c]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.clients, c.userID)
			}
			close(c.send)
			h.total--
		}
	}
	total := h.total
	h.mutex.Unlock()

	if ok {
		h.metrics.SetWSClients(total)
		h.logger.Info("ws disconnected", zap.String("user_id", c.userID.String()), zap.Int("total_clients", total))
	}
}

func (h *Hub) deliver(msg message) {
	h.mutex.RLock()
	targets := make([]*Client, 0, len(h.clients[msg.userID]))
	for c := range h.clients[msg.userID] {
		targets = append(targets, c)
	}
	h.mutex.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- msg.payload:
		default:
			h.logger.Warn("ws client too slow, dropping", zap.String("user_id", msg.userID.String()))
			h.remove(c)
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
	h.total = 0
	h.mutex.Unlock()
	h.metrics.SetWSClients(0)
}

// Register adds client to the hub. Once the hub has stopped the client's
// send channel is closed instead.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes client from the hub. It is a no-op once the hub has
// stopped, since shutdown already closed every client.
func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues payload for every connection of userID. It never blocks; a
// full queue drops the message.
func (h *Hub) Send(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- message{userID: userID, payload: payload}:
	default:
		h.logger.Warn("ws message dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.total
}

func (h *Hub) UserClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
