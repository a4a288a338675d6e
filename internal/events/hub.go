package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub indexes live websocket clients by user and implements Notifier for the
// local process.
type Hub struct {
	mu        sync.RWMutex
	clients   map[string]*Client
	userIndex map[string]map[string]struct{}

	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}

	maxConnPerUser int
	writeWait      time.Duration
	pongWait       time.Duration
	pingPeriod     time.Duration
	logger         logrus.FieldLogger
}

func NewHub(maxConnPerUser int, logger logrus.FieldLogger) *Hub {
	return &Hub{
		clients:        make(map[string]*Client),
		userIndex:      make(map[string]map[string]struct{}),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		stopped:        make(chan struct{}),
		maxConnPerUser: maxConnPerUser,
		writeWait:      writeWait,
		pongWait:       pongWait,
		pingPeriod:     pingPeriod,
		logger:         logger,
	}
}

// Run serves registrations until ctx is cancelled, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.send)
			}
			h.userIndex = make(map[string]map[string]struct{})
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stopped:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stopped:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.userIndex[client.UserID]) >= h.maxConnPerUser {
		h.logger.WithField("user_id", client.UserID).Warn("max websocket connections reached")
		close(client.send)
		return
	}

	if h.userIndex[client.UserID] == nil {
		h.userIndex[client.UserID] = make(map[string]struct{})
	}
	h.clients[client.ID] = client
	h.userIndex[client.UserID][client.ID] = struct{}{}

	h.logger.WithFields(logrus.Fields{"client_id": client.ID, "user_id": client.UserID}).Debug("client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	delete(h.userIndex[client.UserID], client.ID)
	if len(h.userIndex[client.UserID]) == 0 {
		delete(h.userIndex, client.UserID)
	}
	close(client.send)

	h.logger.WithField("client_id", client.ID).Debug("client unregistered")
}

// Notify queues the event on every client of userID. Clients whose buffer is
// full are disconnected rather than waited on.
func (h *Hub) Notify(_ context.Context, userID string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var slow []*Client
	h.mu.RLock()
	for clientID := range h.userIndex[userID] {
		client := h.clients[clientID]
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.WithField("client_id", client.ID).Warn("client send buffer full, closing connection")
		h.unregisterClient(client)
	}
	return nil
}

func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userIndex[userID])
}
