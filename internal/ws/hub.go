package ws

import (
	"encoding/json"
	"sync"

	"ytboost/internal/models"
)

// Event is one change-feed message: either a wholesale wallet balance
// replacement or a row change on one of the subscriber's campaigns.
type Event struct {
	Type     string           `json:"type"`             // "wallet" | "campaign"
	Action   string           `json:"action,omitempty"` // insert | update | delete
	Balance  *int64           `json:"balance,omitempty"`
	Campaign *models.Campaign `json:"campaign,omitempty"`
}

// Client is a single change-feed subscription scoped to one user's rows.
type Client struct {
	UserID uint
	Send   chan []byte
	hub    *Hub
	mu     sync.Mutex
	closed bool
}

// Close tears the subscription down. Safe to call more than once; exactly
// one unregister happens per Register.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.unregister(c)
	}
	// trySend checks closed under the same mutex, so nothing can write to
	// Send past this point.
	close(c.Send)
}

// trySend delivers one frame unless the client is closed or its buffer is
// full. Slow consumers are skipped rather than blocking the writer; they
// will refetch on the next event.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Hub maintains active change-feed subscriptions keyed by user.
type Hub struct {
	mu     sync.RWMutex
	byUser map[uint]map[*Client]struct{}
	total  int
}

func NewHub() *Hub {
	return &Hub{byUser: make(map[uint]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	if h.byUser[c.UserID] == nil {
		h.byUser[c.UserID] = make(map[*Client]struct{})
	}
	h.byUser[c.UserID][c] = struct{}{}
	h.total++
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.byUser[c.UserID]; m != nil {
		if _, ok := m[c]; ok {
			delete(m, c)
			h.total--
			if len(m) == 0 {
				delete(h.byUser, c.UserID)
			}
		}
	}
}

// publish sends an event to every subscription owned by userID. The
// snapshot may include a client that closes before we reach it; trySend's
// closed check makes that a dropped frame instead of a write to a closed
// channel.
func (h *Hub) publish(userID uint, ev Event) {
	data, _ := json.Marshal(ev)
	h.mu.RLock()
	m := h.byUser[userID]
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

// PublishWallet pushes the new authoritative balance to the wallet's owner.
func (h *Hub) PublishWallet(userID uint, balance int64) {
	h.publish(userID, Event{Type: "wallet", Balance: &balance})
}

// PublishCampaign pushes a row change on one of the owner's campaigns.
func (h *Hub) PublishCampaign(ownerID uint, action string, c *models.Campaign) {
	h.publish(ownerID, Event{Type: "campaign", Action: action, Campaign: c})
}

// ClientCount reports live subscriptions, used to verify teardown.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}
