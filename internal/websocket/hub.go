package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	CardNumber() string
	Send(data []byte) error
	Close() error
}

// Hub manages WebSocket connections organized by card number.
// It is safe for concurrent use
type Hub struct {
	// cards maps card number to a map of client ID to client
	cards map[string]map[string]ClientInterface
	mu    sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		cards: make(map[string]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its card number
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cardNumber := client.CardNumber()
	clientID := client.ID()

	if h.cards[cardNumber] == nil {
		h.cards[cardNumber] = make(map[string]ClientInterface)
	}

	h.cards[cardNumber][clientID] = client

	log.Debug().
		Str("client_id", clientID).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cardNumber := client.CardNumber()
	clientID := client.ID()

	if clients, ok := h.cards[cardNumber]; ok {
		if _, exists := clients[clientID]; exists {
			delete(clients, clientID)

			// Clean up empty card maps
			if len(clients) == 0 {
				delete(h.cards, cardNumber)
			}

			log.Debug().
				Str("client_id", clientID).
				Msg("WebSocket client unregistered")
		}
	}
}

// Broadcast sends an event to all clients subscribed to a card number
func (h *Hub) Broadcast(cardNumber string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	clients := make([]ClientInterface, 0, len(h.cards[cardNumber]))
	for _, client := range h.cards[cardNumber] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.Send(data); err != nil {
			log.Warn().
				Str("client_id", client.ID()).
				Str("event_type", event.Type).
				Msg("Dropping slow or closed WebSocket client")
			h.Unregister(client)
			_ = client.Close()
		}
	}
}

// ClientCount returns the number of clients subscribed to a card number
func (h *Hub) ClientCount(cardNumber string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cards[cardNumber])
}
