// Package events implements the WebSocket notification channel. Clients
// subscribe to be told when locker documents change state; the channel
// carries notifications only, never reconciliation data, so consumers are
// expected to re-fetch after an event.
package events

import (
	"sync"
)

// Document event names pushed over the channel.
const (
	EventDocumentProcessing       = "documentProcessing"
	EventDocumentProcessed        = "documentProcessed"
	EventDocumentProcessingFailed = "documentProcessingFailed"
	EventDocumentExpired          = "documentExpired"
)

// PayloadTypeLockerDocument tags document events on the wire.
const PayloadTypeLockerDocument = "locker_document"

// Event is a single notification sent to all connected clients.
type Event struct {
	Event   string  `json:"event"`
	Payload Payload `json:"payload"`
}

// Payload carries the entity reference for an event.
type Payload struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Publisher is the sending side of the notification channel. Services
// depend on this interface rather than the hub so tests can record events.
type Publisher interface {
	Publish(event Event)
}

// Hub fans events out to all connected WebSocket clients.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	mu      sync.Mutex
	clients map[*Client]struct{}
}

// NewHub creates a Hub. Run must be started on its own goroutine.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		clients:    make(map[*Client]struct{}),
	}
}

// Run services the hub channels until the broadcast channel is closed.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case event := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					// Slow consumer: drop it rather than block the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for broadcast. Non-blocking; events are dropped
// when the broadcast buffer is full, which is acceptable for a channel
// whose only contract is "something changed, re-fetch".
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// DocumentEvent builds a locker-document event.
func DocumentEvent(name, documentID string) Event {
	return Event{
		Event:   name,
		Payload: Payload{Type: PayloadTypeLockerDocument, ID: documentID},
	}
}
