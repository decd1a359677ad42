package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/findesk/backoffice/internal/events"
)

// EventsHandler upgrades clients onto the WebSocket notification channel.
type EventsHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewEventsHandler creates a new EventsHandler for the given hub.
// Origin checking is delegated to the CORS layer; the upgrader accepts
// any origin that reached it.
func NewEventsHandler(hub *events.Hub, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Subscribe handles GET requests that upgrade to a WebSocket subscription.
//
// Endpoint: GET /api/events
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	events.ServeWS(h.hub, h.upgrader, h.log, w, r)
}
