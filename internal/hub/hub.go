// Package hub fans archive change events out to websocket subscribers. Pages
// listen on /ws and refresh themselves when the inventory changes under them.
package hub

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	"arkiv/internal/service"
)

// Hub owns the subscriber set. All bookkeeping happens on the Run goroutine;
// the channels are the only way in.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]bool
	count      atomic.Int32
	log        *zap.Logger
}

func New(log *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*client]bool),
		log:        log,
	}
}

// Run processes registrations and broadcasts until ctx is canceled, then
// closes every remaining client. Call it once, in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.count.Store(0)
			h.log.Info("ws_hub_stopped")
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int32(len(h.clients)))
			h.log.Debug("ws_client_connected", zap.Int("clients", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.count.Store(int32(len(h.clients)))
				h.log.Debug("ws_client_disconnected", zap.Int("clients", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// A full buffer means the client stopped reading.
					delete(h.clients, c)
					close(c.send)
					h.count.Store(int32(len(h.clients)))
					h.log.Warn("ws_client_dropped", zap.Int("clients", len(h.clients)))
				}
			}
		}
	}
}

// Clients returns the current subscriber count.
func (h *Hub) Clients() int { return int(h.count.Load()) }

// Publish implements service.EventPublisher. It never blocks: when the hub
// cannot keep up the event is dropped with a warning.
func (h *Hub) Publish(e service.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		h.log.Error("ws_event_marshal_failed", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn("ws_event_dropped", zap.String("type", e.Type))
	}
}
