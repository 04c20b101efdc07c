// Package ws serves the realtime websocket endpoint. Connections authenticate at
// the handshake, join their channels, and receive frames from the broadcast relay.
package ws

import (
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/realtime"
)

// Hub tracks which connections of this process joined which channel.
// It implements broadcast.Sink.
type Hub struct {
	mu       sync.RWMutex
	channels map[realtime.Channel]map[*Client]struct{}
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		channels: make(map[realtime.Channel]map[*Client]struct{}),
		logger:   logger.With("component", "ws-hub"),
	}
}

func (h *Hub) join(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range c.channels {
		if h.channels[ch] == nil {
			h.channels[ch] = make(map[*Client]struct{})
		}
		h.channels[ch][c] = struct{}{}
	}
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range c.channels {
		delete(h.channels[ch], c)
		if len(h.channels[ch]) == 0 {
			delete(h.channels, ch)
		}
	}
}

// Deliver queues frame on every connection joined to channel. A connection whose
// queue is full misses the frame.
func (h *Hub) Deliver(channel realtime.Channel, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.channels[channel] {
		if !c.enqueue(frame) {
			h.logger.Warn("dropping frame for slow connection", "channel", channel.String(), "user_id", c.actor.ID().String())
		}
	}
}

// Subscribers returns how many local connections joined channel.
func (h *Hub) Subscribers(channel realtime.Channel) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
