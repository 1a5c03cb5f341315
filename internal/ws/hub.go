package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Connection is one live push channel. Send must either enqueue the payload
// or return an error; a failed send marks the connection dead and the hub
// removes and closes it. Implementations must be comparable (the hub keys
// its set by connection value).
type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Hub maintains the set of live connections and fans serialized payloads
// out to all of them. Register, Unregister, and Broadcast are safe under
// concurrent invocation; Broadcast iterates a stable snapshot of the set so
// connections closing mid-broadcast cannot corrupt iteration.
type Hub struct {
	mu    sync.RWMutex
	conns map[Connection]struct{}
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{
		conns: make(map[Connection]struct{}),
	}
}

// Register adds c to the connection set. Idempotent.
func (h *Hub) Register(c Connection) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()

	slog.Debug("listener registered", "conn_id", c.ID(), "listeners", n)
}

// Unregister removes c from the connection set. Idempotent; it does not
// close the connection.
func (h *Hub) Unregister(c Connection) {
	h.mu.Lock()
	if _, ok := h.conns[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.conns, c)
	n := len(h.conns)
	h.mu.Unlock()

	slog.Debug("listener unregistered", "conn_id", c.ID(), "listeners", n)
}

// Broadcast sends data to every connection currently in the set, in
// unspecified order. Every recipient gets the identical bytes. Connections
// whose send fails are collected and, once the sweep completes, removed
// from the set and closed; one dead connection never fails the broadcast
// as a whole. There is no retry and no delivery acknowledgment.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	targets := make([]Connection, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	var failed []Connection
	for _, c := range targets {
		if err := c.Send(data); err != nil {
			failed = append(failed, c)
		}
	}

	for _, c := range failed {
		h.Unregister(c)
		c.Close() //nolint:errcheck
		slog.Warn("dropped dead listener", "conn_id", c.ID())
	}
}

// BroadcastJSON serializes v once and broadcasts the resulting bytes.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal broadcast payload: %w", err)
	}
	h.Broadcast(data)
	return nil
}

// Count returns the number of currently registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Run blocks until ctx is cancelled, then closes and removes all
// connections.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.Close() //nolint:errcheck
		delete(h.conns, c)
	}
}
