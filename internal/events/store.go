package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one broadcast payload together with when it was received.
type Event struct {
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}

// Store is a thread-safe in-memory record of recent broadcast events,
// ordered oldest first. Entries older than the TTL are evicted by a
// background goroutine (Run); a capacity cap bounds memory regardless of
// TTL.
type Store struct {
	mu      sync.RWMutex
	entries []*Event
	ttl     time.Duration
	cap     int
	now     func() time.Time // injectable for deterministic tests
}

// New creates a Store retaining events for ttl, holding at most capacity
// entries.
func New(ttl time.Duration, capacity int) *Store {
	return &Store{
		ttl: ttl,
		cap: capacity,
		now: time.Now,
	}
}

// Add records a broadcast payload and returns the stored event. The payload
// bytes are copied; callers may reuse the slice.
func (s *Store) Add(payload []byte) *Event {
	e := &Event{
		ID:      uuid.NewString(),
		Payload: append(json.RawMessage(nil), payload...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e.ReceivedAt = s.now()
	s.entries = append(s.entries, e)
	if len(s.entries) > s.cap {
		s.entries = s.entries[len(s.entries)-s.cap:]
	}
	return e
}

// Recent returns all events received within the TTL, oldest first. Stale
// entries that have not yet been evicted are excluded.
func (s *Store) Recent() []*Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Event, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ReceivedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TTL returns the configured retention window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Evict removes entries received before now minus TTL. It returns the
// number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	keep := 0
	for keep < len(s.entries) && !s.entries[keep].ReceivedAt.After(cutoff) {
		keep++
	}
	if keep == 0 {
		return 0
	}
	s.entries = append([]*Event(nil), s.entries[keep:]...)
	return keep
}

// Run starts the background TTL eviction loop. It ticks at half the TTL
// interval (minimum 1 second) so entries are evicted promptly. Run blocks
// until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("events: evicted stale entries", "count", n)
			}
		}
	}
}
