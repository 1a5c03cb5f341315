package api

import (
	"github.com/roomgate/roomgate/internal/events"
	"github.com/roomgate/roomgate/internal/token"
)

// TokenService issues room access tokens and describes the server's
// non-secret capabilities.
type TokenService interface {
	RequestToken(room, identity, name string) (string, error)
	DescribeConfiguration() token.ConfigurationInfo
}

// Broadcaster fans one serialized payload out to all live listeners.
type Broadcaster interface {
	Broadcast(data []byte)
	Count() int
}

// EventRecorder retains recent broadcast payloads for inspection.
type EventRecorder interface {
	Add(payload []byte) *events.Event
	Recent() []*events.Event
}
