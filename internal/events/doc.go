// Package events keeps a short-lived in-memory record of broadcast
// payloads so late-joining clients and operators can inspect what was
// recently pushed through the hub (served at GET /events/recent).
//
// The store is append-only with TTL eviction and a hard capacity cap;
// entries are ordered oldest first.
package events
