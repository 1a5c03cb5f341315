// Package ws implements the broadcast fan-out hub and its WebSocket
// transport.
//
// Hub holds a set of Connection values and pushes each broadcast payload to
// all of them. Delivery is best-effort: a connection whose send fails is
// removed from the set and closed after the sweep, and the remaining
// connections are unaffected. Register and Unregister are idempotent.
//
// The one conforming Connection implementation is Conn, a gorilla/websocket
// adapter with a buffered outgoing channel, ping/pong liveness checks, and
// read/write deadlines. Hub.ServeHTTP upgrades an HTTP request and serves
// the connection until it closes; the endpoint is mounted at /ws by the
// server. The hub itself imposes no cancellation or timeout on sends — a
// hung socket is caught by the write deadline and surfaced as a failed
// send.
package ws
