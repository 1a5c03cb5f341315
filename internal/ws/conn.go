package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-connection outgoing message buffer depth.
	sendBufSize = 16

	// readLimit caps inbound frames; clients only send liveness traffic.
	readLimit = 512
)

// ErrSendBufferFull is returned by Conn.Send when the connection's outgoing
// buffer is full, which the hub treats as a dead connection.
var ErrSendBufferFull = errors.New("ws: send buffer full")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Allow all origins — callers should apply CORS at the reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Conn adapts a gorilla WebSocket connection to the hub's Connection
// interface. Outgoing payloads are queued on a buffered channel drained by
// writePump; a full buffer fails the send rather than blocking the
// broadcaster.
type Conn struct {
	id   string
	sock *websocket.Conn
	send chan []byte
}

func newConn(sock *websocket.Conn) *Conn {
	return &Conn{
		id:   uuid.NewString(),
		sock: sock,
		send: make(chan []byte, sendBufSize),
	}
}

// ID returns the connection's unique identifier, used in logs.
func (c *Conn) ID() string { return c.id }

// Send enqueues data for delivery. It never blocks: a full outgoing buffer
// is reported as ErrSendBufferFull.
func (c *Conn) Send(data []byte) error {
	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close closes the underlying socket, terminating both pumps.
func (c *Conn) Close() error {
	return c.sock.Close()
}

// ServeHTTP upgrades the HTTP connection to WebSocket, registers it with
// the hub, and serves it until the remote side closes or the channel
// errors. The server only reads for liveness and writes broadcast payloads.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := newConn(sock)
	h.Register(c)
	defer func() {
		h.Unregister(c)
		c.Close() //nolint:errcheck
	}()

	go c.writePump()
	c.readPump() // blocks until the connection closes
}

// writePump drains the connection's send channel onto the socket and sends
// periodic ping frames. Runs in its own goroutine per connection.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
			if err := c.sock.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads frames from the socket to process control messages (pong,
// close) and detect disconnects. Inbound data is a liveness signal only.
// Blocks until the connection closes.
func (c *Conn) readPump() {
	defer c.sock.Close()
	c.sock.SetReadLimit(readLimit)
	c.sock.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.sock.ReadMessage(); err != nil {
			return
		}
	}
}
