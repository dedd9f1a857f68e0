// Package ws is the websocket adapter: it owns the transport connection,
// authenticates the handshake, decodes inbound events once at the
// boundary and routes them to the relay core.
package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/parleyhq/relay/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// Conn wraps a websocket connection with a buffered send channel. A full
// buffer fails fast with ErrBackpressure instead of blocking fan-out.
type Conn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newConn(ws *websocket.Conn, buffer int) *Conn {
	return &Conn{conn: ws, send: make(chan core.Frame, buffer)}
}

func (c *Conn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.mu.Unlock()
}
