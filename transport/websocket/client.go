package websocket

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// sendQueueSize bounds the per-connection outbound queue. A client
// that cannot drain it in time loses pushes instead of stalling the
// broadcast to everyone else.
const sendQueueSize = 16

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

func newClient(id string, conn *websocket.Conn, logger *slog.Logger) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendQueueSize),

		logger: logger.With("component", "ws-client", "connID", id),
	}
}

// writePump drains the outbound queue onto the wire. One goroutine per
// connection; it exits when the queue is closed or the write fails.
func (that *client) writePump() {
	for msg := range that.send {
		if err := that.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			that.logger.Error("failed to write message", "error", err)
			return
		}
	}
}

// enqueue - best-effort push. Never blocks; a full queue drops the
// message and a closed client swallows it.
func (that *client) enqueue(msg []byte) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	select {
	case that.send <- msg:
	default:
		that.logger.Warn("outbound queue full, dropping push")
	}
}

func (that *client) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	that.closed = true
	close(that.send)
	_ = that.conn.Close()
}
