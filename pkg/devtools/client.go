package devtools

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// client is one websocket connection. Frames are queued latest-wins: a
// slow client skips intermediate states but always sees the newest one.
type client struct {
	conn    *websocket.Conn
	pending chan Frame
	done    chan struct{}
	once    sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:    conn,
		pending: make(chan Frame, 1),
		done:    make(chan struct{}),
	}
}

func (c *client) queue(f Frame) {
	for {
		select {
		case <-c.done:
			return
		case c.pending <- f:
			return
		default:
		}
		select {
		case <-c.pending:
		default:
		}
	}
}

// writeLoop is the only writer on conn.
func (c *client) writeLoop(logger *slog.Logger) {
	for {
		select {
		case <-c.done:
			return
		case f := <-c.pending:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				logger.Debug("devtools write failed", "error", err)
				c.close()
				return
			}
		}
	}
}

// readLoop discards client messages until the connection fails.
func (c *client) readLoop() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
