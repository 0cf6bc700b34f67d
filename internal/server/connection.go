package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	sendBufferSize = 16
)

// Connection is one browser tab. It owns a Session; the read pump is the
// only goroutine that touches the engine.
type Connection struct {
	conn    *websocket.Conn
	session *Session
	send    chan *Message
	clock   quartz.Clock // ping ticker; socket deadlines use wall time
	logger  *log.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewConnection wraps conn.
func NewConnection(parent context.Context, conn *websocket.Conn, session *Session, clock quartz.Clock, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(parent)
	return &Connection{
		conn:    conn,
		session: session,
		send:    make(chan *Message, sendBufferSize),
		clock:   clock,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Serve sends the initial snapshot and pumps messages until the peer goes
// away or the context is cancelled.
func (c *Connection) Serve() {
	c.enqueue(c.session.Snapshot(welcomeMessage(c.session)))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writePump()
	}()

	c.readPump()
	c.cancel()
	wg.Wait()
	_ = c.conn.Close()
}

// Close asks the peer to go away and stops both pumps.
func (c *Connection) Close() {
	c.cancel()
}

func (c *Connection) enqueue(msg *Message) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WebSocket error", "error", err)
			}
			return
		}

		if !c.enqueue(c.session.Handle(&msg)) {
			return
		}
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := c.clock.NewTicker(pingPeriod, "conn", "ping")
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				c.cancel()
				_ = c.conn.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				_ = c.conn.Close()
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			// Unblocks readPump when the shutdown did not come from the peer.
			_ = c.conn.Close()
			return
		}
	}
}
