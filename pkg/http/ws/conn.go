package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Connection wraps a websocket connection with a write lock so concurrent
// sends never interleave frames.
type Connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewConnection wraps an upgraded websocket connection.
func NewConnection(conn *websocket.Conn) *Connection {
	return &Connection{conn: conn}
}

// Send marshals and writes one message.
func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(msg)
}

// Read blocks for the next message from the client.
func (c *Connection) Read() (Message, error) {
	var msg Message
	err := c.conn.ReadJSON(&msg)
	return msg, err
}

// Close shuts the underlying connection.
func (c *Connection) Close() error {
	return c.conn.Close()
}
