package ws

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"voicechat-backend/services"
)

const (
	readDeadline  = 300 * time.Second
	writeDeadline = 30 * time.Second
	pingInterval  = 240 * time.Second
	maxFrameSize  = 1 << 20
)

// Client pairs a WebSocket connection with its server-assigned identity.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	connID string
	userID string
	router *services.Router
}

// readPump feeds inbound envelopes to the router one at a time; each
// envelope's handling runs to completion before the next read. On exit the
// disconnect unwind runs before the connection handle is released.
func (c *Client) readPump() {
	defer func() {
		c.router.Disconnect(c.connID, c.userID)
		c.hub.remove(c.connID)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Conn %s read error: %v", c.connID, err)
			}
			break
		}
		c.router.Dispatch(c.connID, c.userID, raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("Conn %s write error: %v", c.connID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
