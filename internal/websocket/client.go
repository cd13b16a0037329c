package websocket

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Messages the hub itself produces, next to the session messages it relays.
const (
	MsgJoined = "joined"
	MsgPong   = "pong"
)

// clientPing is what browsers send instead of protocol-level pings, which
// their websocket API does not expose.
const clientPing = "ping"

// Client is one socket watching an edit session.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn

	SessionID string
	UserID    uuid.UUID

	// Outbound JSON frames; closed by the hub on unregister.
	Send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, sessionID string, userID uuid.UUID) *Client {
	return &Client{Hub: hub, Conn: conn, SessionID: sessionID, UserID: userID, Send: make(chan []byte, sendBuffer)}
}

// enqueue queues msg without blocking; a full buffer drops it.
func (c *Client) enqueue(msg Message) bool {
	payload, err := json.Marshal(msg)
	if err != nil {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// readPump handles keepalives. Apart from "ping" the stream is server to
// client, so other inbound frames are ignored.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"session_id": c.SessionID, "error": err})
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		var in Message
		if json.Unmarshal(data, &in) == nil && in.Type == clientPing {
			c.Conn.SetReadDeadline(time.Now().Add(pongWait))
			c.enqueue(Message{Type: MsgPong, Data: map[string]interface{}{"watchers": c.Hub.ClientCount(c.SessionID)}})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
