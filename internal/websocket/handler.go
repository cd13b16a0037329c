package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches an upgraded connection to the session's watchers, greets
// it with a joined message and blocks until the connection closes.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string, userID uuid.UUID) {
	client := newClient(hub, c, sessionID, userID)
	client.enqueue(Message{Type: MsgJoined, Data: map[string]interface{}{"session_id": sessionID}})
	hub.register <- client

	go client.writePump()
	client.readPump()
}
