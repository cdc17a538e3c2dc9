package hub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"forik/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// WebSocketClient carries events to one connected shell. Traffic is one-way:
// the read pump only services pings and connection teardown.
type WebSocketClient struct {
	id   string
	conn *websocket.Conn
	hub  *Manager
	send chan models.Event
	log  *zap.SugaredLogger
}

func NewWebSocketClient(id string, conn *websocket.Conn, hub *Manager, log *zap.SugaredLogger) *WebSocketClient {
	return &WebSocketClient{
		id:   id,
		conn: conn,
		hub:  hub,
		send: make(chan models.Event, sendBuffer),
		log:  log,
	}
}

func (c *WebSocketClient) ID() string                       { return c.id }
func (c *WebSocketClient) SendChannel() chan<- models.Event { return c.send }

func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the send channel, which stops the write pump.
func (c *WebSocketClient) Close() {
	close(c.send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.UnregisterCh <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// the shell never sends payloads; reads only surface disconnects
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warnw("websocket read failed", "client", c.id, "error", err)
			}
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				c.log.Errorw("event encode failed", "client", c.id, "error", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
