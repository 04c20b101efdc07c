package ws

import (
	"bytes"
	"encoding/json"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/realtime"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

var pongFrame = []byte(`{"event":"pong"}`)

// Client is one authenticated socket connection.
type Client struct {
	conn     *websocket.Conn
	actor    actor.Actor
	channels []realtime.Channel
	send     chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(conn *websocket.Conn, a actor.Actor, channels []realtime.Channel) *Client {
	return &Client{
		conn:     conn,
		actor:    a,
		channels: channels,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
	}
}

func (c *Client) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump answers pings and detects disconnects. Any other client message is ignored.
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if isPing(message) {
			c.enqueue(pongFrame)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// isPing accepts a bare "ping" or a JSON message whose event or type is "ping".
func isPing(message []byte) bool {
	trimmed := bytes.TrimSpace(message)
	if string(trimmed) == "ping" {
		return true
	}
	var msg struct {
		Event string `json:"event"`
		Type  string `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return false
	}
	return msg.Event == "ping" || msg.Type == "ping"
}
