// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 16
)

// Message types sent to and accepted from the browser.
const (
	MessageTypeAuthState = "auth_state"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
)

// Message is the JSON frame exchanged with the browser.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

var clientIDCounter atomic.Uint64

// Client is one browser connection with a read and a write goroutine.
type Client struct {
	id     uint64
	conn   *websocket.Conn
	send   chan Message
	logger zerolog.Logger
}

func newClient(conn *websocket.Conn, logger zerolog.Logger) *Client {
	id := clientIDCounter.Add(1)
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan Message, sendBuffer),
		logger: logger.With().Uint64("client_id", id).Logger(),
	}
}

// ID returns the connection's process-unique identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// enqueue queues msg without blocking. It reports false when the buffer is
// full, which means the browser stopped reading.
func (c *Client) enqueue(msg Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// readPump runs until the connection fails or the browser closes it. The
// only accepted input is an application-level ping.
func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Debug().Err(err).Msg("Unexpected websocket close")
			}
			return
		}
		if msg.Type == MessageTypePing {
			c.enqueue(Message{Type: MessageTypePong})
		}
	}
}

// writePump drains send until it is closed, pinging the browser in between.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug().Err(err).Msg("Failed to write websocket message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
