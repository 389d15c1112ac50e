/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	DefaultMaxMessageSize int64 = 16 << 20
	DefaultSendBuffer           = 32
)

// Options tunes each websocket connection.
type Options struct {
	MaxMessageSize int64
	SendBuffer     int
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection. send is closed by the hub once the
// client is unregistered.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan Envelope
}

func (c *Client) ID() string { return c.id }

// Send never blocks. A client whose queue is full is disconnected.
func (c *Client) Send(env Envelope) bool {
	select {
	case c.send <- env:
		return true
	default:
		_ = c.conn.Close()
		return false
	}
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(opts Options) httprouter.Handle {
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = DefaultMaxMessageSize
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = DefaultSendBuffer
	}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logf("ROOMS: Upgrade error: %v", err)
			return
		}
		conn.SetReadLimit(opts.MaxMessageSize)

		client := &Client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan Envelope, opts.SendBuffer),
		}

		if !submit(h, h.register, client) {
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(h)
	}
}

func (c *Client) readPump(h *Hub) {
	reason := "client closed connection"
	defer func() {
		submit(h, h.unreg, disconnect{client: c, reason: reason})
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			reason = err.Error()
			return
		}

		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logf("QUIZ: Ignoring malformed frame from %s: %v", c.id, err)
			continue
		}

		if !submit(h, h.inbound, inboundRequest{client: c, msg: msg}) {
			reason = "server shutting down"
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
