package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"devroom/domain"
	"devroom/domain/event"

	"github.com/gorilla/websocket"
)

const (
	// EventProjectMessage is the single chat event of the socket protocol,
	// used for inbound messages, relays and assistant replies alike.
	EventProjectMessage = "project-message"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Envelope is the JSON frame exchanged over the socket.
type Envelope struct {
	Event string             `json:"event"`
	Data  domain.ChatMessage `json:"data"`
}

// Dispatcher accepts inbound messages from connections.
type Dispatcher interface {
	Dispatch(in event.MessagePosted)
}

// client is one accepted connection, owned by the gateway for its lifetime.
// It is bound to exactly one room (the project id of its handshake).
type client struct {
	id       string
	identity domain.Identity
	roomID   string
	conn     *websocket.Conn
	send     chan []byte
	log      *slog.Logger
}

func newClient(id string, identity domain.Identity, roomID string,
	conn *websocket.Conn, sendBuffer int, log *slog.Logger) *client {
	return &client{
		id:       id,
		identity: identity,
		roomID:   roomID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		log:      log,
	}
}

// Consume implements contract.Sink: it queues one message for delivery to
// this connection. Non-blocking; a full buffer drops the message so a slow
// reader never stalls the room fan-out.
func (c *client) Consume(_ context.Context, msg domain.ChatMessage) error {
	data, err := json.Marshal(Envelope{Event: EventProjectMessage, Data: msg})
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	default:
		c.log.Debug("Client buffer full, message dropped", "conn_id", c.id)
		return nil
	}
}

// readPump consumes frames from the socket until the client disconnects,
// dispatching chat messages into the pipeline. The sender label and project
// id are overridden with the handshake values so a client can neither spoof
// another user's email nor post into a foreign room.
func (c *client) readPump(dispatcher Dispatcher, onClose func()) {
	defer func() {
		onClose()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Debug("Read error", "conn_id", c.id, "error", err)
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			c.log.Debug("Malformed frame ignored", "conn_id", c.id)
			continue
		}
		if envelope.Event != EventProjectMessage {
			// Unknown events are silently ignored, like the legacy service.
			continue
		}

		msg := envelope.Data
		msg.Sender = c.identity.Email
		msg.ProjectID = c.roomID
		dispatcher.Dispatch(event.MessagePosted{Msg: msg, SenderConn: c.id})
	}
}

// writePump pushes queued frames to the socket and keeps the connection
// alive with pings. It exits when the send channel closes or a write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
