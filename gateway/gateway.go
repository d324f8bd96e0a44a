// Package gateway is the realtime entry point: it authenticates connection
// attempts, upgrades them to websockets and binds each accepted connection
// to its project room.
package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"devroom/contract"
	apperrors "devroom/errors"
	"devroom/observability"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Gateway struct {
	gate        *Gate
	dispatcher  Dispatcher
	broadcaster contract.Broadcaster
	monitor     *observability.Monitor
	upgrader    websocket.Upgrader
	sendBuffer  int
	log         *slog.Logger
}

func NewGateway(log *slog.Logger, gate *Gate, dispatcher Dispatcher,
	broadcaster contract.Broadcaster, monitor *observability.Monitor, sendBuffer int) *Gateway {
	return &Gateway{
		gate:        gate,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		monitor:     monitor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origins are screened by the reverse proxy in front
			// of this service.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		log:        log,
	}
}

// HandleWS serves GET /ws. The handshake runs before the upgrade: a failed
// gate rejects the attempt with a plain HTTP status and the caller never
// gains any broadcast capability. An accepted connection joins exactly one
// room, keyed by the resolved project id, and leaves it on disconnect.
func (g *Gateway) HandleWS(w http.ResponseWriter, r *http.Request) {
	identity, roomID, err := g.gate.Authenticate(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apperrors.HTTPStatus(err))
		_ = json.NewEncoder(w).Encode(map[string]string{"errors": err.Error()})
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	c := newClient(uuid.NewString(), identity, roomID, conn, g.sendBuffer, g.log)
	g.broadcaster.Join(c.id, roomID, c)
	g.monitor.ConnAdded()
	g.log.Info("Client connected", "conn_id", c.id, "room_id", roomID, "user", identity.Email)

	go c.writePump()
	go c.readPump(g.dispatcher, func() {
		// Transport-level disconnects are an implicit leave: best-effort
		// cleanup, no error propagated.
		g.broadcaster.Leave(c.id, roomID)
		g.monitor.ConnRemoved()
		g.log.Info("Client disconnected", "conn_id", c.id, "room_id", roomID)
	})
}
