// Package ws is the websocket transport for the debate channel. It owns the
// upgrade, the read loop for client events, and the single-writer pump that
// drains a connection's hub queue.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"debate-arena/internal/hub"
	"debate-arena/internal/observability"
	debateservice "debate-arena/internal/service/debate"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second
)

// Handler upgrades websocket connections and relays events between the
// client and the lifecycle coordinator.
type Handler struct {
	coord    *debateservice.Coordinator
	hub      *hub.Hub
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(coord *debateservice.Coordinator, h *hub.Hub, metrics *observability.Metrics) *Handler {
	return &Handler{
		coord:   coord,
		hub:     h,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinPayload struct {
	DebateID  string `json:"debateId"`
	UserLabel string `json:"userLabel"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// handleWebSocket runs one connection: register with the hub, pump outbound
// events, and dispatch inbound events until the peer goes away.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	events := h.hub.Register(connID)
	defer h.coord.Release(connID)

	h.metrics.ConnectionOpened()
	defer h.metrics.ConnectionClosed()

	log.Printf("[ws] new connection %s", connID)

	done := make(chan struct{})
	defer close(done)
	go h.writePump(conn, connID, events, done)

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error on %s: %v", connID, err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))
		h.dispatch(r, connID, &msg)
	}
}

// dispatch routes one inbound event to the coordinator.
func (h *Handler) dispatch(r *http.Request, connID string, msg *inboundMessage) {
	ctx := r.Context()

	switch msg.Type {
	case "join":
		var join joinPayload
		if err := json.Unmarshal(msg.Data, &join); err != nil {
			h.hub.EmitToConn(connID, hub.Event{Type: "error", Data: "invalid join payload"})
			return
		}
		h.coord.Join(ctx, connID, join.DebateID, join.UserLabel)
	case "message":
		var text string
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			h.hub.EmitToConn(connID, hub.Event{Type: "error", Data: "invalid message payload"})
			return
		}
		h.coord.Message(ctx, connID, text)
	case "end":
		h.coord.End(ctx, connID)
	default:
		h.hub.EmitToConn(connID, hub.Event{Type: "error", Data: "unsupported message type: " + msg.Type})
	}
}

// writePump is the connection's only writer. It serializes hub events and
// keepalive pings onto the wire, preserving per-connection event order.
func (h *Handler) writePump(conn *websocket.Conn, connID string, events <-chan hub.Event, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			out := outgoingMessage{Type: ev.Type, Data: ev.Data, Timestamp: time.Now().Unix()}
			if err := conn.WriteJSON(out); err != nil {
				log.Printf("[ws] write to %s failed: %v", connID, err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
