// Package hub tracks live websocket connections, their debate bindings, and
// fans events out to every connection bound to a debate.
package hub

import (
	"log"
	"sync"
)

// Event is one server-to-client notification. Data is marshaled as-is by
// the transport layer.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Binding associates a connection with the debate and label it joined as.
type Binding struct {
	DebateID  string
	UserLabel string
}

// queueSize bounds each connection's outbound buffer. A consumer that falls
// this far behind starts losing events rather than blocking emitters.
const queueSize = 64

// Hub is the connection registry. Bindings are looked up per action instead
// of being stored on the connection, so session membership has one owner.
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]chan Event
	bindings map[string]Binding
	members  map[string]map[string]struct{}
}

func New() *Hub {
	return &Hub{
		conns:    make(map[string]chan Event),
		bindings: make(map[string]Binding),
		members:  make(map[string]map[string]struct{}),
	}
}

// Register adds a connection and returns its outbound event queue. Events
// arrive on the channel in emission order.
func (h *Hub) Register(connID string) <-chan Event {
	ch := make(chan Event, queueSize)

	h.mu.Lock()
	h.conns[connID] = ch
	h.mu.Unlock()

	return ch
}

// Unregister releases the connection's binding, removes it from its debate,
// and closes its queue. Emits nothing.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if b, ok := h.bindings[connID]; ok {
		if conns, ok := h.members[b.DebateID]; ok {
			delete(conns, connID)
			if len(conns) == 0 {
				delete(h.members, b.DebateID)
			}
		}
		delete(h.bindings, connID)
	}

	if ch, ok := h.conns[connID]; ok {
		delete(h.conns, connID)
		close(ch)
	}
}

// Bind records the connection as a participant of the debate. Rebinding an
// already-bound connection moves it to the new debate.
func (h *Hub) Bind(connID, debateID, userLabel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[connID]; !ok {
		return
	}

	if prev, ok := h.bindings[connID]; ok {
		if conns, ok := h.members[prev.DebateID]; ok {
			delete(conns, connID)
		}
	}

	h.bindings[connID] = Binding{DebateID: debateID, UserLabel: userLabel}
	if _, ok := h.members[debateID]; !ok {
		h.members[debateID] = make(map[string]struct{})
	}
	h.members[debateID][connID] = struct{}{}
}

// Binding resolves the debate/label a connection joined as.
func (h *Hub) Binding(connID string) (Binding, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	b, ok := h.bindings[connID]
	return b, ok
}

// EmitToDebate delivers the event to every connection currently bound to
// the debate. Connections bound to other debates never see it.
func (h *Hub) EmitToDebate(debateID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID := range h.members[debateID] {
		h.deliver(connID, ev)
	}
}

// EmitToConn delivers the event to a single connection.
func (h *Hub) EmitToConn(connID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.deliver(connID, ev)
}

// deliver assumes h.mu is held at least for reading.
func (h *Hub) deliver(connID string, ev Event) {
	ch, ok := h.conns[connID]
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
		log.Printf("[hub] dropping %s event for slow connection %s", ev.Type, connID)
	}
}
