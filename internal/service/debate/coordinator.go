package debate

import (
	"context"
	"fmt"
	"log"
	"time"

	"debate-arena/internal/hub"
	"debate-arena/internal/model/debate"
	"debate-arena/internal/observability"
)

// Judge decides the winner of a finished transcript with one external call.
type Judge interface {
	Evaluate(ctx context.Context, transcript []debate.Message) (string, error)
}

// ChatPayload is the wire shape of a broadcast chat line.
type ChatPayload struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// Coordinator drives the debate lifecycle: join validation, message
// acceptance and fan-out, and the close→evaluate→announce sequence.
type Coordinator struct {
	store   *Service
	hub     *hub.Hub
	judge   Judge
	metrics *observability.Metrics
}

func NewCoordinator(store *Service, h *hub.Hub, judge Judge, metrics *observability.Metrics) *Coordinator {
	return &Coordinator{store: store, hub: h, judge: judge, metrics: metrics}
}

// Join binds the connection to a debate. An unknown or closed debate yields
// a unicast error to the requester; nothing is broadcast and no state
// changes. On success the join announcement reaches every bound connection,
// the joiner included.
func (c *Coordinator) Join(ctx context.Context, connID, debateID, userLabel string) {
	d, err := c.store.Get(ctx, debateID)
	if err != nil || d.Status != debate.StatusOpen {
		c.hub.EmitToConn(connID, hub.Event{Type: "error", Data: "Invalid or closed debate"})
		return
	}

	c.hub.Bind(connID, debateID, userLabel)
	c.metrics.CountEvent("join")
	c.hub.EmitToDebate(debateID, hub.Event{
		Type: "system",
		Data: fmt.Sprintf("%s joined the debate", userLabel),
	})
}

// Message appends one chat line and broadcasts it. A connection that never
// joined is ignored; so is a message for a debate that already closed (the
// sender saw the close announcement before this could land).
func (c *Coordinator) Message(ctx context.Context, connID, text string) {
	b, ok := c.hub.Binding(connID)
	if !ok {
		// unbound: message before a successful join
		return
	}

	msg, err := c.store.Append(ctx, b.DebateID, b.UserLabel, text)
	if err != nil {
		// stale: debate closed (or gone) between join and send
		return
	}

	c.metrics.CountEvent("message")
	c.hub.EmitToDebate(b.DebateID, hub.Event{
		Type: "message",
		Data: ChatPayload{User: msg.User, Text: msg.Text},
	})
}

// End closes the debate and kicks off evaluation. The store's once-only
// close makes End idempotent: a second end, from either side, is a silent
// no-op, so evaluation runs at most once per debate.
func (c *Coordinator) End(ctx context.Context, connID string) {
	b, ok := c.hub.Binding(connID)
	if !ok {
		return
	}

	transcript, err := c.store.Close(ctx, b.DebateID)
	if err != nil {
		// stale: already closed by the other side, or the debate vanished
		return
	}

	c.metrics.CountEvent("end")
	c.metrics.DebateClosed()
	c.hub.EmitToDebate(b.DebateID, hub.Event{
		Type: "system",
		Data: fmt.Sprintf("Debate ended by %s", b.UserLabel),
	})

	go c.evaluate(b.DebateID, transcript)
}

// Release drops the connection's binding and queue on transport teardown.
func (c *Coordinator) Release(connID string) {
	c.hub.Unregister(connID)
}

// evaluate runs after the close broadcast, detached from the ending
// connection's request. The debate is already closed, so nothing can race
// with the transcript; failures stay scoped to this one debate.
func (c *Coordinator) evaluate(debateID string, transcript []debate.Message) {
	start := time.Now()
	winner, err := c.judge.Evaluate(context.Background(), transcript)
	if err != nil {
		c.metrics.ObserveEvaluation("failure", time.Since(start))
		log.Printf("[debate] evaluation of %s failed: %v", debateID, err)
		c.hub.EmitToDebate(debateID, hub.Event{Type: "system", Data: "Could not evaluate debate."})
		return
	}

	c.metrics.ObserveEvaluation("success", time.Since(start))
	c.hub.EmitToDebate(debateID, hub.Event{Type: "result", Data: winner})
}
