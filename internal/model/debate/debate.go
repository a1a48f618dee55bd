package debate

import "time"

// Status tracks the single open→closed lifecycle of a debate.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Debate captures one debate instance. The transcript itself lives in the
// store; a Debate value is a snapshot of identity and lifecycle state.
type Debate struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one turn of a debate. Immutable once appended; transcript
// order is the order messages were accepted.
type Message struct {
	ID        string    `json:"id"`
	DebateID  string    `json:"debateId"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
