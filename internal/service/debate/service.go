package debate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"debate-arena/internal/model/debate"
)

var (
	ErrNotFound = errors.New("debate not found")
	ErrClosed   = errors.New("debate is closed")
)

// Service owns the in-memory debate registry. Debates are created open,
// close exactly once, and stay in the registry for the process lifetime.
type Service struct {
	mu      sync.RWMutex
	debates map[string]*record
	order   []string
}

type record struct {
	status    debate.Status
	createdAt time.Time
	history   []debate.Message
}

// NewService bootstraps the in-memory registry.
func NewService() *Service {
	return &Service{
		debates: make(map[string]*record),
	}
}

// Create provisions a fresh open debate with an empty transcript.
func (s *Service) Create(_ context.Context) (debate.Debate, error) {
	d := debate.Debate{
		ID:        uuid.NewString(),
		Status:    debate.StatusOpen,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.debates[d.ID] = &record{
		status:    d.Status,
		createdAt: d.CreatedAt,
		history:   make([]debate.Message, 0, 16),
	}
	s.order = append(s.order, d.ID)
	s.mu.Unlock()

	return d, nil
}

// Get retrieves a debate snapshot by identifier.
func (s *Service) Get(_ context.Context, id string) (debate.Debate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.debates[id]
	if !ok {
		return debate.Debate{}, ErrNotFound
	}
	return debate.Debate{ID: id, Status: rec.status, CreatedAt: rec.createdAt}, nil
}

// ListOpenIDs returns the identifiers of all open debates in creation order.
func (s *Service) ListOpenIDs(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if rec, ok := s.debates[id]; ok && rec.status == debate.StatusOpen {
			ids = append(ids, id)
		}
	}
	return ids
}

// Append adds one message to a debate's transcript. Messages are accepted
// only while the debate is open.
func (s *Service) Append(_ context.Context, id, user, text string) (debate.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.debates[id]
	if !ok {
		return debate.Message{}, ErrNotFound
	}
	if rec.status != debate.StatusOpen {
		return debate.Message{}, ErrClosed
	}

	msg := debate.Message{
		ID:        uuid.NewString(),
		DebateID:  id,
		User:      user,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	rec.history = append(rec.history, msg)
	return msg, nil
}

// Transcript returns a copy of the stored messages for the debate.
func (s *Service) Transcript(_ context.Context, id string) ([]debate.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.debates[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := make([]debate.Message, len(rec.history))
	copy(copied, rec.history)
	return copied, nil
}

// Close transitions the debate open→closed and returns its final transcript.
// The transition happens exactly once: a second Close returns ErrClosed, so
// callers can use the first success as their single evaluation trigger.
func (s *Service) Close(_ context.Context, id string) ([]debate.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.debates[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.status != debate.StatusOpen {
		return nil, ErrClosed
	}

	rec.status = debate.StatusClosed
	copied := make([]debate.Message, len(rec.history))
	copy(copied, rec.history)
	return copied, nil
}
