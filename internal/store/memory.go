// internal/store/memory.go
//
// In-memory store of solver sessions.
// A session accumulates the feedback of successive guesses so HTTP clients can
// submit one guess at a time instead of resending the whole history.
//
// Characteristics:
//   - Sessions are keyed by ID in a map guarded by a RWMutex.
//   - Each session has its own mutex; concurrent guesses on one session are
//     applied one after the other.
//   - Sessions expire after a TTL; Prune drops them. State is lost on restart.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

var ErrNotFound = errors.New("session not found")

// Session is one solving session.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu        sync.Mutex
	collector *feedback.Collector
}

// NewSession creates a session for words of the given length living for ttl.
func NewSession(length int, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		collector: feedback.NewCollector(length),
	}
}

// Add records a guess and returns the feedback accumulated so far.
func (s *Session) Add(guess string, marks []feedback.Mark) (solver.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.collector.Add(guess, marks); err != nil {
		return solver.Feedback{}, err
	}
	return s.collector.Feedback(), nil
}

// Feedback returns the feedback accumulated so far.
func (s *Session) Feedback() solver.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collector.Feedback()
}

// Guesses returns the recorded guesses in order.
func (s *Session) Guesses() []feedback.Guess {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collector.Guesses()
}

// Reset forgets every guess of the session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collector.Reset()
}

func (s *Session) expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a live session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Prune drops sessions expired at now and returns how many were dropped.
	Prune(now time.Time) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || s.expired(m.now()) {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
