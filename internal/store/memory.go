// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Sessions are ephemeral by design of the game: state is lost when the
// process restarts.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a bounded LRU cache; the least
//     recently used session is evicted once capacity is reached.
//   - Concurrency-safe (the LRU cache is internally locked).
//   - Get returns ErrNotFound for unknown or evicted IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dejny/wordle/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Session is one game plus its ownership metadata. Callers must hold Mu
// while reading or mutating Game.
type Session struct {
	ID        string
	Owner     string
	CreatedAt time.Time

	Mu   sync.Mutex
	Game *game.Game
}

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is not present.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int
}

// memory is an LRU-backed Store implementation.
type memory struct {
	sessions *lru.Cache[string, *Session]
}

// NewMemoryStore constructs an in-memory Store holding at most capacity
// sessions.
func NewMemoryStore(capacity int) (Store, error) {
	c, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &memory{sessions: c}, nil
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.sessions.Add(s.ID, s)
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	if s, ok := m.sessions.Get(id); ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.sessions.Remove(id)
	return nil
}

func (m *memory) Len() int { return m.sessions.Len() }
