// Package session runs games on behalf of HTTP callers. It fetches secret
// words, creates and looks up sessions, enforces ownership, and serializes
// every operation on one game.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dejny/wordle/internal/game"
	"github.com/dejny/wordle/internal/store"
	"github.com/dejny/wordle/internal/wordsource"
)

// ErrNotFound covers unknown sessions and sessions owned by someone else.
var ErrNotFound = store.ErrNotFound

// Caller identifies who is playing. Guests only carry an AnonID; signed-in
// players carry both, so games started before login stay reachable.
type Caller struct {
	UserID string
	AnonID string
}

// Owner is the identity new sessions are recorded under.
func (c Caller) Owner() string {
	if c.UserID != "" {
		return "user:" + c.UserID
	}
	return "anon:" + c.AnonID
}

func (c Caller) owns(owner string) bool {
	return (c.UserID != "" && owner == "user:"+c.UserID) ||
		(c.AnonID != "" && owner == "anon:"+c.AnonID)
}

// Manager coordinates the session store, the word source and the game engine.
type Manager struct {
	store  store.Store
	source wordsource.Source
	dict   game.Dictionary
}

// NewManager wires a Manager. dict may be nil to accept any five letters.
func NewManager(st store.Store, src wordsource.Source, dict game.Dictionary) *Manager {
	return &Manager{store: st, source: src, dict: dict}
}

// secret returns answer when given, otherwise fetches one from the source.
func (m *Manager) secret(ctx context.Context, answer string) (string, error) {
	if answer != "" {
		return answer, nil
	}
	return m.source.Fetch(ctx)
}

// Start creates a new session owned by c. A non-empty answer fixes the
// secret instead of fetching one.
func (m *Manager) Start(ctx context.Context, c Caller, answer string) (string, game.View, error) {
	secret, err := m.secret(ctx, answer)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("fetch secret word")
		return "", game.View{}, err
	}

	var opts []game.Option
	if m.dict != nil {
		opts = append(opts, game.WithDictionary(m.dict))
	}
	g, err := game.New(secret, opts...)
	if err != nil {
		return "", game.View{}, err
	}

	s := &store.Session{
		ID:        uuid.NewString(),
		Owner:     c.Owner(),
		CreatedAt: time.Now().UTC(),
		Game:      g,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return "", game.View{}, err
	}
	log.Ctx(ctx).Info().Str("gameId", s.ID).Msg("game started")
	return s.ID, g.View(), nil
}

// with runs fn on the caller's game while holding the session lock.
func (m *Manager) with(ctx context.Context, id string, c Caller, fn func(g *game.Game) error) (game.View, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return game.View{}, err
	}
	if !c.owns(s.Owner) {
		return game.View{}, ErrNotFound
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := fn(s.Game); err != nil {
		return game.View{}, err
	}
	return s.Game.View(), nil
}

// View returns the current state of a game.
func (m *Manager) View(ctx context.Context, id string, c Caller) (game.View, error) {
	return m.with(ctx, id, c, func(*game.Game) error { return nil })
}

// AppendLetter types one letter into the in-progress guess.
func (m *Manager) AppendLetter(ctx context.Context, id string, c Caller, r rune) (game.View, error) {
	return m.with(ctx, id, c, func(g *game.Game) error { return g.AppendLetter(r) })
}

// DeleteLetter removes the last typed letter.
func (m *Manager) DeleteLetter(ctx context.Context, id string, c Caller) (game.View, error) {
	return m.with(ctx, id, c, func(g *game.Game) error { return g.DeleteLetter() })
}

// Submit evaluates the typed letters.
func (m *Manager) Submit(ctx context.Context, id string, c Caller) (game.Row, game.View, error) {
	var row game.Row
	v, err := m.with(ctx, id, c, func(g *game.Game) error {
		var err error
		row, err = g.SubmitGuess()
		return err
	})
	if err == nil && v.Status.Over() {
		log.Ctx(ctx).Info().Str("gameId", id).Str("status", string(v.Status)).Int("guesses", len(v.Guesses)).Msg("game finished")
	}
	return row, v, err
}

// Guess submits a whole word in one call.
func (m *Manager) Guess(ctx context.Context, id string, c Caller, word string) (game.Row, game.View, error) {
	var row game.Row
	v, err := m.with(ctx, id, c, func(g *game.Game) error {
		var err error
		row, err = g.Guess(word)
		return err
	})
	if err == nil && v.Status.Over() {
		log.Ctx(ctx).Info().Str("gameId", id).Str("status", string(v.Status)).Int("guesses", len(v.Guesses)).Msg("game finished")
	}
	return row, v, err
}

// Restart starts the game over with a fresh secret. The word is fetched
// before the session is touched, so a failed fetch leaves the game as it was.
func (m *Manager) Restart(ctx context.Context, id string, c Caller, answer string) (game.View, error) {
	if _, err := m.View(ctx, id, c); err != nil {
		return game.View{}, err
	}
	secret, err := m.secret(ctx, answer)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("gameId", id).Msg("fetch secret word for restart")
		return game.View{}, err
	}
	return m.with(ctx, id, c, func(g *game.Game) error { return g.Restart(secret) })
}

// IsNotFound reports whether err means the session does not exist for the caller.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
