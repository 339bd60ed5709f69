// Package wordsource supplies secret words for new games. Every backend
// funnels its result through checked, so callers only ever see a
// normalized five-letter word or a *FetchError.
package wordsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/dejny/wordle/internal/game"
)

// ErrNoWord is matched by every *FetchError.
var ErrNoWord = errors.New("no playable word")

// Source fetches one candidate secret word.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) (string, error)

func (f Func) Fetch(ctx context.Context) (string, error) { return f(ctx) }

// FetchError reports a failed or malformed fetch from a named backend.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("wordsource %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrNoWord }

// checked validates a backend result. Anything other than five letters a–z
// becomes a *FetchError.
func checked(source, word string, err error) (string, error) {
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	w := game.Normalize(word)
	if len(w) != game.WordLength {
		return "", &FetchError{Source: source, Err: fmt.Errorf("malformed word %q", word)}
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return "", &FetchError{Source: source, Err: fmt.Errorf("malformed word %q", word)}
		}
	}
	return w, nil
}
