package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every *InputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGameOver is returned by guessing operations once the game is won or lost.
	ErrGameOver = errors.New("game finished")
	// ErrRowFull is returned when appending to a buffer that already holds five letters.
	ErrRowFull = errors.New("row is full")
	// ErrNotInWordList is returned when a Dictionary rejects a guess.
	ErrNotInWordList = errors.New("not in word list")
)

// InputError describes a secret, guess or letter that failed validation.
type InputError struct {
	Field  string // "secret", "guess" or "letter"
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
