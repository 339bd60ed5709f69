// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Verdict: per-letter result of a guess (exact/present/absent).
//   - Row: the five verdicts produced for one guess.
//   - Status: coarse session state (in_progress/won/lost).

package game

import "fmt"

const (
	// WordLength is the number of letters in every secret and guess.
	WordLength = 5
	// MaxGuesses is the attempt cap for one session.
	MaxGuesses = 6
	// alphabetSize covers the canonical lowercase a–z alphabet.
	alphabetSize = 26
)

// Verdict represents the evaluation result for a single letter.
// The zero value, VerdictUnknown, never appears in a Row; it only marks
// keyboard letters that have not been guessed yet.
type Verdict uint8

const (
	VerdictUnknown Verdict = iota
	VerdictAbsent          // letter not in the secret, or all its occurrences already claimed
	VerdictPresent         // letter in the secret at another position
	VerdictExact           // correct letter, correct position
)

var verdictNames = [...]string{
	VerdictUnknown: "unknown",
	VerdictAbsent:  "absent",
	VerdictPresent: "present",
	VerdictExact:   "exact",
}

func (v Verdict) String() string {
	if int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return fmt.Sprintf("Verdict(%d)", uint8(v))
}

// MarshalText encodes a verdict as its lowercase name.
func (v Verdict) MarshalText() ([]byte, error) {
	if int(v) >= len(verdictNames) {
		return nil, fmt.Errorf("game: invalid verdict %d", uint8(v))
	}
	return []byte(verdictNames[v]), nil
}

// UnmarshalText parses a verdict name produced by MarshalText.
func (v *Verdict) UnmarshalText(b []byte) error {
	for i, name := range verdictNames {
		if name == string(b) {
			*v = Verdict(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown verdict %q", string(b))
}

// Row is the ordered verdict sequence for one guess.
type Row [WordLength]Verdict

// Solved reports whether every position is an exact match.
func (r Row) Solved() bool {
	for _, v := range r {
		if v != VerdictExact {
			return false
		}
	}
	return true
}

// Status is the session state.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Over reports whether the status is terminal for guessing.
func (s Status) Over() bool { return s == StatusWon || s == StatusLost }
