// internal/game/evaluate.go
//
// Guess evaluation using the classic two‑pass Wordle algorithm.

package game

import "strings"

// Normalize trims surrounding whitespace and lowercases w.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Evaluate compares guess against secret and returns one verdict per position.
//
// Pass 1:
//   - Mark exact matches and consume one occurrence of that letter.
//
// Pass 2 (only after pass 1 has covered every position):
//   - For each remaining guess letter: if an unclaimed occurrence is left,
//     mark Present and consume it; otherwise mark Absent.
//
// A letter therefore never earns more Exact+Present credit than it has
// occurrences in the secret. Inputs are normalized first; anything that is
// not exactly five a–z letters yields an *InputError.
func Evaluate(secret, guess string) (Row, error) {
	secret, guess = Normalize(secret), Normalize(guess)
	if err := validateWord("secret", secret); err != nil {
		return Row{}, err
	}
	if err := validateWord("guess", guess); err != nil {
		return Row{}, err
	}

	var counts [alphabetSize]int
	for i := 0; i < WordLength; i++ {
		counts[idx(secret[i])]++
	}

	var row Row
	for i := 0; i < WordLength; i++ {
		if guess[i] == secret[i] {
			row[i] = VerdictExact
			counts[idx(guess[i])]--
		}
	}

	for i := 0; i < WordLength; i++ {
		if row[i] == VerdictExact {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			row[i] = VerdictPresent
			counts[j]--
		} else {
			row[i] = VerdictAbsent
		}
	}
	return row, nil
}

// validateWord expects an already normalized word.
func validateWord(field, w string) error {
	if len(w) != WordLength {
		return &InputError{Field: field, Value: w, Reason: "must be exactly 5 letters"}
	}
	if !isAlpha(w) {
		return &InputError{Field: field, Value: w, Reason: "letters a-z only"}
	}
	return nil
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'a') }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
