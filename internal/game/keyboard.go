// internal/game/keyboard.go
//
// Keyboard aggregates the best verdict seen for each letter across a
// session. Precedence is exact > present > absent > unknown and a letter
// never moves down that order.

package game

import "encoding/json"

// Keyboard maps each letter a–z (by index) to its best known verdict.
// The zero value is a keyboard with every letter unknown.
type Keyboard [alphabetSize]Verdict

// Fold applies one evaluated guess to kb and returns the updated keyboard.
// kb itself is not modified.
func Fold(kb Keyboard, row Row, guess string) Keyboard {
	guess = Normalize(guess)
	for i := 0; i < WordLength && i < len(guess); i++ {
		c := guess[i]
		if c < 'a' || c > 'z' {
			continue
		}
		j := idx(c)
		switch row[i] {
		case VerdictExact:
			kb[j] = VerdictExact
		case VerdictPresent:
			if kb[j] != VerdictExact {
				kb[j] = VerdictPresent
			}
		case VerdictAbsent:
			if kb[j] == VerdictUnknown {
				kb[j] = VerdictAbsent
			}
		}
	}
	return kb
}

// Letter returns the verdict recorded for r, or VerdictUnknown for
// letters outside a–z.
func (kb Keyboard) Letter(r rune) Verdict {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return VerdictUnknown
	}
	return kb[r-'a']
}

// Known returns the guessed letters and their verdicts.
func (kb Keyboard) Known() map[string]Verdict {
	out := make(map[string]Verdict)
	for i, v := range kb {
		if v != VerdictUnknown {
			out[string(rune('a'+i))] = v
		}
	}
	return out
}

// MarshalJSON encodes only the letters that have been guessed.
func (kb Keyboard) MarshalJSON() ([]byte, error) {
	return json.Marshal(kb.Known())
}
