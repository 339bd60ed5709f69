// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the
//     lists embedded in the assets package.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Supply RandomAnswer, IsAllowed, IsAnswer and Stats.
//
// Load behavior:
//   1. answersPath and allowedPath both set: answers from the first,
//      allowed guesses from the second.
//   2. Only allowedPath set: that file serves as both lists.
//   3. Neither set: embedded assets/answers.txt and assets/allowed.txt.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); other lines are dropped.
//   • Lists are normalized to lowercase.

package words

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"

	"github.com/dejny/wordle/assets"
)

// ErrEmpty is returned by Load when no usable answers were found.
var ErrEmpty = errors.New("words: answers list is empty")

// Lexicon is an immutable pair of word lists. Safe for concurrent use.
type Lexicon struct {
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ guesses
}

// Load builds a Lexicon from the given files, or the embedded defaults
// when both paths are empty.
func Load(answersPath, allowedPath string) (*Lexicon, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, err
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, err
		}
		ansList, allowList = filterWords(ansList), filterWords(allowList)
	}

	return New(ansList, allowList)
}

// New builds a Lexicon from in-memory lists. Answers are always allowed.
func New(answers, allowed []string) (*Lexicon, error) {
	if len(answers) == 0 {
		return nil, ErrEmpty
	}
	lx := &Lexicon{
		answers:    append([]string(nil), answers...),
		answersSet: toSet(answers),
		allowedSet: toSet(answers),
	}
	for _, w := range allowed {
		lx.allowedSet[w] = struct{}{}
	}
	return lx, nil
}

// readWordFile loads one word per line from a file and keeps only valid
// 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := assets.ScanLines(f)
	if err != nil {
		return nil, err
	}
	return filterWords(lines), nil
}

func filterWords(in []string) []string {
	out := in[:0:0]
	for _, w := range in {
		if len(w) == 5 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a cryptographically random answer.
func (lx *Lexicon) RandomAnswer() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(lx.answers))))
	if err != nil {
		return "", err
	}
	return lx.answers[n.Int64()], nil
}

// Answers returns a copy of the answer list.
func (lx *Lexicon) Answers() []string { return append([]string(nil), lx.answers...) }

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
// w is expected to be normalized already.
func (lx *Lexicon) IsAllowed(w string) bool {
	_, ok := lx.allowedSet[w]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (lx *Lexicon) IsAnswer(w string) bool {
	_, ok := lx.answersSet[w]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (lx *Lexicon) Stats() (answersCount int, allowedCount int) {
	return len(lx.answers), len(lx.allowedSet)
}
