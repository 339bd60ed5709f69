package wordsource

import (
	"context"

	"github.com/dejny/wordle/internal/words"
)

// List picks a random answer from a lexicon.
type List struct {
	Lexicon *words.Lexicon
}

func (l *List) Fetch(ctx context.Context) (string, error) {
	w, err := l.Lexicon.RandomAnswer()
	return checked("list", w, err)
}
