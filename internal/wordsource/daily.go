package wordsource

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"
)

// Daily returns the same word for everyone on a given UTC date.
type Daily struct {
	Answers []string
	Salt    string
	Now     func() time.Time // defaults to time.Now
}

func (d *Daily) Fetch(ctx context.Context) (string, error) {
	if len(d.Answers) == 0 {
		return checked("daily", "", errors.New("no answers configured"))
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return checked("daily", d.Answers[WordIndex(now(), d.Salt, len(d.Answers))], nil)
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}
