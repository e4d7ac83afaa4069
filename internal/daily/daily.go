// Package daily picks one deterministic answer per UTC date and records
// the results of the daily challenge.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordgrid/internal/words"
)

// DateLayout is the format of date keys.
const DateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
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

// Puzzle is the challenge for one date.
type Puzzle struct {
	Date      string
	WordIndex int
	Answer    string
}

// For returns the puzzle for the date containing t.
func For(t time.Time, salt string) Puzzle {
	answers := words.Answers()
	p := Puzzle{Date: DateKey(t)}
	if len(answers) == 0 {
		return p
	}
	p.WordIndex = WordIndex(t, salt, len(answers))
	p.Answer = answers[p.WordIndex]
	return p
}

// ForDate returns the puzzle for a YYYY-MM-DD date key.
func ForDate(date, salt string) (Puzzle, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return Puzzle{}, err
	}
	return For(t, salt), nil
}
