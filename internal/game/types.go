// internal/game/types.go
//
// Core type definitions for the word-grid game.
// Defines:
//   - Mark: per-cell result of a submitted letter (pending/hit/present/miss).
//   - Status: coarse game state (playing/won/lost).
//   - Scoring: which scoring rule a board uses.
//   - Key: a single keystroke fed to the board reducer.

package game

// Mark represents the evaluation result for a single cell.
// Possible values:
//   - "pending": the row has not been submitted yet.
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not exist in the answer at all.
type Mark string

const (
	MarkPending Mark = "pending"
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Status is the coarse state of a board. Won and Lost are terminal.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Finished reports whether s is terminal.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

// Scoring selects how submitted rows are colored.
type Scoring string

const (
	// ScoringClassic marks a letter present whenever it occurs anywhere in
	// the target, regardless of how many times it was already matched.
	ScoringClassic Scoring = "classic"
	// ScoringStrict uses the two-pass algorithm: each target letter can
	// justify at most one hit or present mark.
	ScoringStrict Scoring = "strict"
)

// ParseScoring maps a name to a Scoring. Empty selects classic.
func ParseScoring(s string) (Scoring, bool) {
	switch Scoring(s) {
	case "", ScoringClassic:
		return ScoringClassic, true
	case ScoringStrict:
		return ScoringStrict, true
	}
	return "", false
}

// KeyKind enumerates the symbols the keyboard can emit.
type KeyKind int

const (
	KeyLetter KeyKind = iota
	KeyDelete
	KeySubmit
)

// Key is one keystroke. Letter is only meaningful for KeyLetter.
type Key struct {
	Kind   KeyKind
	Letter rune
}

// Row limits for a board.
const (
	DefaultMaxAttempts = 6  // rows on a standard board
	MaxAttemptsLimit   = 20 // most rows any board may have
)
