// internal/game/board.go
//
// Board is the guess grid plus cursor and status, driven by keystrokes.
// Responsibilities:
//   - Apply letter/delete/submit keystrokes (Press), returning a new board.
//   - Evaluate win/loss once per accepted submission.
//   - Expose per-cell marks, keyboard tints and share text for renderers.
//
// Board is a value: Press copies the grid and never mutates its receiver,
// so callers can keep older boards around (undo, snapshots, tests).

package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/robalobadob/wordgrid/internal/words"
)

// Errors returned by NewBoard.
var (
	ErrEmptyTarget    = errors.New("target word is empty")
	ErrInvalidTarget  = fmt.Errorf("target word must be %d-%d letters a-z", words.MinLength, words.MaxLength)
	ErrInvalidAttempt = fmt.Errorf("max attempts must be at most %d", MaxAttemptsLimit)
)

// BoardConfig tunes a board. The zero value is a standard classic board.
type BoardConfig struct {
	MaxAttempts int     // rows on the board; DefaultMaxAttempts when <= 0, at most MaxAttemptsLimit
	Scoring     Scoring // ScoringClassic when empty

	// Allowed, when set, must accept a full row before it can be submitted.
	Allowed func(word string) bool
}

// Board is the state of one game. Create it with NewBoard.
type Board struct {
	target   []rune
	cells    [][]rune // 0 marks an empty cell
	attempts int      // submitted rows
	col      int
	status   Status
	scoring  Scoring
	allowed  func(string) bool
}

// NewBoard returns an empty playing board for target.
// Every target letter must be typeable, otherwise no row could be submitted.
func NewBoard(target string, cfg BoardConfig) (Board, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return Board{}, ErrEmptyTarget
	}
	if !words.Valid(target) {
		return Board{}, ErrInvalidTarget
	}
	if cfg.MaxAttempts > MaxAttemptsLimit {
		return Board{}, ErrInvalidAttempt
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Scoring == "" {
		cfg.Scoring = ScoringClassic
	}
	t := []rune(target)
	cells := make([][]rune, cfg.MaxAttempts)
	for i := range cells {
		cells[i] = make([]rune, len(t))
	}
	return Board{
		target:  t,
		cells:   cells,
		status:  StatusPlaying,
		scoring: cfg.Scoring,
		allowed: cfg.Allowed,
	}, nil
}

// Press applies one keystroke and returns the resulting board.
// Keystrokes that are not permitted in the current state are no-ops.
func (b Board) Press(k Key) Board {
	if b.status.Finished() || b.cells == nil {
		return b
	}
	switch k.Kind {
	case KeyDelete:
		if b.col == 0 {
			return b
		}
		next := b.clone()
		next.col--
		next.cells[next.attempts][next.col] = 0
		return next

	case KeySubmit:
		if b.col != len(b.target) {
			return b
		}
		if b.allowed != nil && !b.allowed(string(b.cells[b.attempts])) {
			return b
		}
		next := b.clone()
		next.attempts++
		next.col = 0
		next.evaluate()
		return next

	case KeyLetter:
		if b.col >= len(b.target) || !unicode.IsLetter(k.Letter) {
			return b
		}
		next := b.clone()
		next.cells[next.attempts][next.col] = unicode.ToLower(k.Letter)
		next.col++
		return next
	}
	return b
}

// PressAll applies keys in order.
func (b Board) PressAll(keys ...Key) Board {
	for _, k := range keys {
		b = b.Press(k)
	}
	return b
}

// evaluate runs after each accepted submission.
func (b *Board) evaluate() {
	last := b.cells[b.attempts-1]
	if string(last) == string(b.target) {
		b.status = StatusWon
	} else if b.attempts >= len(b.cells) {
		b.status = StatusLost
	}
}

func (b Board) clone() Board {
	cells := make([][]rune, len(b.cells))
	for i, row := range b.cells {
		cells[i] = append([]rune(nil), row...)
	}
	b.cells = cells
	return b
}

// Status reports the coarse game state.
func (b Board) Status() Status { return b.status }

// Cursor returns the position of the next editable cell.
// Once the game is over the row is parked on the last row it reached.
func (b Board) Cursor() (row, col int) {
	if b.cells == nil {
		return 0, 0
	}
	row = b.attempts
	if row > len(b.cells)-1 {
		row = len(b.cells) - 1
	}
	return row, b.col
}

// Attempts is the number of submitted rows.
func (b Board) Attempts() int { return b.attempts }

// MaxAttempts is the number of rows on the board.
func (b Board) MaxAttempts() int { return len(b.cells) }

// WordLength is the number of cells per row.
func (b Board) WordLength() int { return len(b.target) }

// Target returns the word being guessed.
func (b Board) Target() string { return string(b.target) }

// Scoring returns the rule used to color rows.
func (b Board) Scoring() Scoring { return b.scoring }

// Cell returns the letter at row/col, or 0 when the cell is empty.
func (b Board) Cell(row, col int) rune {
	if row < 0 || row >= len(b.cells) || col < 0 || col >= len(b.target) {
		return 0
	}
	return b.cells[row][col]
}

// Row returns the letters typed into row, without empty cells.
func (b Board) Row(row int) string {
	if row < 0 || row >= len(b.cells) {
		return ""
	}
	var sb strings.Builder
	for _, r := range b.cells[row] {
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Guesses returns the submitted words in order.
func (b Board) Guesses() []string {
	out := make([]string, 0, b.attempts)
	for i := 0; i < b.attempts; i++ {
		out = append(out, string(b.cells[i]))
	}
	return out
}

// RowMarks scores a row. Unsubmitted rows are all pending.
func (b Board) RowMarks(row int) []Mark {
	if row < 0 || row >= b.attempts {
		marks := make([]Mark, len(b.target))
		for i := range marks {
			marks[i] = MarkPending
		}
		return marks
	}
	return ScoreRow(b.cells[row], b.target, b.scoring)
}

// Mark scores a single cell.
func (b Board) Mark(row, col int) Mark {
	if row < 0 || row >= b.attempts || col < 0 || col >= len(b.target) {
		return MarkPending
	}
	if b.scoring == ScoringClassic {
		return ScoreCell(b.cells[row][col], col, b.target)
	}
	return b.RowMarks(row)[col]
}
