// internal/game/engine.go
//
// Hosted game: a Board plus identity and bookkeeping for servers.
// Responsibilities:
//   - Create new games (random answer from the words package by default).
//   - Serialize keystrokes so each one is processed to completion.
//   - Report the moment a game finishes so callers persist it once.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordgrid/internal/words"
)

// Game holds one hosted board.
type Game struct {
	ID         string    // unique identifier (uuid)
	Daily      string    // daily challenge date key; empty for free play
	CreatedAt  time.Time // when the game was created
	FinishedAt time.Time // zero until won or lost

	mu    sync.Mutex
	board Board
}

// New constructs a game. If answer is empty a random answer is chosen.
func New(answer string, cfg BoardConfig) (*Game, error) {
	if answer == "" {
		answer = words.RandomAnswer()
	}
	b, err := NewBoard(answer, cfg)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		board:     b,
	}, nil
}

// Press applies keys in order and returns the resulting board.
// accepted counts the rows these keys submitted; finished is true only
// when they moved the game into a terminal state.
func (g *Game) Press(keys ...Key) (b Board, accepted int, finished bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	before := g.board
	g.board = g.board.PressAll(keys...)
	accepted = g.board.Attempts() - before.Attempts()
	if !before.Status().Finished() && g.board.Status().Finished() {
		g.FinishedAt = time.Now().UTC()
		finished = true
	}
	return g.board, accepted, finished
}

// Board returns the current board.
func (g *Game) Board() Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board
}
