// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Hosted games live here while they are being played; finished games are
// recorded in SQL by the server, but the board itself is never persisted.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordgrid/internal/game"
)

// ErrNotFound is returned when a game or row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for hosted games.
type Store interface {
	// Save persists or updates a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete forgets a game. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
