package game

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameRandomAnswer(t *testing.T) {
	g, err := New("", BoardConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.NotEmpty(t, g.Board().Target())
	assert.Equal(t, StatusPlaying, g.Board().Status())
}

func TestGamePressReportsFinishOnce(t *testing.T) {
	g, err := New("world", BoardConfig{})
	require.NoError(t, err)

	b, accepted, finished := g.Press(KeysFor("lorem")...)
	assert.False(t, finished)
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, b.Attempts())
	assert.True(t, g.FinishedAt.IsZero())

	_, accepted, _ = g.Press(Letter('w'), Submit())
	assert.Equal(t, 0, accepted)
	g.Press(Delete())

	b, accepted, finished = g.Press(KeysFor("world")...)
	assert.True(t, finished)
	assert.Equal(t, 1, accepted)
	assert.Equal(t, StatusWon, b.Status())
	assert.False(t, g.FinishedAt.IsZero())

	_, accepted, finished = g.Press(Submit())
	assert.False(t, finished)
	assert.Equal(t, 0, accepted)
}

func TestGameConcurrentPresses(t *testing.T) {
	g, err := New("abcdefghij", BoardConfig{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Press(Letter('a'))
		}()
	}
	wg.Wait()

	_, col := g.Board().Cursor()
	assert.Equal(t, 10, col)
}

func TestGameConcurrentRowsCountedOnce(t *testing.T) {
	g, err := New("world", BoardConfig{})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		total    int
		finishes int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, accepted, finished := g.Press(KeysFor("lorem")...)
			mu.Lock()
			defer mu.Unlock()
			total += accepted
			if finished {
				finishes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, DefaultMaxAttempts, total)
	assert.Equal(t, 1, finishes)
	assert.Equal(t, StatusLost, g.Board().Status())
}

func TestSnapshotRoundTrip(t *testing.T) {
	g, err := New("world", BoardConfig{Scoring: ScoringStrict, MaxAttempts: 4})
	require.NoError(t, err)
	g.Daily = "2026-10-16"
	g.Press(KeysFor("lorem")...)
	g.Press(Letter('w'), Letter('o'))

	out, err := g.Snapshot().Serialize()
	require.NoError(t, err)

	snap, err := LoadSnapshot(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"lorem"}, snap.Guesses)
	assert.Equal(t, "wo", snap.Typing)

	restored, err := snap.Game(BoardConfig{})
	require.NoError(t, err)
	assert.Equal(t, g.ID, restored.ID)
	assert.Equal(t, "2026-10-16", restored.Daily)

	b := restored.Board()
	assert.Equal(t, ScoringStrict, b.Scoring())
	assert.Equal(t, 4, b.MaxAttempts())
	assert.Equal(t, 1, b.Attempts())
	row, col := b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)
}

func TestSnapshotRejectsBadGuess(t *testing.T) {
	snap := &Snapshot{Target: "world", MaxAttempts: 6, Guesses: []string{"toolong"}}
	_, err := snap.Board(BoardConfig{})
	assert.Error(t, err)
}

func TestSnapshotRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"unknown scoring", Snapshot{Target: "world", MaxAttempts: 6, Scoring: "fuzzy"}},
		{"no rows", Snapshot{Target: "world", MaxAttempts: 0}},
		{"too many rows", Snapshot{Target: "world", MaxAttempts: 1_000_000}},
		{"untypeable target", Snapshot{Target: "can't", MaxAttempts: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.snap.Board(BoardConfig{})
			assert.Error(t, err)
		})
	}

	b, err := (&Snapshot{Target: "world", MaxAttempts: 3}).Board(BoardConfig{})
	require.NoError(t, err)
	assert.Equal(t, ScoringClassic, b.Scoring())
}

func TestSaveSnapshot(t *testing.T) {
	b := typeWord(newTestBoard(t, "world"), "world")
	dir := filepath.Join(t.TempDir(), "snaps")

	path, err := SaveSnapshot(dir, SnapshotOf(b), time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "wordgrid-20261016-093000-1.yaml", filepath.Base(path))

	snap, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Empty(t, snap.Typing)
	restored, err := snap.Board(BoardConfig{})
	require.NoError(t, err)
	assert.Equal(t, StatusWon, restored.Status())

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = SaveSnapshot(file, SnapshotOf(b), time.Now())
	assert.Error(t, err)
}
