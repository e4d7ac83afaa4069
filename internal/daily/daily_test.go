package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

func TestWordIndexDeterministic(t *testing.T) {
	morning := time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, WordIndex(morning, "salt", 100), WordIndex(evening, "salt", 100))
	assert.Equal(t, 0, WordIndex(morning, "salt", 0))

	for d := 0; d < 30; d++ {
		idx := WordIndex(morning.AddDate(0, 0, d), "salt", 7)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 7)
	}
}

func TestFor(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	p := For(now, "salt")

	assert.Equal(t, "2026-10-16", p.Date)
	assert.Equal(t, words.Answers()[p.WordIndex], p.Answer)
	assert.Equal(t, p, For(now.Add(time.Hour), "salt"))

	byKey, err := ForDate("2026-10-16", "salt")
	require.NoError(t, err)
	assert.Equal(t, p, byKey)

	_, err = ForDate("16/10/2026", "salt")
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := store.OpenDB(store.MemoryDSN)
	require.NoError(t, err)
	defer db.Close()
	s := NewStore(db)

	played, err := s.AlreadyPlayed(ctx, "u1", "2026-10-16")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-16", Won: true, Guesses: 4, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-16", Won: true, Guesses: 1, ElapsedMs: 1}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u2", Date: "2026-10-16", Won: true, Guesses: 3, ElapsedMs: 5000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u3", Date: "2026-10-15", Won: true, Guesses: 2, ElapsedMs: 100}))

	// a loss uses up the try but stays off the leaderboard, and a later win
	// for the same date does not replace it
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u4", Date: "2026-10-16", Won: false, Guesses: 6, ElapsedMs: 2000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u4", Date: "2026-10-16", Won: true, Guesses: 1, ElapsedMs: 10}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2026-10-16")
	require.NoError(t, err)
	assert.True(t, played)

	played, err = s.AlreadyPlayed(ctx, "u4", "2026-10-16")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, "2026-10-16", 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{
		{UserID: "u2", Guesses: 3, ElapsedMs: 5000},
		{UserID: "u1", Guesses: 4, ElapsedMs: 9000},
	}, top)
}
