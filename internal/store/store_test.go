package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/game"
)

func newRecords(t *testing.T) *Records {
	t.Helper()
	db, err := OpenDB(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRecords(db)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	g, err := game.New("world", game.BoardConfig{})
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, g))

	got, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)

	require.NoError(t, st.Delete(ctx, g.ID))
	_, err = st.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenDBMigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wordgrid.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	r := newRecords(t)

	u, err := r.CreateUser(ctx, "Alice", "hash")
	require.NoError(t, err)

	_, err = r.CreateUser(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	byName, err := r.UserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	_, err = r.UserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordProgressBumpsStats(t *testing.T) {
	ctx := context.Background()
	r := newRecords(t)
	u, err := r.CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)
	owner := Owner{UserID: u.ID}

	play := func(guesses ...string) {
		g, err := game.New("world", game.BoardConfig{MaxAttempts: 2})
		require.NoError(t, err)
		require.NoError(t, r.InsertGame(ctx, g, owner))
		for _, w := range guesses {
			b, _, finished := g.Press(game.KeysFor(w)...)
			require.NoError(t, r.RecordProgress(ctx, g, b, finished, owner))
		}
	}

	play("lorem", "world")
	play("world")
	play("lorem", "lorem")

	u, err = r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, u.GamesPlayed)
	assert.Equal(t, 2, u.Wins)
	assert.Equal(t, 0, u.Streak)

	rows, err := r.GamesByUser(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	statuses := map[string]int{}
	for _, row := range rows {
		statuses[row.Status]++
		assert.NotEmpty(t, row.FinishedAt)
		assert.Equal(t, 5, row.WordLength)
	}
	assert.Equal(t, map[string]int{"won": 2, "lost": 1}, statuses)
}

func TestClaimAnonGames(t *testing.T) {
	ctx := context.Background()
	r := newRecords(t)
	u, err := r.CreateUser(ctx, "carol", "hash")
	require.NoError(t, err)

	g, err := game.New("world", game.BoardConfig{})
	require.NoError(t, err)
	require.NoError(t, r.InsertGame(ctx, g, Owner{AnonID: "anon-1"}))

	n, err := r.ClaimAnonGames(ctx, "anon-1", u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	rows, err := r.GamesByUser(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, g.ID, rows[0].ID)
}
