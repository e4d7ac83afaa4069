// internal/daily/store.go
//
// Daily outcomes in the daily_results table.
//   - One row per player and date, won or lost; the first one sticks.
//   - Any row means the player has used their try for that date.
//   - The leaderboard ranks wins only.

package daily

import (
	"context"
	"database/sql"
)

// DefaultLeaderboardSize is used when a non-positive limit is requested.
const DefaultLeaderboardSize = 20

// Result is one player's finished daily game.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Won       bool   `json:"won"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store persists daily outcomes.
type Store struct{ db *sql.DB }

// NewStore wraps a migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID finished the puzzle for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var played bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM daily_results WHERE user_id=? AND date=?)`,
		userID, date,
	).Scan(&played)
	return played, err
}

// InsertResult records an outcome. Later outcomes for the same player and
// date are ignored, so a replay can never overwrite a loss.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, word_index, won, guesses, elapsed_ms)
		VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.WordIndex, r.Won, r.Guesses, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard ranks the wins for date: fastest first, then fewest guesses.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guesses, elapsed_ms
		FROM daily_results
		WHERE date=? AND won=1
		ORDER BY elapsed_ms ASC, guesses ASC, created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
