package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordgrid/internal/game"
)

// ErrUsernameTaken is returned by CreateUser for duplicate usernames.
var ErrUsernameTaken = errors.New("username taken")

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Streak       int       `json:"streak"`
}

// Owner identifies who a game belongs to: an account or an anonymous cookie.
type Owner struct {
	UserID string
	AnonID string
}

// GameRow is a persisted game summary.
type GameRow struct {
	ID          string `json:"id"`
	Daily       string `json:"daily,omitempty"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
	Scoring     string `json:"scoring"`
	Status      string `json:"status"`
	Guesses     int    `json:"guesses"`
	StartedAt   string `json:"startedAt"`
	FinishedAt  string `json:"finishedAt,omitempty"`
}

// Records is the SQL-backed history of accounts and games.
type Records struct {
	db *sql.DB
}

// NewRecords wraps an opened database.
func NewRecords(db *sql.DB) *Records { return &Records{db: db} }

// DB exposes the handle for packages sharing the database.
func (r *Records) DB() *sql.DB { return r.db }

// CreateUser inserts a new user. Username uniqueness is case-insensitive.
func (r *Records) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// UserByUsername loads a user, or ErrNotFound.
func (r *Records) UserByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                                  FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

// UserByID loads a user, or ErrNotFound.
func (r *Records) UserByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                                  FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// InsertGame records a newly started game. The answer is never stored.
func (r *Records) InsertGame(ctx context.Context, g *game.Game, owner Owner) error {
	b := g.Board()
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO games (id, user_id, anonymous_id, daily, word_length, max_attempts, scoring, status, guesses, started_at)
        VALUES (?,?,?,?,?,?,?,?,?,?)`,
		g.ID, nullable(owner.UserID), nullable(owner.AnonID), nullable(g.Daily),
		b.WordLength(), b.MaxAttempts(), string(b.Scoring()), string(b.Status()), b.Attempts(),
		g.CreatedAt.Format(time.RFC3339))
	return err
}

// RecordProgress stores the attempt count and, when the game just
// finished, its final status plus the owner's stats in one transaction.
func (r *Records) RecordProgress(ctx context.Context, g *game.Game, b game.Board, finished bool, owner Owner) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET guesses=?, status=? WHERE id=?`,
		b.Attempts(), string(b.Status()), g.ID); err != nil {
		return err
	}
	if finished {
		if _, err := tx.ExecContext(ctx, `UPDATE games SET finished_at=? WHERE id=?`,
			g.FinishedAt.Format(time.RFC3339), g.ID); err != nil {
			return err
		}
		if owner.UserID != "" {
			if err := bumpStats(ctx, tx, owner.UserID, b.Status() == game.StatusWon); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins and streak based on result.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// GamesByUser lists a user's most recent games.
func (r *Records) GamesByUser(ctx context.Context, userID string, limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, COALESCE(daily,''), word_length, max_attempts, scoring, status, guesses, started_at, COALESCE(finished_at,'')
        FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRow{}
	for rows.Next() {
		var gr GameRow
		if err := rows.Scan(&gr.ID, &gr.Daily, &gr.WordLength, &gr.MaxAttempts, &gr.Scoring,
			&gr.Status, &gr.Guesses, &gr.StartedAt, &gr.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, gr)
	}
	return out, rows.Err()
}

// ClaimAnonGames transfers anonymous games to a user account after auth.
func (r *Records) ClaimAnonGames(ctx context.Context, anonID, userID string) (int64, error) {
	if anonID == "" || userID == "" {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
