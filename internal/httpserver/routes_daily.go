// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's game
//   - GET  /daily/leaderboard → fetch top results for today (or a given date)
//
// Keystrokes for a daily game go through the regular /game/{id} routes.
// Each player gets one game per date (in-memory session, never deleted);
// the finished game, won or lost, is persisted once per player and date and
// blocks another try. Only wins reach the leaderboard. The answer comes from daily.For,
// which is deterministic for date + salt.

package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	now      func() time.Time
	mu       sync.Mutex        // guards sessions
	sessions map[string]string // userID|date -> game ID
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	if s.daily == nil {
		s.daily = &dailyServer{
			srv:      s,
			store:    daily.NewStore(s.records.DB()),
			salt:     s.cfg.DailySalt,
			now:      time.Now,
			sessions: make(map[string]string),
		}
	}
	dd := s.daily
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's puzzle.
func (d *dailyServer) today() daily.Puzzle {
	return daily.For(d.now(), d.salt)
}

// ownerKey is the identity daily results are stored under.
func ownerKey(o store.Owner) string {
	if o.UserID != "" {
		return o.UserID
	}
	return "anon:" + o.AnonID
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Game   *gameView `json:"game,omitempty"`
}

// handleNew creates or reuses the caller's game for today.
//   - Result already in the DB → Played=true, no game.
//   - Otherwise the existing session game, or a new one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.ownerOf(w, r)
	uid := ownerKey(owner)
	p := d.today()
	if p.Answer == "" {
		writeError(w, http.StatusServiceUnavailable, "no answers loaded")
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, p.Date); err == nil && played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: p.Date, Played: true})
		return
	} else if err != nil {
		log.Warn().Err(err).Msg("daily already played")
	}

	key := uid + "|" + p.Date
	d.mu.Lock()
	id, ok := d.sessions[key]
	d.mu.Unlock()
	if ok {
		if g, err := d.srv.games.Get(r.Context(), id); err == nil {
			v := viewOf(g, g.Board())
			writeJSON(w, http.StatusOK, dailyNewRes{Date: p.Date, Game: &v})
			return
		}
	}

	g, err := game.New(p.Answer, d.srv.cfg.BoardConfig())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	g.Daily = p.Date
	if err := d.srv.host(w, r, g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.mu.Lock()
	d.sessions[key] = g.ID
	d.mu.Unlock()

	v := viewOf(g, g.Board())
	writeJSON(w, http.StatusOK, dailyNewRes{Date: p.Date, Game: &v})
}

// recordResult persists a finished daily game (best effort).
func (d *dailyServer) recordResult(ctx context.Context, g *game.Game, b game.Board, owner store.Owner) {
	p, err := daily.ForDate(g.Daily, d.salt)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("daily date")
		return
	}
	elapsed := g.FinishedAt.Sub(g.CreatedAt).Milliseconds()
	err = d.store.InsertResult(ctx, daily.Result{
		UserID:    ownerKey(owner),
		Date:      p.Date,
		WordIndex: p.WordIndex,
		Won:       b.Status() == game.StatusWon,
		Guesses:   b.Attempts(),
		ElapsedMs: int(elapsed),
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert daily result")
	}
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.today().Date
	} else if _, err := time.Parse(daily.DateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, daily.DefaultLeaderboardSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
