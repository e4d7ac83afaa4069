// internal/httpserver/routes_game.go
//
// Free-play game routes. A client creates a game, then streams keystrokes
// either in batches (POST /game/{id}/keys) or one message at a time over a
// WebSocket (GET /game/{id}/ws). Every response is a full view of the board
// so clients never keep their own copy of the reducer.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

// maxBatchKeys bounds a single /keys request.
const maxBatchKeys = 256

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Get("/game/{id}", s.handleGetGame)
	r.Post("/game/{id}/keys", s.handleKeys)
	r.Get("/game/{id}/share", s.handleShare)
	r.Get("/game/{id}/snapshot", s.handleSnapshot)
	r.Delete("/game/{id}", s.handleDeleteGame)
}

// ------------------------------- views -------------------------------------

type cellView struct {
	Letter string    `json:"letter"`
	Mark   game.Mark `json:"mark"`
}

type cursorView struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// gameView is the JSON rendering of a board.
type gameView struct {
	GameID      string        `json:"gameId"`
	Daily       string        `json:"daily,omitempty"`
	Status      game.Status   `json:"status"`
	Scoring     game.Scoring  `json:"scoring"`
	WordLength  int           `json:"wordLength"`
	MaxAttempts int           `json:"maxAttempts"`
	Attempts    int           `json:"attempts"`
	Cursor      cursorView    `json:"cursor"`
	Rows        [][]cellView  `json:"rows"`
	Keyboard    game.Keyboard `json:"keyboard"`
	Answer      string        `json:"answer,omitempty"` // only once finished
}

func viewOf(g *game.Game, b game.Board) gameView {
	row, col := b.Cursor()
	v := gameView{
		GameID:      g.ID,
		Daily:       g.Daily,
		Status:      b.Status(),
		Scoring:     b.Scoring(),
		WordLength:  b.WordLength(),
		MaxAttempts: b.MaxAttempts(),
		Attempts:    b.Attempts(),
		Cursor:      cursorView{Row: row, Col: col},
		Rows:        make([][]cellView, b.MaxAttempts()),
		Keyboard:    b.Keyboard(),
	}
	for r := range v.Rows {
		marks := b.RowMarks(r)
		cells := make([]cellView, b.WordLength())
		for c := range cells {
			if l := b.Cell(r, c); l != 0 {
				cells[c].Letter = string(l)
			}
			cells[c].Mark = marks[c]
		}
		v.Rows[r] = cells
	}
	if b.Status().Finished() {
		v.Answer = b.Target()
	}
	return v
}

// ------------------------------ handlers -----------------------------------

// newGameReq is the payload for POST /game/new. All fields are optional.
type newGameReq struct {
	Answer      string `json:"answer"`      // fixed answer (testing, custom games)
	Scoring     string `json:"scoring"`     // "classic" | "strict"
	MaxAttempts int    `json:"maxAttempts"` // rows on the board
}

// handleNewGame creates a hosted game and its history row.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	cfg := s.cfg.BoardConfig()
	if req.Scoring != "" {
		sc, ok := game.ParseScoring(req.Scoring)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown scoring")
			return
		}
		cfg.Scoring = sc
	}
	if req.Answer != "" && !words.Valid(strings.ToLower(strings.TrimSpace(req.Answer))) {
		writeError(w, http.StatusBadRequest, game.ErrInvalidTarget.Error())
		return
	}
	if req.MaxAttempts < 0 || req.MaxAttempts > game.MaxAttemptsLimit {
		writeError(w, http.StatusBadRequest, game.ErrInvalidAttempt.Error())
		return
	}
	if req.MaxAttempts > 0 {
		cfg.MaxAttempts = req.MaxAttempts
	}

	g, err := game.New(req.Answer, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.host(w, r, g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g, g.Board()))
}

// host stores g in memory, remembers its owner and writes its history row.
func (s *Server) host(w http.ResponseWriter, r *http.Request, g *game.Game) error {
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		return err
	}
	owner := s.ownerOf(w, r)
	s.mu.Lock()
	s.owners[g.ID] = owner
	s.mu.Unlock()

	if err := s.records.InsertGame(r.Context(), g, owner); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}
	return nil
}

// ownedGame loads the game in the URL if the caller owns it.
func (s *Server) ownedGame(w http.ResponseWriter, r *http.Request) (*game.Game, store.Owner, bool) {
	id := chi.URLParam(r, "id")
	g, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, store.Owner{}, false
	}
	owner := s.ownerOf(w, r)
	s.mu.Lock()
	want, ok := s.owners[id]
	s.mu.Unlock()
	if !ok || want != owner {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, store.Owner{}, false
	}
	return g, owner, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, _, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g, g.Board()))
}

// handleDeleteGame abandons a hosted game. Its history row is kept.
// Daily games stay hosted: they are the player's one try for the date.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	g, _, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	if g.Daily != "" {
		writeError(w, http.StatusConflict, "daily games cannot be deleted")
		return
	}
	if err := s.games.Delete(r.Context(), g.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	s.mu.Lock()
	delete(s.owners, g.ID)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// keysReq is the payload for POST /game/{id}/keys.
type keysReq struct {
	Keys []string `json:"keys"`
}

// handleKeys applies a batch of keystrokes in order. An unknown symbol
// rejects the whole batch before anything is applied.
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	g, owner, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	var req keysReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(req.Keys) > maxBatchKeys {
		writeError(w, http.StatusBadRequest, "too many keys")
		return
	}
	keys, err := game.ParseKeys(req.Keys)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b := s.press(r, g, owner, keys...)
	writeJSON(w, http.StatusOK, viewOf(g, b))
}

// press applies keys and persists progress (best effort, never fatal).
func (s *Server) press(r *http.Request, g *game.Game, owner store.Owner, keys ...game.Key) game.Board {
	b, accepted, finished := g.Press(keys...)
	if accepted == 0 {
		return b
	}
	ctx := r.Context()
	if err := s.records.RecordProgress(ctx, g, b, finished, owner); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record progress")
	}
	if finished {
		log.Info().Str("gameId", g.ID).Str("status", string(b.Status())).Int("attempts", b.Attempts()).Msg("game finished")
		if g.Daily != "" {
			s.daily.recordResult(ctx, g, b, owner)
		}
	}
	return b
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	g, _, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": g.Board().Share()})
}

// handleSnapshot returns the YAML snapshot of a finished game. The answer
// is part of the snapshot, so games in progress are refused.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	g, _, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	if !g.Board().Status().Finished() {
		writeError(w, http.StatusConflict, "game in progress")
		return
	}
	out, err := g.Snapshot().Serialize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "serialize_failed")
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// ------------------------------ websocket ----------------------------------

// keyMsg is one client message on the game socket.
type keyMsg struct {
	Key string `json:"key"`
}

// handleWS upgrades the connection, sends the current view, then answers
// every key message with a fresh view (or an error object).
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	g, owner, ok := s.ownedGame(w, r)
	if !ok {
		return
	}
	w.Header().Del("Content-Type")
	conn, err := s.ws.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(viewOf(g, g.Board())); err != nil {
		return
	}
	for {
		var msg keyMsg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("gameId", g.ID).Msg("websocket closed")
			}
			return
		}
		k, err := game.ParseKey(msg.Key)
		if err != nil {
			if err := conn.WriteJSON(map[string]string{"error": err.Error()}); err != nil {
				return
			}
			continue
		}
		b := s.press(r, g, owner, k)
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(viewOf(g, b)); err != nil {
			return
		}
	}
}

// checkOrigin accepts same-host requests, the configured client origin,
// and non-browser clients that send no Origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.Origin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
