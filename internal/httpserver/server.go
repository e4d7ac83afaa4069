// internal/httpserver/server.go
//
// HTTP server wiring for the wordgrid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): /game/new, /game/{id} (GET, DELETE), /game/{id}/keys,
//     /game/{id}/share, /game/{id}/snapshot, /game/{id}/ws.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Hosted boards live in a store.Store; finished games and stats go to SQL.
//   - Every game belongs to the account or anonymous cookie that created it;
//     other callers get 404.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Server bundles router, hosted game store, and SQL records.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	games   store.Store
	records *store.Records
	daily   *dailyServer
	ws      websocket.Upgrader
	httpSrv *http.Server

	mu     sync.Mutex
	owners map[string]store.Owner // game ID -> owner
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, games store.Store, db *sql.DB) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		games:   games,
		records: store.NewRecords(db),
		owners:  make(map[string]store.Owner),
	}
	s.ws = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)       // zerolog request line
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType) // default JSON responses
	s.r.Use(s.cors)          // credentials-friendly CORS

	// WebSocket connections outlive the request timeout.
	s.r.With(s.withOptionalAuth()).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service":   "wordgrid",
				"endpoints": []string{"/health", "POST /game/new", "POST /game/{id}/keys", "GET /game/{id}/ws", "/daily/*", "/auth/*"},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := words.Stats()
			writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
		})

		// Game endpoints: OPTIONAL AUTH (guests can play)
		r.Group(func(r chi.Router) {
			r.Use(s.withOptionalAuth())
			s.mountGame(r)
			s.mountDaily(r)
		})

		// Auth + profile/stats
		s.mountAuthRoutes(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for handlers.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.Origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
