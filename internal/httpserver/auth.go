// internal/httpserver/auth.go
//
// Accounts, tokens and player identity.
//   - POST /auth/signup, /auth/login, /auth/logout; GET /auth/me.
//   - GET /stats/me and /games/mine (require auth).
//   - HS256 JWT in an HttpOnly cookie or a Bearer header.
//   - Guests are identified by an anonymous cookie; their games move to
//     the account on signup/login.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordgrid/internal/store"
)

const anonCookieName = "wordgrid_anon"

// authUser is placed into request context by auth middleware.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

func userFrom(ctx context.Context) *authUser {
	u, _ := ctx.Value(ctxUserKey{}).(*authUser)
	return u
}

// credentials is the payload for signup and login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes(r chi.Router) {
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())

		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, userFrom(r.Context()))
		})

		r.Get("/stats/me", func(w http.ResponseWriter, r *http.Request) {
			u, err := s.records.UserByID(r.Context(), userFrom(r.Context()).ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "not_found")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"id":          u.ID,
				"gamesPlayed": u.GamesPlayed,
				"wins":        u.Wins,
				"streak":      u.Streak,
			})
		})

		r.Get("/games/mine", func(w http.ResponseWriter, r *http.Request) {
			rows, err := s.records.GamesByUser(r.Context(), userFrom(r.Context()).ID, 50)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "db_error")
				return
			}
			writeJSON(w, http.StatusOK, rows)
		})
	})
}

// handleSignup creates a new user, signs a JWT, sets auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	username := normalizeUsername(body.Username)
	if err := validateSignup(username, body.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash_failed")
		return
	}
	u, err := s.records.CreateUser(r.Context(), username, string(hash))
	if errors.Is(err, store.ErrUsernameTaken) {
		writeError(w, http.StatusConflict, "Username taken")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if !s.signIn(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates user, sets cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.records.UserByUsername(r.Context(), normalizeUsername(body.Username))
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.signIn(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username})
}

// signIn issues the token cookie and moves guest games to the account.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, u *store.User) bool {
	tok, exp, err := s.signJWT(u.ID, u.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setAuthCookie(w, tok, exp)

	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		if _, err := s.records.ClaimAnonGames(r.Context(), c.Value, u.ID); err != nil {
			log.Warn().Err(err).Msg("claim anon games")
		}
		s.claimHosted(c.Value, u.ID)
	}
	return true
}

// claimHosted moves ownership of in-memory games from a guest to a user.
func (s *Server) claimHosted(anonID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, o := range s.owners {
		if o.UserID == "" && o.AnonID == anonID {
			s.owners[id] = store.Owner{UserID: userID}
		}
	}
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setAuthCookie(w, "", time.Time{})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// --------------------------- identity --------------------------------------

// ownerOf identifies the caller: the signed-in user, else the guest cookie.
func (s *Server) ownerOf(w http.ResponseWriter, r *http.Request) store.Owner {
	if me := userFrom(r.Context()); me != nil {
		return store.Owner{UserID: me.ID}
	}
	return store.Owner{AnonID: s.ensureAnonID(w, r)}
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, s.cookie(anonCookieName, id, time.Now().Add(180*24*time.Hour)))
	// later handlers in this request see the same identity
	r.AddCookie(&http.Cookie{Name: anonCookieName, Value: id})
	return id
}

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, err := s.authenticate(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects authUser into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := s.authenticate(r)
			if errors.Is(err, errNoToken) {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
		})
	}
}

var (
	errNoToken      = errors.New("no token")
	errInvalidToken = errors.New("invalid token")
)

// authenticate validates the request token and checks the user still exists.
func (s *Server) authenticate(r *http.Request) (*authUser, error) {
	tokenStr := s.bearerOrCookie(r)
	if tokenStr == "" {
		return nil, errNoToken
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return nil, errInvalidToken
	}
	if _, err := s.records.UserByID(r.Context(), id); err != nil {
		return nil, errInvalidToken
	}
	return &authUser{ID: id, Username: username}, nil
}

// ------------------------------ JWT & cookies ------------------------------

// signJWT creates an HS256 JWT with id/username and the configured expiry.
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.cfg.JWTExpiresDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// setAuthCookie writes the token cookie; an empty token deletes it.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	c := s.cookie(s.cfg.CookieName, token, exp)
	if token == "" {
		c.Expires = time.Time{}
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}

func (s *Server) cookie(name, value string, exp time.Time) *http.Cookie {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	}
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// ------------------------------ validation ---------------------------------

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// normalizeUsername trims whitespace.
func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3–24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return errors.New("password must be 8–100 chars")
	}
	return nil
}
