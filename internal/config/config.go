// internal/config/config.go
//
// Runtime configuration for the wordgrid binaries.
// Values come from the environment, optionally seeded from a .env file
// (godotenv). Command-line flags override individual fields afterwards.
//
// Environment variables:
//   PORT, LOG_LEVEL, DB_PATH, APP_ENV, CLIENT_ORIGIN,
//   JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME, DAILY_SALT,
//   MAX_ATTEMPTS, SCORING, REQUIRE_DICTIONARY,
//   WORDS_ANSWERS_FILE, WORDS_ALLOWED_FILE

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/words"
)

const devSecret = "dev_secret_change_me"

// Config is the full set of settings.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string
	Env      string // "production" enables secure cookies
	Origin   string // CORS origin allowed to send credentials

	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	DailySalt      string

	MaxAttempts       int
	Scoring           game.Scoring
	RequireDictionary bool

	AnswersFile string
	AllowedFile string
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "5175"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBPath:            getEnv("DB_PATH", "./data/wordgrid.db"),
		Env:               getEnv("APP_ENV", "development"),
		Origin:            getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:         getEnv("JWT_SECRET", devSecret),
		JWTExpiresDays:    getEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:        getEnv("COOKIE_NAME", "wordgrid_token"),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
		MaxAttempts:       getEnvInt("MAX_ATTEMPTS", game.DefaultMaxAttempts),
		RequireDictionary: getEnvBool("REQUIRE_DICTIONARY", false),
		AnswersFile:       os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:       os.Getenv("WORDS_ALLOWED_FILE"),
	}

	scoring, ok := game.ParseScoring(os.Getenv("SCORING"))
	if !ok {
		return cfg, fmt.Errorf("config: unknown SCORING %q", os.Getenv("SCORING"))
	}
	cfg.Scoring = scoring
	if cfg.MaxAttempts <= 0 || cfg.MaxAttempts > game.MaxAttemptsLimit {
		return cfg, fmt.Errorf("config: MAX_ATTEMPTS must be 1-%d, got %d", game.MaxAttemptsLimit, cfg.MaxAttempts)
	}
	return cfg, nil
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool { return c.Env == "production" }

// BoardConfig derives the board settings for new games.
func (c Config) BoardConfig() game.BoardConfig {
	bc := game.BoardConfig{MaxAttempts: c.MaxAttempts, Scoring: c.Scoring}
	if c.RequireDictionary {
		bc.Allowed = words.IsAllowed
	}
	return bc
}

// ApplyLogLevel sets the zerolog global level; unknown names are ignored.
func (c Config) ApplyLogLevel() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
