package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/game"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAX_ATTEMPTS", "SCORING", "REQUIRE_DICTIONARY", "APP_ENV"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, game.DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, game.ScoringClassic, cfg.Scoring)
	assert.False(t, cfg.Production())
	assert.Nil(t, cfg.BoardConfig().Allowed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_ATTEMPTS", "8")
	t.Setenv("SCORING", "strict")
	t.Setenv("REQUIRE_DICTIONARY", "yes")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Production())

	bc := cfg.BoardConfig()
	assert.Equal(t, 8, bc.MaxAttempts)
	assert.Equal(t, game.ScoringStrict, bc.Scoring)
	require.NotNil(t, bc.Allowed)
	assert.True(t, bc.Allowed("world"))
	assert.False(t, bc.Allowed("qqqqq"))
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SCORING", "fuzzy")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SCORING", "")
	t.Setenv("MAX_ATTEMPTS", "-1")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("MAX_ATTEMPTS", "21")
	_, err = Load()
	assert.Error(t, err)
}
