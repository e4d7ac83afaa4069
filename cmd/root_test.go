package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/game"
)

func TestScoringValue(t *testing.T) {
	v := scoringValue(game.ScoringClassic)
	assert.Equal(t, "classic", v.String())
	assert.Equal(t, "scoring", v.Type())

	require.NoError(t, v.Set("strict"))
	assert.Equal(t, game.ScoringStrict, game.Scoring(v))

	err := v.Set("fuzzy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy")
	assert.Equal(t, game.ScoringStrict, game.Scoring(v))
}

func TestApplyFlagsOnlyOverridesChanged(t *testing.T) {
	c := &cobra.Command{Use: "x"}
	c.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, c.Flags().Parse([]string{"--scoring", "strict", "--attempts", "3"}))

	base := config.Config{MaxAttempts: 6, Scoring: game.ScoringClassic, LogLevel: "warn", AnswersFile: "a.txt"}
	applyFlags(c, &base)

	assert.Equal(t, 3, base.MaxAttempts)
	assert.Equal(t, game.ScoringStrict, base.Scoring)
	assert.Equal(t, "warn", base.LogLevel)
	assert.Equal(t, "a.txt", base.AnswersFile)

	flagScoring = scoringValue(game.ScoringClassic)
	flagAttempts = game.DefaultMaxAttempts
}
