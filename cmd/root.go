// cmd/root.go
//
// Command-line entry points for wordgrid:
//   wordgrid serve   HTTP + WebSocket backend
//   wordgrid play    terminal game
//
// Settings load from the environment (and .env) first; flags on each
// subcommand override them.

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/game"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wordgrid",
	Short: "A word-guessing game for the terminal and the web",
	Long: `wordgrid is a Wordle-style guessing game.

Play in the terminal
	wordgrid play

Today's shared puzzle
	wordgrid play --daily

Run the backend for the web client
	wordgrid serve
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, &loaded)
		cfg = loaded
		cfg.ApplyLogLevel()
		return nil
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Flags shared by every subcommand. They only override the environment
// when given explicitly.
var (
	flagLogLevel    string
	flagAttempts    int
	flagScoring     = scoringValue(game.ScoringClassic)
	flagDictionary  bool
	flagAnswersFile string
	flagAllowedFile string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagLogLevel, "log-level", "info", "zerolog level (trace, debug, info, warn, error)")
	pf.IntVar(&flagAttempts, "attempts", game.DefaultMaxAttempts, "Number of guesses allowed per game")
	pf.Var(&flagScoring, "scoring", `Scoring rules for submitted rows.
classic: a letter found anywhere in the answer is present
strict: repeated letters are only marked as often as they occur in the answer`)
	pf.BoolVar(&flagDictionary, "dictionary", false, "Reject guesses that are not in the word list")
	pf.StringVar(&flagAnswersFile, "answers", "", "Answer word list file (default: embedded list)")
	pf.StringVar(&flagAllowedFile, "allowed", "", "Allowed guesses file (default: embedded list)")
}

func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if flags.Changed("attempts") {
		c.MaxAttempts = flagAttempts
	}
	if flags.Changed("scoring") {
		c.Scoring = game.Scoring(flagScoring)
	}
	if flags.Changed("dictionary") {
		c.RequireDictionary = flagDictionary
	}
	if flags.Changed("answers") {
		c.AnswersFile = flagAnswersFile
	}
	if flags.Changed("allowed") {
		c.AllowedFile = flagAllowedFile
	}
	if c.MaxAttempts <= 0 || c.MaxAttempts > game.MaxAttemptsLimit {
		log.Warn().Int("attempts", c.MaxAttempts).Msg("attempts out of range, using default")
		c.MaxAttempts = game.DefaultMaxAttempts
	}
}

// scoringValue is a pflag.Value for game.Scoring.
type scoringValue game.Scoring

var _ pflag.Value = (*scoringValue)(nil)

func (v *scoringValue) String() string {
	return string(*v)
}

func (v *scoringValue) Set(value string) error {
	s, ok := game.ParseScoring(value)
	if !ok {
		return fmt.Errorf("invalid scoring mode %q (want classic or strict)", value)
	}
	*v = scoringValue(s)
	return nil
}

func (v *scoringValue) Type() string {
	return "scoring"
}
