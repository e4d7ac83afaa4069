package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/tui"
	"github.com/robalobadob/wordgrid/internal/words"
)

var (
	flagAnswer   string
	flagDaily    bool
	flagSnapshot string
	flagSaveDir  string
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play a game in the terminal.

Type letters, press enter to submit a row and backspace to delete.
Esc quits; with --save-dir the board is written as a YAML snapshot
that --snapshot can resume later.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		closeLog, err := playLogger(flagLogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		if err := words.Init(cfg.AnswersFile, cfg.AllowedFile); err != nil {
			return err
		}

		b, title, err := playBoard()
		if err != nil {
			return err
		}

		final, err := tui.Run(tui.New(b, tui.Options{Title: title, SaveDir: flagSaveDir}))
		if err != nil {
			return err
		}

		out := final.Board()
		if out.Status().Finished() {
			fmt.Println(out.Share())
		}
		return nil
	},
}

// playBoard builds the starting board from the flags.
func playBoard() (game.Board, string, error) {
	bc := cfg.BoardConfig()
	switch {
	case flagSnapshot != "":
		snap, err := game.ReadSnapshot(flagSnapshot)
		if err != nil {
			return game.Board{}, "", err
		}
		b, err := snap.Board(bc)
		if err != nil {
			return game.Board{}, "", err
		}
		log.Info().Str("path", flagSnapshot).Int("guesses", len(snap.Guesses)).Msg("snapshot restored")
		title := "WORDLE"
		if snap.Daily != "" {
			title += " " + snap.Daily
		}
		return b, title, nil

	case flagDaily:
		p := daily.For(time.Now(), cfg.DailySalt)
		if p.Answer == "" {
			return game.Board{}, "", fmt.Errorf("no answers loaded for daily puzzle")
		}
		b, err := game.NewBoard(p.Answer, bc)
		return b, "WORDLE " + p.Date, err

	default:
		answer := flagAnswer
		if answer == "" {
			answer = words.RandomAnswer()
		}
		b, err := game.NewBoard(answer, bc)
		return b, "WORDLE", err
	}
}

// playLogger routes zerolog to path, or discards it so log lines do not
// tear the terminal UI.
func playLogger(path string) (func(), error) {
	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

func init() {
	f := playCmd.Flags()
	f.StringVar(&flagAnswer, "answer", "", "Fixed answer (default: random from the answer list)")
	f.BoolVar(&flagDaily, "daily", false, "Play today's daily puzzle")
	f.StringVar(&flagSnapshot, "snapshot", "", "Resume from a saved YAML snapshot")
	f.StringVar(&flagSaveDir, "save-dir", "", "Write a snapshot here on exit")
	f.StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.AddCommand(playCmd)
}
