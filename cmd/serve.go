package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

var (
	flagPort   string
	flagDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Port = flagPort
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = flagDBPath
		}

		if err := words.Init(cfg.AnswersFile, cfg.AllowedFile); err != nil {
			log.Error().Err(err).Msg("failed to load word lists")
			return err
		}
		answers, allowed := words.Stats()
		log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

		db, err := store.OpenDB(cfg.DBPath)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
			return err
		}
		defer db.Close()

		srv := httpserver.New(cfg, store.NewMemoryStore(), db)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.Port).Str("scoring", string(cfg.Scoring)).Msg("starting wordgrid server")
			errc <- srv.Start(":" + cfg.Port)
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errc
	},
}

func init() {
	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "5175", "Port to listen on")
	serveCmd.Flags().StringVar(&flagDBPath, "db", "./data/wordgrid.db", "SQLite database path")
	rootCmd.AddCommand(serveCmd)
}
