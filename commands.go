package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

type rootOptions struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Narrow a five-letter word list using Wordle feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			setupLogging(cfg.LogLevel, cmd.Name() != "serve")
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "optional YAML config file")
	cmd.AddCommand(newServeCmd(opts), newSolveCmd(opts), newSimulateCmd(opts))
	return cmd
}

// setupLogging applies the level; interactive commands get human readable
// output on stderr instead of JSON.
func setupLogging(level string, console bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// loadDictionary reads and validates the configured dictionary.
func loadDictionary(ctx context.Context, cfg config.Config) (*words.Dictionary, words.Source, error) {
	src := words.Source{DB: cfg.Words.DB, File: cfg.Words.File, Length: solver.WordLength}
	list, err := words.Load(ctx, src)
	if err != nil {
		return nil, src, err
	}
	if err := solver.ValidateDictionary(list, solver.WordLength); err != nil {
		return nil, src, err
	}
	log.Info().Str("source", src.Describe()).Int("words", len(list)).Msg("dictionary loaded")
	return words.NewDictionary(solver.WordLength, list), src, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dict, src, err := loadDictionary(ctx, opts.cfg)
			if err != nil {
				return err
			}
			sessions := store.NewMemoryStore()
			go pruneSessions(ctx, sessions, time.Minute)

			srv := httpserver.New(opts.cfg, dict, src, sessions)
			log.Info().Str("port", opts.cfg.Port).Msg("starting wordle-solver")
			return srv.Start(ctx, ":"+opts.cfg.Port)
		},
	}
}

// pruneSessions drops expired sessions every interval until ctx ends.
func pruneSessions(ctx context.Context, st store.Store, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Prune(now); n > 0 {
				log.Debug().Int("sessions", n).Msg("pruned expired sessions")
			}
		}
	}
}

func newSolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Interactively enter guesses and marks, print remaining candidates",
		Long: `Enter one guess per line followed by its marks, e.g.

  crane bygbg

Marks: g = green (hit), y = yellow (present), b = black (miss).
Commands: p (print candidates), reset, q (quit).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, _, err := loadDictionary(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			return runSolve(cmd.InOrStdin(), cmd.OutOrStdout(), dict.Words())
		},
	}
}

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Score guesses against a known target and show how the candidates shrink",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, _, err := loadDictionary(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			return runSimulate(cmd.InOrStdin(), cmd.OutOrStdout(), dict.Words(), target)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "target word")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
