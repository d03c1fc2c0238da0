// apps/go-solver/commands.go
//
// Command tree:
//   wordle-solver play      solve a game on the remote service
//   wordle-solver simulate  solve offline against known secrets
//   wordle-solver serve     run the local emulation of the game service

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/client"
	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// --- global flags and loaded config ---
var (
	configPath  string
	logLevel    string
	metricsAddr string
	cfg         config.Config

	rootCmd = &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Solve Wordle by constraint filtering",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			setupLogging(cfg.LogLevel)
			return nil
		},
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Solve a game on the remote service",
		RunE:  runPlay,
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Solve offline against one secret, a sample or the whole list",
		RunE:  runSimulate,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the local game service",
		RunE:  runServe,
	}
)

// simulate flags
var (
	simSecret      string
	simSample      int
	simConcurrency int
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	playCmd.Flags().String("name", "", "player name to register")
	playCmd.Flags().String("base-url", "", "game service URL")
	playCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while playing")
	for _, c := range []*cobra.Command{playCmd, simulateCmd} {
		c.Flags().Uint64("seed", 0, "selector seed (0 = random)")
		c.Flags().Int("max-restarts", solver.DefaultMaxRestarts, "restarts allowed on exhaustion or game over")
		c.Flags().Int("max-attempts", 0, "attempt cap (0 = unbounded)")
	}

	simulateCmd.Flags().StringVar(&simSecret, "secret", "", "solve this single word")
	simulateCmd.Flags().IntVar(&simSample, "sample", 0, "solve this many random secrets (0 = every word)")
	simulateCmd.Flags().IntVar(&simConcurrency, "concurrency", 4, "games played in parallel")
	simulateCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while simulating")

	serveCmd.Flags().String("addr", "", "listen address")
	serveCmd.Flags().String("db", "", "SQLite database path (empty = in memory)")

	rootCmd.AddCommand(playCmd, simulateCmd, serveCmd)
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("name") {
		cfg.PlayerName, _ = f.GetString("name")
	}
	if f.Changed("base-url") {
		cfg.BaseURL, _ = f.GetString("base-url")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("max-restarts") {
		cfg.MaxRestarts, _ = f.GetInt("max-restarts")
	}
	if f.Changed("max-attempts") {
		cfg.MaxAttempts, _ = f.GetInt("max-attempts")
	}
	if f.Changed("addr") {
		cfg.Server.Addr, _ = f.GetString("addr")
	}
	if f.Changed("db") {
		cfg.Server.DBPath, _ = f.GetString("db")
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// serveMetrics exposes reg on metricsAddr until ctx ends; no-op when unset.
func serveMetrics(ctx context.Context, reg *prometheus.Registry) {
	if metricsAddr == "" {
		return
	}
	srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Str("addr", metricsAddr).Msg("metrics server")
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}

func runPlay(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd)
	defer cancel()

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return err
	}
	c, err := client.New(client.Config{
		BaseURL:   cfg.BaseURL,
		Mode:      cfg.Mode,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
	}, client.WithLogger(log.Logger))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	serveMetrics(ctx, reg)

	failures := 0
	out := cmd.OutOrStdout()
	loop := solver.New(list, solver.NewRemote(c, cfg.PlayerName),
		solver.WithSelector(solver.NewSeededSelector(cfg.Seed)),
		solver.WithLogger(log.Logger),
		solver.WithRecorder(metrics.NewSolverRecorder(reg)),
		solver.WithMaxRestarts(cfg.MaxRestarts),
		solver.WithMaxAttempts(cfg.MaxAttempts),
		solver.OnAttempt(func(r solver.AttemptRecord) {
			failures = 0
			if r.Rejected {
				fmt.Fprintf(out, "%2d  %s  rejected\n", r.Number, r.Guess)
				return
			}
			fmt.Fprintf(out, "%2d  %s  %s  (%d left)\n", r.Number, r.Guess, r.Feedback, r.Remaining)
		}),
	)

	log.Info().Str("player", cfg.PlayerName).Str("url", cfg.BaseURL).Int("words", len(list)).Uint64("seed", cfg.Seed).Msg("playing")
	for {
		res, err := loop.Run(ctx)
		if err == nil {
			fmt.Fprintf(out, "solved %q in %d attempts\n", res.Guess, res.Attempts)
			return nil
		}
		if !solver.IsTransport(err) || loop.Done() || failures >= cfg.Retries {
			return err
		}
		failures++
		log.Warn().Err(err).Int("retry", failures).Int("of", cfg.Retries).Msg("retrying attempt")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(failures) * 500 * time.Millisecond):
		}
	}
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd)
	defer cancel()

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return err
	}
	secrets, err := pickSecrets(list)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	serveMetrics(ctx, reg)

	start := time.Now()
	sum, err := solver.Simulate(ctx, list, secrets, solver.BatchConfig{
		Seed:        cfg.Seed,
		Concurrency: simConcurrency,
		MaxRestarts: cfg.MaxRestarts,
		MaxAttempts: cfg.MaxAttempts,
		Logger:      log.Logger,
		Recorder:    metrics.NewSolverRecorder(reg),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range sum.Results {
		if r.Outcome.Result != solver.ResultWin {
			fmt.Fprintf(out, "lost  %s  %s\n", r.Secret, r.Outcome.Reason)
		}
	}
	fmt.Fprintf(out, "games %d  wins %d  mean %.2f  worst %d  seed %d  (%s)\n",
		sum.Games, sum.Wins, sum.MeanAttempts(), sum.WorstAttempts, cfg.Seed, time.Since(start).Round(time.Millisecond))
	return nil
}

// pickSecrets returns the --secret word, a seeded sample or the whole list.
func pickSecrets(list []game.Word) ([]game.Word, error) {
	if simSecret != "" {
		w, err := game.ParseWord(simSecret)
		if err != nil {
			return nil, err
		}
		if !words.NewSet(list).Contains(w) {
			return nil, fmt.Errorf("secret %q is not in the word list", simSecret)
		}
		return []game.Word{w}, nil
	}
	if simSample <= 0 || simSample >= len(list) {
		return list, nil
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, 0))
	secrets := make([]game.Word, simSample)
	for i, j := range rng.Perm(len(list))[:simSample] {
		secrets[i] = list[j]
	}
	return secrets, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd)
	defer cancel()

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return err
	}

	var st store.Store = store.NewMemoryStore()
	if cfg.Server.DBPath != "" {
		db, err := store.OpenSQLite(cfg.Server.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()
		st = db
	}

	srv := httpserver.New(st, list, httpserver.Options{
		MaxGuesses:       cfg.Server.MaxGuesses,
		DailySalt:        cfg.Server.DailySalt,
		SessionSecret:    cfg.Server.SessionSecret,
		AllowFixedAnswer: cfg.Server.FixedAnswers,
	}, log.Logger, prometheus.NewRegistry())

	log.Info().Str("addr", cfg.Server.Addr).Int("words", len(list)).Bool("sqlite", cfg.Server.DBPath != "").Msg("starting game service")
	return srv.Serve(ctx, cfg.Server.Addr)
}
