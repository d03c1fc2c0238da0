package solver

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// BatchConfig configures Simulate.
type BatchConfig struct {
	Seed        uint64 // game i uses selector seed Seed+i
	Concurrency int    // <= 0 means one game at a time
	MaxRestarts int
	MaxAttempts int
	Logger      zerolog.Logger
	Recorder    Recorder
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Secret  game.Word
	Outcome Outcome
	Err     error
}

// Summary aggregates a batch.
type Summary struct {
	Games         int
	Wins          int
	TotalAttempts int // over won games
	WorstAttempts int
	Results       []GameResult
}

// MeanAttempts returns the average attempts of won games.
func (s Summary) MeanAttempts() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.TotalAttempts) / float64(s.Wins)
}

// Simulate plays one offline game per secret. Every game owns its own loop,
// session and selector; only the word list is shared.
func Simulate(ctx context.Context, words []game.Word, secrets []game.Word, cfg BatchConfig) (Summary, error) {
	results := make([]GameResult, len(secrets))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	} else {
		g.SetLimit(1)
	}
	for i, secret := range secrets {
		g.Go(func() error {
			opts := []Option{
				WithSelector(NewSeededSelector(cfg.Seed + uint64(i))),
				WithLogger(cfg.Logger.With().Str("secret", secret.String()).Logger()),
				WithMaxRestarts(cfg.MaxRestarts),
				WithMaxAttempts(cfg.MaxAttempts),
			}
			if cfg.Recorder != nil {
				opts = append(opts, WithRecorder(cfg.Recorder))
			}
			loop := New(words, Simulated{Secret: secret}, opts...)
			out, err := loop.Run(gctx)
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = GameResult{Secret: secret, Outcome: out, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Games: len(results), Results: results}
	for _, r := range results {
		if r.Outcome.Result != ResultWin {
			continue
		}
		sum.Wins++
		sum.TotalAttempts += r.Outcome.Attempts
		if r.Outcome.Attempts > sum.WorstAttempts {
			sum.WorstAttempts = r.Outcome.Attempts
		}
	}
	return sum, nil
}
