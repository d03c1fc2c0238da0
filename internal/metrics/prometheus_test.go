package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func TestSolverRecorderCountsGame(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewSolverRecorder(reg)

	words := []game.Word{game.MustWord("crane"), game.MustWord("robot")}
	loop := solver.New(words, solver.Simulated{Secret: game.MustWord("robot")},
		solver.WithSelector(solver.FirstSelector{}), solver.WithRecorder(rec))
	_, err := loop.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.attemptsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.attemptsTotal.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.gamesTotal.WithLabelValues("win")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.gameAttempts))
}

func TestSolverRecorderRestartsAndAborts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewSolverRecorder(reg)

	rec.ObserveAttempt(solver.AttemptRecord{Rejected: true})
	rec.ObserveRestart("candidates exhausted")
	rec.ObserveOutcome(solver.Outcome{Result: solver.ResultAborted})

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.attemptsTotal.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.restartsTotal.WithLabelValues("candidates exhausted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.gamesTotal.WithLabelValues("aborted")))
}

func TestServiceRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewServiceRecorder(reg)

	rec.PlayerRegistered()
	rec.GameCreated("wordle")
	rec.GameCreated("wordle")
	rec.Guess("won")

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.playersTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.gamesTotal.WithLabelValues("wordle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.guessesTotal.WithLabelValues("won")))

	// Two recorders on separate registries must not collide.
	NewServiceRecorder(prometheus.NewRegistry())
}
