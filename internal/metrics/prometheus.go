// Package metrics provides Prometheus-based recording for the solver and the
// emulated game service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// SolverRecorder implements solver.Recorder using Prometheus metrics.
type SolverRecorder struct {
	attemptsTotal  *prometheus.CounterVec
	candidatesLeft prometheus.Histogram
	restartsTotal  *prometheus.CounterVec
	gamesTotal     *prometheus.CounterVec
	gameAttempts   prometheus.Histogram
}

// NewSolverRecorder registers the solver metrics with reg.
func NewSolverRecorder(reg prometheus.Registerer) *SolverRecorder {
	f := promauto.With(reg)
	return &SolverRecorder{
		attemptsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_solver_attempts_total",
				Help: "Total number of guesses submitted, by whether the service accepted them",
			},
			[]string{"status"},
		),
		candidatesLeft: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordle_solver_candidates_remaining",
				Help:    "Candidates left after each accepted guess",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		restartsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_solver_restarts_total",
				Help: "Total number of game restarts by reason",
			},
			[]string{"reason"},
		),
		gamesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_solver_games_total",
				Help: "Total number of finished games by result",
			},
			[]string{"result"},
		),
		gameAttempts: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordle_solver_game_attempts",
				Help:    "Attempts needed to win a game",
				Buckets: prometheus.LinearBuckets(1, 1, 12),
			},
		),
	}
}

func (r *SolverRecorder) ObserveAttempt(rec solver.AttemptRecord) {
	if rec.Rejected {
		r.attemptsTotal.WithLabelValues("rejected").Inc()
		return
	}
	r.attemptsTotal.WithLabelValues("accepted").Inc()
	r.candidatesLeft.Observe(float64(rec.Remaining))
}

func (r *SolverRecorder) ObserveRestart(reason string) {
	r.restartsTotal.WithLabelValues(reason).Inc()
}

func (r *SolverRecorder) ObserveOutcome(o solver.Outcome) {
	r.gamesTotal.WithLabelValues(string(o.Result)).Inc()
	if o.Result == solver.ResultWin {
		r.gameAttempts.Observe(float64(o.Attempts))
	}
}

// ServiceRecorder counts activity on the emulated game service.
type ServiceRecorder struct {
	playersTotal prometheus.Counter
	gamesTotal   *prometheus.CounterVec
	guessesTotal *prometheus.CounterVec
}

// NewServiceRecorder registers the service metrics with reg.
func NewServiceRecorder(reg prometheus.Registerer) *ServiceRecorder {
	f := promauto.With(reg)
	return &ServiceRecorder{
		playersTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_service_players_registered_total",
			Help: "Total number of registered players",
		}),
		gamesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_service_games_created_total",
			Help: "Total number of games created by mode",
		}, []string{"mode"}),
		guessesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_service_guesses_total",
			Help: "Total number of guesses by outcome",
		}, []string{"outcome"}),
	}
}

func (r *ServiceRecorder) PlayerRegistered() { r.playersTotal.Inc() }

func (r *ServiceRecorder) GameCreated(mode string) { r.gamesTotal.WithLabelValues(mode).Inc() }

// Guess records a guess outcome: playing, won, lost, rejected, over.
func (r *ServiceRecorder) Guess(outcome string) { r.guessesTotal.WithLabelValues(outcome).Inc() }
