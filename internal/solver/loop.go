// apps/go-solver/internal/solver/loop.go
//
// The attempt state machine.
//
//   Idle → AwaitingGuess → AwaitingFeedback → Evaluating → AwaitingGuess …
//                                                        ↘ Won
//   AwaitingGuess with no candidates → restart (Idle) or Aborted.
//
// Each Step performs one transition. A failed feedback call leaves the loop in
// AwaitingFeedback with the same pending guess, so calling Step again retries
// exactly that attempt. Constraints and candidates change only in Evaluating,
// all at once.

package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// State is a game loop state.
type State int

const (
	Idle State = iota
	AwaitingGuess
	AwaitingFeedback
	Evaluating
	Won
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingGuess:
		return "awaiting_guess"
	case AwaitingFeedback:
		return "awaiting_feedback"
	case Evaluating:
		return "evaluating"
	case Won:
		return "won"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Result is the terminal outcome kind.
type Result string

const (
	ResultNone    Result = ""
	ResultWin     Result = "win"
	ResultAborted Result = "aborted"
)

// Outcome describes how a game ended.
type Outcome struct {
	Result   Result
	Attempts int       // attempts in the final session
	Guess    game.Word // winning guess
	Reason   string    // why the game was aborted
	Restarts int
}

// Recorder receives solver events. Implementations must be safe for concurrent use
// when shared by several loops.
type Recorder interface {
	ObserveAttempt(rec AttemptRecord)
	ObserveRestart(reason string)
	ObserveOutcome(o Outcome)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAttempt(AttemptRecord) {}
func (nopRecorder) ObserveRestart(string)        {}
func (nopRecorder) ObserveOutcome(Outcome)       {}

// DefaultMaxRestarts resets an exhausted game once before giving up.
const DefaultMaxRestarts = 1

// Loop drives one game to a win or an abort.
type Loop struct {
	words       []game.Word
	src         FeedbackSource
	sel         Selector
	log         zerolog.Logger
	rec         Recorder
	maxRestarts int
	maxAttempts int
	onAttempt   func(AttemptRecord)

	state    State
	sess     *Session
	pending  game.Word
	feedback game.Feedback
	restarts int
	outcome  Outcome
}

// Option configures a Loop.
type Option func(*Loop)

// WithSelector sets the guess selection policy. Default: random, unseeded.
func WithSelector(s Selector) Option { return func(l *Loop) { l.sel = s } }

// WithLogger sets the logger. Default: zerolog.Nop().
func WithLogger(lg zerolog.Logger) Option { return func(l *Loop) { l.log = lg } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option { return func(l *Loop) { l.rec = r } }

// WithMaxRestarts bounds how many times the game is restarted after the
// candidates run out or the service ends the game.
func WithMaxRestarts(n int) Option { return func(l *Loop) { l.maxRestarts = n } }

// WithMaxAttempts caps attempts per session; 0 means no cap.
func WithMaxAttempts(n int) Option { return func(l *Loop) { l.maxAttempts = n } }

// OnAttempt registers a callback invoked after every completed attempt.
func OnAttempt(fn func(AttemptRecord)) Option { return func(l *Loop) { l.onAttempt = fn } }

// New builds a loop over words (read-only, may be shared between loops) and src.
func New(words []game.Word, src FeedbackSource, opts ...Option) *Loop {
	l := &Loop{
		words:       words,
		src:         src,
		log:         zerolog.Nop(),
		rec:         nopRecorder{},
		maxRestarts: DefaultMaxRestarts,
		onAttempt:   func(AttemptRecord) {},
	}
	for _, o := range opts {
		o(l)
	}
	if l.sel == nil {
		l.sel = NewRandomSelector(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return l
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Session returns the current session, nil before the game starts.
func (l *Loop) Session() *Session { return l.sess }

// Restarts returns how many times the game has been restarted.
func (l *Loop) Restarts() int { return l.restarts }

// Done reports whether the loop reached Won or Aborted.
func (l *Loop) Done() bool { return l.state == Won || l.state == Aborted }

// Outcome returns the terminal outcome; Result is ResultNone while playing.
func (l *Loop) Outcome() Outcome { return l.outcome }

// Reset returns a finished loop to Idle for a new game.
func (l *Loop) Reset() {
	l.state = Idle
	l.sess = nil
	l.restarts = 0
	l.outcome = Outcome{}
}

// Run steps until the game is won or aborted. A transport failure stops Run
// with the error while the loop stays resumable; call Run again to retry.
func (l *Loop) Run(ctx context.Context) (Outcome, error) {
	for !l.Done() {
		if err := l.Step(ctx); err != nil {
			return l.outcome, err
		}
	}
	return l.outcome, nil
}

// Step performs a single state transition.
func (l *Loop) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch l.state {
	case Idle:
		return l.start(ctx)
	case AwaitingGuess:
		return l.selectGuess(ctx)
	case AwaitingFeedback:
		return l.awaitFeedback(ctx)
	case Evaluating:
		return l.evaluate()
	}
	return nil
}

func (l *Loop) start(ctx context.Context) error {
	if len(l.words) == 0 {
		return l.abort(ErrNoWords)
	}
	if err := l.src.Start(ctx); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	l.sess = newSession(l.words)
	l.state = AwaitingGuess
	l.log.Debug().Int("candidates", len(l.words)).Int("restarts", l.restarts).Msg("game started")
	return nil
}

func (l *Loop) restart(ctx context.Context, cause error) error {
	if l.restarts >= l.maxRestarts {
		return l.abort(cause)
	}
	l.restarts++
	l.rec.ObserveRestart(cause.Error())
	l.log.Warn().Err(cause).Int("restart", l.restarts).Msg("restarting game")
	l.state = Idle
	return l.start(ctx)
}

func (l *Loop) selectGuess(ctx context.Context) error {
	if l.sess.Remaining() == 0 {
		return l.restart(ctx, ErrCandidatesExhausted)
	}
	if l.maxAttempts > 0 && l.sess.Attempts() >= l.maxAttempts {
		return l.abort(ErrAttemptLimit)
	}
	guess, err := l.sel.Select(l.sess.candidates)
	if err != nil {
		return l.abort(err)
	}
	l.pending = guess
	l.state = AwaitingFeedback
	return nil
}

func (l *Loop) awaitFeedback(ctx context.Context) error {
	fb, err := l.src.Feedback(ctx, l.pending)
	switch {
	case err == nil:
		l.feedback = fb
		l.state = Evaluating
		return nil
	case errors.Is(err, ErrGuessRejected):
		rec := l.sess.reject(l.pending)
		l.log.Warn().Err(err).Int("attempt", rec.Number).Str("guess", rec.Guess.String()).Msg("guess rejected")
		l.observe(rec)
		l.state = AwaitingGuess
		return nil
	case errors.Is(err, ErrGameOver):
		return l.restart(ctx, err)
	}
	l.log.Error().Err(err).Int("attempt", l.sess.Attempts()+1).Str("guess", l.pending.String()).Msg("feedback failed")
	return fmt.Errorf("attempt %d: %w", l.sess.Attempts()+1, err)
}

func (l *Loop) evaluate() error {
	rec, err := l.sess.apply(l.pending, l.feedback)
	if err != nil {
		l.log.Error().Err(err).
			Str("guess", l.pending.String()).
			Str("feedback", l.feedback.String()).
			Str("constraints", l.sess.constraints.String()).
			Msg("feedback contradicts earlier feedback")
		return l.abort(err)
	}
	l.log.Info().
		Int("attempt", rec.Number).
		Str("guess", rec.Guess.String()).
		Str("feedback", rec.Feedback.String()).
		Int("candidates", rec.Remaining).
		Msg("attempt")
	l.observe(rec)

	if rec.Feedback.Solved() {
		l.state = Won
		l.outcome = Outcome{Result: ResultWin, Attempts: rec.Number, Guess: rec.Guess, Restarts: l.restarts}
		l.rec.ObserveOutcome(l.outcome)
		l.log.Info().Str("word", rec.Guess.String()).Int("attempts", rec.Number).Msg("solved")
		return nil
	}
	l.state = AwaitingGuess
	return nil
}

func (l *Loop) observe(rec AttemptRecord) {
	l.rec.ObserveAttempt(rec)
	l.onAttempt(rec)
}

func (l *Loop) abort(cause error) error {
	l.state = Aborted
	attempts := 0
	if l.sess != nil {
		attempts = l.sess.Attempts()
	}
	l.outcome = Outcome{Result: ResultAborted, Attempts: attempts, Reason: cause.Error(), Restarts: l.restarts}
	l.rec.ObserveOutcome(l.outcome)
	l.log.Error().Err(cause).Int("attempts", attempts).Int("restarts", l.restarts).Msg("game aborted")
	return cause
}
