package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCandidates is returned by a Selector asked to choose from nothing.
	ErrEmptyCandidates = errors.New("no candidates to select from")

	// ErrCandidatesExhausted means the accumulated feedback rules out every word
	// in the list and no restart is left.
	ErrCandidatesExhausted = errors.New("candidates exhausted")

	// ErrNoWords means the word list itself is empty.
	ErrNoWords = errors.New("word list is empty")

	// ErrGuessRejected is reported by a feedback source when the service refused
	// a guess (typically a word it does not know).
	ErrGuessRejected = errors.New("guess rejected")

	// ErrGameOver is reported by a feedback source when the service no longer has
	// a game to play: the guess limit was exceeded or the game was never created.
	ErrGameOver = errors.New("game over")

	// ErrAttemptLimit is returned when a configured attempt cap is reached.
	ErrAttemptLimit = errors.New("attempt limit reached")
)

// TransportError wraps a failure to talk to the game service.
// The session is left as it was before the failing call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
