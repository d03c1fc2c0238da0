package solver

import (
	"context"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Service is the remote game service as seen by the solver.
// internal/client provides the HTTP implementation.
type Service interface {
	Register(ctx context.Context, name string) (string, error)
	CreateGame(ctx context.Context, playerID string) error
	Guess(ctx context.Context, playerID string, word game.Word) (game.Feedback, error)
}

// FeedbackSource produces feedback for guesses in one game.
// Start is called at game start and on every restart.
type FeedbackSource interface {
	Start(ctx context.Context) error
	Feedback(ctx context.Context, guess game.Word) (game.Feedback, error)
}

// Simulated scores guesses locally against a known secret.
type Simulated struct {
	Secret game.Word
}

func (Simulated) Start(context.Context) error { return nil }

func (s Simulated) Feedback(_ context.Context, guess game.Word) (game.Feedback, error) {
	return game.ComputeFeedback(guess, s.Secret), nil
}

// Remote plays against a Service. The player is registered on the first Start;
// every Start creates a fresh game for that player.
type Remote struct {
	svc      Service
	name     string
	playerID string
}

// NewRemote returns a Remote registering as name.
func NewRemote(svc Service, name string) *Remote {
	return &Remote{svc: svc, name: name}
}

// PlayerID returns the id assigned by the service, empty before the first Start.
func (r *Remote) PlayerID() string { return r.playerID }

func (r *Remote) Start(ctx context.Context) error {
	if r.playerID == "" {
		id, err := r.svc.Register(ctx, r.name)
		if err != nil {
			return fmt.Errorf("register %q: %w", r.name, err)
		}
		r.playerID = id
	}
	if err := r.svc.CreateGame(ctx, r.playerID); err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *Remote) Feedback(ctx context.Context, guess game.Word) (game.Feedback, error) {
	return r.svc.Guess(ctx, r.playerID, guess)
}
