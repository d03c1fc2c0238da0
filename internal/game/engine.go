// apps/go-solver/internal/game/engine.go
//
// Scoring and per-player game state.
// Responsibilities:
//   - Score guesses using the classic two-pass Wordle algorithm (ComputeFeedback).
//   - Track a single game held by the emulated service: guesses, limit, won/lost.
//
// Notes:
//   - ComputeFeedback is also the solver's offline feedback source.
//   - A MaxGuesses of 0 means the game never runs out of guesses.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// DefaultMaxGuesses is the guess limit of a classic game.
const DefaultMaxGuesses = 6

var (
	ErrGameFinished  = errors.New("game finished")
	ErrLimitExceeded = errors.New("guess limit exceeded")
)

// ComputeFeedback scores guess against secret.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (unmatched) secret letters by letter index.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise leave Absent.
//
// All Corrects must be resolved before any Present so that repeated letters are
// never credited beyond their multiplicity in the secret.
func ComputeFeedback(guess, secret Word) Feedback {
	var res Feedback
	var counts [26]int

	for i := 0; i < WordLen; i++ {
		if guess[i] == secret[i] {
			res[i] = Correct
		} else {
			counts[idx(secret[i])]++
		}
	}

	for i := 0; i < WordLen; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = Present
			counts[j]--
		}
	}
	return res
}

// Game holds the state of one game played against the emulated service.
type Game struct {
	ID         string    // Unique game identifier (random hex string).
	PlayerID   string    // Owner of the game.
	Answer     Word      // The secret word.
	MaxGuesses int       // Guess limit; 0 means unlimited.
	Guesses    []Word    // Guesses made so far.
	Finished   bool      // True once the game is over (won or lost).
	Won        bool      // True if the game was finished with a win.
	StartedAt  time.Time // Creation time (UTC).
}

// New constructs a game for playerID with the given answer.
func New(playerID string, answer Word, maxGuesses int) *Game {
	return &Game{
		ID:         randomID(),
		PlayerID:   playerID,
		Answer:     answer,
		MaxGuesses: maxGuesses,
		Guesses:    []Word{},
		StartedAt:  time.Now().UTC(),
	}
}

// ApplyGuess scores a guess and records it.
// Returns the feedback, the new state string ("playing"/"won"/"lost"), or an error.
//
// State transitions:
//   - If all tiles are Correct → Finished = true, Won = true.
//   - Else if the number of guesses reaches MaxGuesses → Finished = true (loss).
//
// Guessing after a loss reports ErrLimitExceeded, after a win ErrGameFinished.
func (g *Game) ApplyGuess(guess Word) (Feedback, string, error) {
	if g.Finished {
		if g.Won {
			return Feedback{}, g.State(), ErrGameFinished
		}
		return Feedback{}, g.State(), ErrLimitExceeded
	}

	fb := ComputeFeedback(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	if fb.Solved() {
		g.Finished, g.Won = true, true
	} else if g.MaxGuesses > 0 && len(g.Guesses) >= g.MaxGuesses {
		g.Finished = true
	}
	return fb, g.State(), nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
