package solver

import (
	"math/rand/v2"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Selector picks the next guess from a non-empty candidate list.
type Selector interface {
	Select(candidates []game.Word) (game.Word, error)
}

// RandomSelector chooses uniformly at random. The source is injected so tests can
// pin the sequence of guesses.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector returns a RandomSelector drawing from src.
func NewRandomSelector(src rand.Source) *RandomSelector {
	return &RandomSelector{rng: rand.New(src)}
}

// NewSeededSelector returns a RandomSelector with a deterministic PCG source.
func NewSeededSelector(seed uint64) *RandomSelector {
	return NewRandomSelector(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *RandomSelector) Select(candidates []game.Word) (game.Word, error) {
	if len(candidates) == 0 {
		return game.Word{}, ErrEmptyCandidates
	}
	return candidates[s.rng.IntN(len(candidates))], nil
}

// FirstSelector always picks the first candidate.
type FirstSelector struct{}

func (FirstSelector) Select(candidates []game.Word) (game.Word, error) {
	if len(candidates) == 0 {
		return game.Word{}, ErrEmptyCandidates
	}
	return candidates[0], nil
}
