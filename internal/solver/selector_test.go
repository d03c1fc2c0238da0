package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func TestRandomSelectorEmpty(t *testing.T) {
	_, err := NewSeededSelector(1).Select(nil)
	assert.ErrorIs(t, err, ErrEmptyCandidates)

	_, err = FirstSelector{}.Select([]game.Word{})
	assert.ErrorIs(t, err, ErrEmptyCandidates)
}

func TestRandomSelectorDeterministic(t *testing.T) {
	cands := wordList(t, "crane", "slate", "robot", "oxide", "ulnad", "llama")

	pick := func(seed uint64) []game.Word {
		sel := NewSeededSelector(seed)
		var out []game.Word
		for i := 0; i < 20; i++ {
			w, err := sel.Select(cands)
			require.NoError(t, err)
			out = append(out, w)
		}
		return out
	}

	a, b := pick(42), pick(42)
	assert.Equal(t, a, b)
	for _, w := range a {
		assert.Contains(t, cands, w)
	}
}

func TestRandomSelectorCoversCandidates(t *testing.T) {
	cands := wordList(t, "crane", "slate", "robot")
	sel := NewSeededSelector(7)
	seen := map[game.Word]bool{}
	for i := 0; i < 200; i++ {
		w, err := sel.Select(cands)
		require.NoError(t, err)
		seen[w] = true
	}
	assert.Len(t, seen, len(cands))
}

func TestFirstSelector(t *testing.T) {
	cands := wordList(t, "crane", "slate")
	w, err := FirstSelector{}.Select(cands)
	require.NoError(t, err)
	assert.Equal(t, "crane", w.String())
}
