package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFeedback(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		secret string
		want   string
	}{
		{"exact", "ulnad", "ulnad", "GGGGG"},
		{"disjoint", "bumpy", "crane", "RRRRR"},
		{"single present", "oxide", "robot", "YRRRR"},
		// ALLEN holds one A and two Ls: both Ls score, only one A does.
		{"repeated letters both sides", "llama", "allen", "YGYRR"},
		{"extra copy after correct", "aaaaa", "abcde", "GRRRR"},
		{"present limited by count", "eerie", "crane", "RRYRG"},
		{"second copy absent", "speed", "abide", "RRYRY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFeedback(MustWord(tt.guess), MustWord(tt.secret))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestComputeFeedbackNeverOvercounts(t *testing.T) {
	secret := MustWord("allen")
	guess := MustWord("llama")
	fb := ComputeFeedback(guess, secret)

	credited := map[byte]int{}
	for i, s := range fb {
		if s != Absent {
			credited[guess[i]]++
		}
	}
	for c, n := range credited {
		assert.LessOrEqual(t, n, secret.Count(c), "letter %c", c)
	}
	assert.Equal(t, 1, credited['a'])
	assert.Equal(t, 2, credited['l'])
}

func TestParseWord(t *testing.T) {
	w, err := ParseWord("  CRANE \n")
	require.NoError(t, err)
	assert.Equal(t, "crane", w.String())

	for _, bad := range []string{"", "cran", "cranes", "cr4ne", "crané"} {
		_, err := ParseWord(bad)
		assert.ErrorIs(t, err, ErrInvalidWord, bad)
	}
}

func TestParseFeedback(t *testing.T) {
	fb, err := ParseFeedback("gYrRG")
	require.NoError(t, err)
	assert.Equal(t, Feedback{Correct, Present, Absent, Absent, Correct}, fb)
	assert.Equal(t, "GYRRG", fb.String())
	assert.False(t, fb.Solved())

	solved, err := ParseFeedback("GGGGG")
	require.NoError(t, err)
	assert.True(t, solved.Solved())

	for _, bad := range []string{"", "GGGG", "GGGGGG", "GGXGG"} {
		_, err := ParseFeedback(bad)
		assert.ErrorIs(t, err, ErrInvalidFeedback, bad)
	}
}

func TestGameApplyGuess(t *testing.T) {
	g := New("p1", MustWord("robot"), 2)
	assert.Equal(t, "playing", g.State())

	fb, state, err := g.ApplyGuess(MustWord("oxide"))
	require.NoError(t, err)
	assert.Equal(t, "YRRRR", fb.String())
	assert.Equal(t, "playing", state)

	_, state, err = g.ApplyGuess(MustWord("crane"))
	require.NoError(t, err)
	assert.Equal(t, "lost", state)

	_, _, err = g.ApplyGuess(MustWord("robot"))
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestGameWinAndUnlimited(t *testing.T) {
	g := New("p1", MustWord("ulnad"), 0)
	for i := 0; i < 10; i++ {
		_, state, err := g.ApplyGuess(MustWord("crane"))
		require.NoError(t, err)
		require.Equal(t, "playing", state)
	}
	fb, state, err := g.ApplyGuess(MustWord("ulnad"))
	require.NoError(t, err)
	assert.True(t, fb.Solved())
	assert.Equal(t, "won", state)

	_, _, err = g.ApplyGuess(MustWord("ulnad"))
	assert.ErrorIs(t, err, ErrGameFinished)
}
