package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func TestPickSecrets(t *testing.T) {
	list := []game.Word{game.MustWord("crane"), game.MustWord("robot"), game.MustWord("oxide"), game.MustWord("ghost")}
	t.Cleanup(func() { simSecret, simSample = "", 0 })

	simSecret = "ROBOT"
	got, err := pickSecrets(list)
	require.NoError(t, err)
	assert.Equal(t, []game.Word{game.MustWord("robot")}, got)

	simSecret = "zebra"
	_, err = pickSecrets(list)
	assert.Error(t, err)

	simSecret, simSample = "", 2
	cfg.Seed = 9
	a, err := pickSecrets(list)
	require.NoError(t, err)
	b, _ := pickSecrets(list)
	assert.Len(t, a, 2)
	assert.Equal(t, a, b, "same seed, same sample")

	simSample = 0
	all, _ := pickSecrets(list)
	assert.Equal(t, list, all)
}

func TestSimulateCommand(t *testing.T) {
	t.Cleanup(func() { simSecret = "" })
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"simulate", "--secret", "robot", "--seed", "3", "--log-level", "error"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "games 1  wins 1")
}
