package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func testStore(t *testing.T, st Store) {
	ctx := context.Background()

	_, err := st.GetPlayer(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.GetGame(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	p := Player{ID: "p1", Name: "bot", Mode: "wordle", CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, st.SavePlayer(ctx, p))
	got, err := st.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Mode, got.Mode)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	g := game.New("p1", game.MustWord("robot"), 6)
	require.NoError(t, st.SaveGame(ctx, g))

	loaded, err := st.GetGame(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, g.ID, loaded.ID)
	assert.Equal(t, "robot", loaded.Answer.String())
	assert.Empty(t, loaded.Guesses)

	// Mutating the loaded copy does not leak into the store until saved.
	_, _, err = loaded.ApplyGuess(game.MustWord("oxide"))
	require.NoError(t, err)
	again, err := st.GetGame(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, again.Guesses)

	_, state, err := loaded.ApplyGuess(game.MustWord("robot"))
	require.NoError(t, err)
	require.Equal(t, "won", state)
	require.NoError(t, st.SaveGame(ctx, loaded))

	again, err = st.GetGame(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []game.Word{game.MustWord("oxide"), game.MustWord("robot")}, again.Guesses)
	assert.True(t, again.Finished)
	assert.True(t, again.Won)
	assert.Equal(t, 6, again.MaxGuesses)

	// A new game replaces the old one.
	next := game.New("p1", game.MustWord("crane"), 0)
	require.NoError(t, st.SaveGame(ctx, next))
	again, err = st.GetGame(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, next.ID, again.ID)
	assert.False(t, again.Finished)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "service.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	testStore(t, st)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.db")
	ctx := context.Background()

	st, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.SavePlayer(ctx, Player{ID: "p1", Name: "bot", Mode: "daily", CreatedAt: time.Now()}))
	require.NoError(t, st.Close())

	// Migrations are recorded, so reopening does not re-apply them.
	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()
	p, err := st.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "daily", p.Mode)
}
