package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func TestReadNormalizes(t *testing.T) {
	src := strings.NewReader("# comment\nCrane\n  slate  \n\ncranes\nab\nr0bot\ncrane\nULNAD\n")
	list, err := Read(src)
	require.NoError(t, err)

	got := make([]string, len(list))
	for i, w := range list {
		got[i] = w.String()
	}
	assert.Equal(t, []string{"crane", "slate", "ulnad"}, got)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader("# nothing\nabc\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("robot\noxide\n"), 0o644))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []game.Word{game.MustWord("robot"), game.MustWord("oxide")}, list)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDefaultList(t *testing.T) {
	list, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, len(list), 500)

	set := NewSet(list)
	assert.Len(t, set, len(list), "default list has duplicates")
	for _, w := range []string{"crane", "robot", "ulnad", "oxide"} {
		assert.True(t, set.Contains(game.MustWord(w)), w)
	}
	assert.False(t, set.Contains(game.MustWord("qajaq")))
}

func TestRandom(t *testing.T) {
	list := []game.Word{game.MustWord("robot"), game.MustWord("oxide")}
	set := NewSet(list)
	for i := 0; i < 20; i++ {
		w, err := Random(list)
		require.NoError(t, err)
		assert.True(t, set.Contains(w))
	}
	_, err := Random(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}
