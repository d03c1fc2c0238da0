// apps/go-solver/internal/words/words.go
//
// Word list loading for the solver and the emulated service.
//
// Responsibilities:
//   - Load the candidate list from a line-oriented file or fall back to the embedded default.
//   - Normalize lines (trim, lowercase) and keep only 5-letter a–z words, first occurrence wins.
//   - Supply a lookup Set and a cryptographically random pick.
//
// Environment variables (read by internal/config, passed in as a path):
//   WORDS_FILE=/path/to/words.txt
//
// The solver core consumes the result as an already-validated ordered list.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// ErrEmpty is returned when a source yields no valid words.
var ErrEmpty = errors.New("words: list is empty")

// Load reads the list at path, or the embedded default when path is empty.
func Load(path string) ([]game.Word, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	list, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("words", len(list)).Msg("word list loaded")
	return list, nil
}

// Default returns the embedded word list.
func Default() ([]game.Word, error) {
	lines, err := assets.WordList()
	if err != nil {
		return nil, fmt.Errorf("embedded word list: %w", err)
	}
	return normalize(lines)
}

// Read loads one word per line from r. Blank lines, # comments and lines that
// are not exactly five letters are skipped.
func Read(r io.Reader) ([]game.Word, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return normalize(lines)
}

// normalize parses lines into words, dropping invalid entries and duplicates.
func normalize(lines []string) ([]game.Word, error) {
	out := make([]game.Word, 0, len(lines))
	seen := make(Set, len(lines))
	skipped := 0
	for _, line := range lines {
		w, err := game.ParseWord(line)
		if err != nil {
			skipped++
			continue
		}
		if seen.Contains(w) {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("ignored lines that are not 5-letter words")
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Set is a lookup set of words.
type Set map[game.Word]struct{}

// NewSet converts a list into a Set.
func NewSet(list []game.Word) Set {
	m := make(Set, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// Contains reports whether w is in s.
func (s Set) Contains(w game.Word) bool {
	_, ok := s[w]
	return ok
}

// Random returns a cryptographically random word from list.
func Random(list []game.Word) (game.Word, error) {
	if len(list) == 0 {
		return game.Word{}, ErrEmpty
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return game.Word{}, err
	}
	return list[n.Int64()], nil
}
