// apps/go-solver/internal/game/types.go
//
// Core value types shared by the solver, the client and the emulated service.
// Defines:
//   - Word: an immutable 5-letter lowercase word.
//   - Symbol: per-letter result of a guess (correct/present/absent).
//   - Feedback: the 5 symbols produced by one guess, with the G/Y/R wire encoding.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// WordLen is the number of letters in every word.
const WordLen = 5

var (
	ErrInvalidWord     = errors.New("invalid word")
	ErrInvalidFeedback = errors.New("invalid feedback")
)

// Word is a 5-letter lowercase a–z word. It is a value type; copies never alias.
type Word [WordLen]byte

// ParseWord trims and lowercases s and checks that it is exactly five letters a–z.
func ParseWord(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != WordLen || !isAlpha(s) {
		return w, fmt.Errorf("%w: %q", ErrInvalidWord, s)
	}
	copy(w[:], s)
	return w, nil
}

// MustWord is ParseWord for literals; it panics on bad input.
func MustWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string { return string(w[:]) }

// Counts returns the number of occurrences of each letter, indexed a=0..z=25.
func (w Word) Counts() [26]int {
	var c [26]int
	for _, b := range w {
		c[idx(b)]++
	}
	return c
}

// Count reports how many times letter c occurs in w.
func (w Word) Count(c byte) int {
	n := 0
	for _, b := range w {
		if b == c {
			n++
		}
	}
	return n
}

// Symbol is the evaluation of a single guessed letter.
type Symbol uint8

const (
	Absent  Symbol = iota // letter not in the secret (beyond confirmed copies)
	Present               // letter in the secret at another position
	Correct               // letter in the secret at this position
)

// Code returns the wire letter for s: G, Y or R.
func (s Symbol) Code() byte {
	switch s {
	case Correct:
		return 'G'
	case Present:
		return 'Y'
	default:
		return 'R'
	}
}

func (s Symbol) String() string {
	switch s {
	case Correct:
		return "correct"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// Feedback is the ordered result of one guess, aligned to the guess positions.
type Feedback [WordLen]Symbol

// ParseFeedback decodes a G/Y/R string (case-insensitive) as sent by the game service.
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	if len(s) != WordLen {
		return f, fmt.Errorf("%w: %q has length %d", ErrInvalidFeedback, s, len(s))
	}
	for i := 0; i < WordLen; i++ {
		switch s[i] {
		case 'G', 'g':
			f[i] = Correct
		case 'Y', 'y':
			f[i] = Present
		case 'R', 'r':
			f[i] = Absent
		default:
			return f, fmt.Errorf("%w: %q has symbol %q", ErrInvalidFeedback, s, s[i])
		}
	}
	return f, nil
}

// String encodes f in the G/Y/R wire form.
func (f Feedback) String() string {
	var b [WordLen]byte
	for i, s := range f {
		b[i] = s.Code()
	}
	return string(b[:])
}

// Solved reports whether every symbol is Correct.
func (f Feedback) Solved() bool {
	for _, s := range f {
		if s != Correct {
			return false
		}
	}
	return true
}

// idx maps a lowercase ASCII letter to 0..25.
// Inputs are validated to a–z by ParseWord.
func idx(b byte) int { return int(b - 'a') }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
